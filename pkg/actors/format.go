package actors

import "fmt"

// ToString renders id for display. viewerWorld is the local player's home
// world; names from any other world get the world appended. Pass NoViewer
// when there is no local player.
func (m *Manager) ToString(id Identifier, viewerWorld uint16) string {
	switch id.typ {
	case TypePlayer:
		if id.value != viewerWorld || viewerWorld == NoViewer {
			return fmt.Sprintf("%s (%s)", id.name, m.ToWorldName(id.value))
		}
		return id.name
	case TypeRetainer:
		return id.name
	case TypeOwned:
		if id.value != viewerWorld || viewerWorld == NoViewer {
			return fmt.Sprintf("%s (%s)'s %s", id.name, m.ToWorldName(id.value), m.ToName(id.kind, id.dataID))
		}
		return fmt.Sprintf("%s's %s", id.name, m.ToName(id.kind, id.dataID))
	case TypeSpecial:
		return SpecialActor(id.value).Label()
	case TypeNpc:
		if id.value == NoIndex {
			return m.ToName(id.kind, id.dataID)
		}
		return fmt.Sprintf("%s at %d", m.ToName(id.kind, id.dataID), id.value)
	case TypeUnkObject:
		if id.name == "" {
			return fmt.Sprintf("Unknown Object at %d", id.value)
		}
		return fmt.Sprintf("%s at %d", id.name, id.value)
	}
	return "Invalid"
}

// ToWorldName returns the world name, "Any World" for AnyWorld and
// "Invalid" for unknown ids.
func (m *Manager) ToWorldName(worldID uint16) string {
	if worldID == AnyWorld {
		return "Any World"
	}
	if name, ok := m.data.Load().World(worldID); ok {
		return name
	}
	return "Invalid"
}

// ToName returns the display name of dataID in the sheet for kind, or "Invalid".
func (m *Manager) ToName(kind ObjectKind, dataID uint32) string {
	if name, ok := m.TryGetName(kind, dataID); ok {
		return name
	}
	return "Invalid"
}

// TryGetName looks dataID up in the sheet for kind.
func (m *Manager) TryGetName(kind ObjectKind, dataID uint32) (string, bool) {
	t := m.data.Load()
	switch kind {
	case KindMountType:
		return t.Mount(dataID)
	case KindCompanion:
		return t.Companion(dataID)
	case KindOrnament:
		return t.Ornament(dataID)
	case KindBattleNpc:
		return t.BNpc(dataID)
	case KindEventNpc:
		return t.ENpc(dataID)
	}
	return "", false
}
