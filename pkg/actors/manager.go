package actors

import (
	"log/slog"

	"github.com/xivmods/actorid/pkg/gamedata"
)

const maxNpcIndex = 426

// Manager builds and validates identifiers against the current game data
// snapshot and, for live resolution, an object table.
// A Manager is safe for concurrent use.
type Manager struct {
	data    *gamedata.Store
	objects ObjectTable
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithObjectTable sets the live object table used by FromObject and FromIndex.
func WithObjectTable(t ObjectTable) Option {
	return func(m *Manager) {
		m.objects = t
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a Manager reading tables from data.
func NewManager(data *gamedata.Store, opts ...Option) *Manager {
	if data == nil {
		data = gamedata.NewStore(nil)
	}
	m := &Manager{data: data}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	return m
}

// Data returns the game data store.
func (m *Manager) Data() *gamedata.Store {
	return m.data
}

// CreatePlayer returns a Player identifier, or Invalid if the world or the
// name is not acceptable.
func (m *Manager) CreatePlayer(name string, homeWorld uint16) Identifier {
	if !m.VerifyWorld(homeWorld) || !VerifyPlayerName(name) {
		return Invalid
	}
	return newPlayer(name, homeWorld)
}

func (m *Manager) CreateRetainer(name string) Identifier {
	if !VerifyRetainerName(name) {
		return Invalid
	}
	return newRetainer(name)
}

func (m *Manager) CreateSpecial(special SpecialActor) Identifier {
	if !VerifySpecial(special) {
		return Invalid
	}
	return newSpecial(special)
}

// CreateNpc returns an Npc identifier. Pass NoIndex when the NPC is not tied
// to an object slot.
func (m *Manager) CreateNpc(kind ObjectKind, dataID uint32, index uint16) Identifier {
	if !VerifyIndex(index) || !m.VerifyNpcData(kind, dataID) {
		return Invalid
	}
	return newNpc(kind, dataID, index)
}

func (m *Manager) CreateOwned(ownerName string, homeWorld uint16, kind ObjectKind, dataID uint32) Identifier {
	if !m.VerifyWorld(homeWorld) || !VerifyPlayerName(ownerName) || !m.VerifyOwnedData(kind, dataID) {
		return Invalid
	}
	return newOwned(ownerName, homeWorld, kind, dataID)
}

// CreateIndividual routes to the checked constructor for typ. value is the
// home world, object index or special slot as typ requires.
func (m *Manager) CreateIndividual(typ IdentifierType, name string, value uint16, kind ObjectKind, dataID uint32) Identifier {
	switch typ {
	case TypePlayer:
		return m.CreatePlayer(name, value)
	case TypeRetainer:
		return m.CreateRetainer(name)
	case TypeOwned:
		return m.CreateOwned(name, value, kind, dataID)
	case TypeSpecial:
		return m.CreateSpecial(SpecialActor(value))
	case TypeNpc:
		return m.CreateNpc(kind, dataID, value)
	case TypeUnkObject:
		return newUnkObject(name, value)
	}
	return Invalid
}

// CreateUnchecked builds an identifier without any validation. Only use it
// on input that is already known to be valid.
func CreateUnchecked(typ IdentifierType, name string, value uint16, kind ObjectKind, dataID uint32) Identifier {
	switch typ {
	case TypePlayer:
		return newPlayer(name, value)
	case TypeRetainer:
		return newRetainer(name)
	case TypeOwned:
		return newOwned(name, value, kind, dataID)
	case TypeSpecial:
		return newSpecial(SpecialActor(value))
	case TypeNpc:
		return newNpc(kind, dataID, value)
	case TypeUnkObject:
		return newUnkObject(name, value)
	}
	return Invalid
}

// VerifyWorld reports whether worldID is a public world or AnyWorld.
func (m *Manager) VerifyWorld(worldID uint16) bool {
	if worldID == AnyWorld {
		return true
	}
	_, ok := m.data.Load().World(worldID)
	return ok
}

// VerifySpecial reports whether special is one of the special UI slots.
func VerifySpecial(special SpecialActor) bool {
	return special >= CharacterScreen && special <= Portrait
}

// VerifyIndex reports whether index is a valid object index for an NPC.
func VerifyIndex(index uint16) bool {
	switch {
	case index == NoIndex:
		return true
	case index < uint16(CutsceneStart):
		return index%2 == 0
	case index > uint16(Portrait):
		return index < maxNpcIndex
	}
	return false
}

// VerifyOwnedData reports whether kind can be owned and dataID is known for it.
func (m *Manager) VerifyOwnedData(kind ObjectKind, dataID uint32) bool {
	t := m.data.Load()
	var ok bool
	switch kind {
	case KindMountType:
		_, ok = t.Mount(dataID)
	case KindCompanion:
		_, ok = t.Companion(dataID)
	case KindOrnament:
		_, ok = t.Ornament(dataID)
	case KindBattleNpc:
		_, ok = t.BNpc(dataID)
	}
	return ok
}

// VerifyNpcData reports whether dataID is known for kind.
func (m *Manager) VerifyNpcData(kind ObjectKind, dataID uint32) bool {
	if kind == KindEventNpc {
		_, ok := m.data.Load().ENpc(dataID)
		return ok
	}
	return m.VerifyOwnedData(kind, dataID)
}
