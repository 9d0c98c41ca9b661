package actors

const (
	// NoOwner is the owner id of battle NPCs nobody controls.
	NoOwner uint32 = 0xE0000000
	// StaleSquadronID is reported as data id by squadron members. The game
	// itself asks the secondary NPC id accessor in that case.
	StaleSquadronID uint32 = 0xF845D

	maxCutsceneDepth = 8
)

// FromIndex resolves the object at index in the configured object table.
func (m *Manager) FromIndex(index uint16, verify bool) Identifier {
	if m.objects == nil {
		return Invalid
	}
	obj, ok := m.objects.Object(index)
	if !ok {
		return Invalid
	}
	return m.FromObject(obj, verify)
}

// FromObject computes the identifier of a live object. With verify set the
// names and ids read from the object are validated like user input; without
// it a best-effort identifier is built from whatever the object holds.
func (m *Manager) FromObject(actor Object, verify bool) Identifier {
	actor, ok := m.followCutscene(actor)
	if !ok {
		return Invalid
	}

	idx := actor.ObjectIndex()
	if idx >= uint16(CharacterScreen) && idx <= uint16(Portrait) {
		return newSpecial(SpecialActor(idx))
	}

	switch actor.ObjectKind() {
	case KindPlayer:
		name := string(actor.Name())
		if verify {
			return m.CreatePlayer(name, actor.HomeWorld())
		}
		return newPlayer(name, actor.HomeWorld())
	case KindBattleNpc:
		return m.fromBattleNpc(actor, verify)
	case KindEventNpc:
		dataID := actor.DataID()
		if dataID == StaleSquadronID {
			dataID = actor.NpcID()
		}
		if verify {
			return m.CreateNpc(KindEventNpc, dataID, idx)
		}
		return newNpc(KindEventNpc, dataID, idx)
	case KindMountType, KindCompanion, KindOrnament:
		return m.fromCompanion(actor, verify)
	case KindRetainer:
		name := string(actor.Name())
		if verify {
			return m.CreateRetainer(name)
		}
		return newRetainer(name)
	}
	return newUnkObject(string(actor.Name()), idx)
}

// followCutscene walks from a cutscene copy to the object it mirrors. The
// table is live data, so the walk is bounded and refuses to revisit a slot.
func (m *Manager) followCutscene(actor Object) (Object, bool) {
	var visited [maxCutsceneDepth]uint16
	for depth := 0; ; depth++ {
		if actor == nil {
			return nil, false
		}
		idx := actor.ObjectIndex()
		if idx < uint16(CutsceneStart) || idx >= uint16(CutsceneEnd) || m.objects == nil {
			return actor, true
		}
		parent, ok := m.objects.CutsceneParent(idx)
		if !ok {
			return actor, true
		}
		if depth == maxCutsceneDepth {
			m.logger.Warn("Cutscene chain too deep", "index", idx)
			return nil, false
		}
		for _, seen := range visited[:depth] {
			if seen == idx {
				m.logger.Warn("Cutscene chain loops", "index", idx, "parent", parent)
				return nil, false
			}
		}
		visited[depth] = idx

		next, ok := m.objects.Object(parent)
		if !ok {
			return nil, false
		}
		actor = next
	}
}

func (m *Manager) fromBattleNpc(actor Object, verify bool) Identifier {
	nameID := actor.NameID()
	ownerID := actor.OwnerID()
	if ownerID == NoOwner {
		if verify {
			return m.CreateNpc(KindBattleNpc, nameID, actor.ObjectIndex())
		}
		return newNpc(KindBattleNpc, nameID, actor.ObjectIndex())
	}

	if m.objects == nil {
		return Invalid
	}
	owner, ok := m.objects.SearchByID(ownerID)
	if !ok || owner == nil {
		return Invalid
	}

	name := string(owner.Name())
	if verify {
		return m.CreateOwned(name, owner.HomeWorld(), KindBattleNpc, nameID)
	}
	return newOwned(name, owner.HomeWorld(), KindBattleNpc, nameID)
}

// fromCompanion resolves mounts, companions and ornaments, which always sit
// in the odd slot right after their owner.
func (m *Manager) fromCompanion(actor Object, verify bool) Identifier {
	idx := actor.ObjectIndex()
	if idx%2 == 0 || m.objects == nil {
		return Invalid
	}

	owner, ok := m.objects.Object(idx - 1)
	if !ok || owner == nil {
		return Invalid
	}

	kind := actor.ObjectKind()
	dataID := m.objects.CompanionID(actor, owner)
	name := string(owner.Name())
	if verify {
		return m.CreateOwned(name, owner.HomeWorld(), kind, dataID)
	}
	return newOwned(name, owner.HomeWorld(), kind, dataID)
}
