package actors

import (
	"github.com/xivmods/actorid/pkg/gamedata"
)

const (
	worldGilgamesh  uint16 = 63
	worldOmega      uint16 = 84
	worldMandragora uint16 = 82

	mountCompanionChocobo uint32 = 1
	mountFatChocobo       uint32 = 55
	minionWindUpTonberry  uint32 = 12
	ornamentUmbrella      uint32 = 3
	bnpcFairy             uint32 = 1008
	bnpcGoblin            uint32 = 47
	enpcMomodi            uint32 = 1001426
	enpcSquadronRecruit   uint32 = 1016789
)

func newTestTables() *gamedata.Tables {
	t := gamedata.NewTables()
	t.Worlds[worldGilgamesh] = "Gilgamesh"
	t.Worlds[worldOmega] = "Omega"
	t.Worlds[worldMandragora] = "Mandragora"
	t.Mounts[mountCompanionChocobo] = "Company Chocobo"
	t.Mounts[mountFatChocobo] = "Fat Chocobo"
	t.Companions[minionWindUpTonberry] = "Wind-up Tonberry"
	t.Ornaments[ornamentUmbrella] = "Parasol"
	t.BNpcs[bnpcFairy] = "Eos"
	t.BNpcs[bnpcGoblin] = "Goblin Thug"
	t.ENpcs[enpcMomodi] = "Momodi"
	t.ENpcs[enpcSquadronRecruit] = "Squadron Recruit"
	return t
}

func newTestManager(opts ...Option) *Manager {
	return NewManager(gamedata.NewStore(newTestTables()), opts...)
}

// fakeObject is a plain live object entry.
type fakeObject struct {
	index     uint16
	kind      ObjectKind
	name      string
	homeWorld uint16
	entityID  uint32
	ownerID   uint32
	nameID    uint32
	dataID    uint32
	npcID     uint32

	// kind specific data read by fakeTable.CompanionID
	mountID     uint32
	ornamentID  uint32
	companionID uint32
}

func (o *fakeObject) ObjectIndex() uint16    { return o.index }
func (o *fakeObject) ObjectKind() ObjectKind { return o.kind }
func (o *fakeObject) Name() []byte           { return []byte(o.name) }
func (o *fakeObject) HomeWorld() uint16      { return o.homeWorld }
func (o *fakeObject) EntityID() uint32       { return o.entityID }
func (o *fakeObject) OwnerID() uint32        { return o.ownerID }
func (o *fakeObject) NameID() uint32         { return o.nameID }
func (o *fakeObject) DataID() uint32         { return o.dataID }
func (o *fakeObject) NpcID() uint32          { return o.npcID }

type fakeTable struct {
	objects map[uint16]*fakeObject
	parents map[uint16]uint16
}

func newFakeTable(objs ...*fakeObject) *fakeTable {
	t := &fakeTable{
		objects: make(map[uint16]*fakeObject),
		parents: make(map[uint16]uint16),
	}
	for _, o := range objs {
		t.objects[o.index] = o
	}
	return t
}

func (t *fakeTable) Object(index uint16) (Object, bool) {
	o, ok := t.objects[index]
	if !ok {
		return nil, false
	}
	return o, true
}

func (t *fakeTable) SearchByID(id uint32) (Object, bool) {
	for _, o := range t.objects {
		if o.entityID == id {
			return o, true
		}
	}
	return nil, false
}

func (t *fakeTable) CutsceneParent(index uint16) (uint16, bool) {
	p, ok := t.parents[index]
	return p, ok
}

func (t *fakeTable) CompanionID(actor, owner Object) uint32 {
	a, o := actor.(*fakeObject), owner.(*fakeObject)
	switch a.kind {
	case KindMountType:
		return o.mountID
	case KindOrnament:
		return o.ornamentID
	case KindCompanion:
		return a.companionID
	}
	return a.dataID
}
