// Package objects provides an in-memory object table that stands in for the
// game's live table, built from captured snapshots.
package objects

import (
	"sync"

	"github.com/xivmods/actorid/pkg/actors"
)

// Entry is one captured object table slot. The kind specific fields mirror
// where the game keeps companion data: mount and ornament ids live on the
// owning character, the companion id on the companion itself.
type Entry struct {
	Index     uint16
	Kind      actors.ObjectKind
	Name      string
	HomeWorld uint16
	EntityID  uint32
	OwnerID   uint32
	NameID    uint32
	DataID    uint32
	NpcID     uint32

	MountID     uint32
	OrnamentID  uint32
	CompanionID uint32
}

// object adapts an Entry to actors.Object.
type object struct {
	e Entry
}

func (o *object) ObjectIndex() uint16           { return o.e.Index }
func (o *object) ObjectKind() actors.ObjectKind { return o.e.Kind }
func (o *object) Name() []byte                  { return []byte(o.e.Name) }
func (o *object) HomeWorld() uint16             { return o.e.HomeWorld }
func (o *object) EntityID() uint32              { return o.e.EntityID }
func (o *object) OwnerID() uint32               { return o.e.OwnerID }
func (o *object) NameID() uint32                { return o.e.NameID }
func (o *object) DataID() uint32                { return o.e.DataID }
func (o *object) NpcID() uint32                 { return o.e.NpcID }

// Table is a concurrency-safe actors.ObjectTable over captured entries.
type Table struct {
	mu       sync.RWMutex
	entries  map[uint16]*object
	byEntity map[uint32]*object
	parents  map[uint16]uint16
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries:  make(map[uint16]*object),
		byEntity: make(map[uint32]*object),
		parents:  make(map[uint16]uint16),
	}
}

// Replace swaps in a complete set of entries and cutscene parents.
func (t *Table) Replace(entries []Entry, parents map[uint16]uint16) {
	byIndex := make(map[uint16]*object, len(entries))
	byEntity := make(map[uint32]*object, len(entries))
	for _, e := range entries {
		o := &object{e: e}
		byIndex[e.Index] = o
		if e.EntityID != 0 && e.EntityID != actors.NoOwner {
			byEntity[e.EntityID] = o
		}
	}
	p := make(map[uint16]uint16, len(parents))
	for k, v := range parents {
		p[k] = v
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = byIndex
	t.byEntity = byEntity
	t.parents = p
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

func (t *Table) Object(index uint16) (actors.Object, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e, ok := t.entries[index]; ok {
		return e, true
	}
	return nil, false
}

func (t *Table) SearchByID(id uint32) (actors.Object, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e, ok := t.byEntity[id]; ok {
		return e, true
	}
	return nil, false
}

func (t *Table) CutsceneParent(index uint16) (uint16, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.parents[index]
	return p, ok
}

// CompanionID reads the data id of a mount, ornament or companion from the
// place the game stores it for that kind.
func (t *Table) CompanionID(actor, owner actors.Object) uint32 {
	a, ok := actor.(*object)
	if !ok {
		return actor.DataID()
	}
	o, _ := owner.(*object)

	switch a.e.Kind {
	case actors.KindMountType:
		if o != nil {
			return o.e.MountID
		}
	case actors.KindOrnament:
		if o != nil {
			return o.e.OrnamentID
		}
	case actors.KindCompanion:
		return a.e.CompanionID
	}
	return a.e.DataID
}
