// Package gamedata holds the read-only id to name tables extracted from game
// data sheets and the snapshot store that publishes them.
package gamedata

// Tables maps numeric game data ids to display names per sheet.
// A Tables value must not be modified once it has been handed to a Store.
type Tables struct {
	Version uint64

	Worlds     map[uint16]string
	Mounts     map[uint32]string
	Companions map[uint32]string
	Ornaments  map[uint32]string
	BNpcs      map[uint32]string
	ENpcs      map[uint32]string
}

// NewTables returns empty, non-nil tables.
func NewTables() *Tables {
	return &Tables{
		Worlds:     make(map[uint16]string),
		Mounts:     make(map[uint32]string),
		Companions: make(map[uint32]string),
		Ornaments:  make(map[uint32]string),
		BNpcs:      make(map[uint32]string),
		ENpcs:      make(map[uint32]string),
	}
}

func (t *Tables) World(id uint16) (string, bool) {
	name, ok := t.Worlds[id]
	return name, ok
}

func (t *Tables) Mount(id uint32) (string, bool) {
	name, ok := t.Mounts[id]
	return name, ok
}

func (t *Tables) Companion(id uint32) (string, bool) {
	name, ok := t.Companions[id]
	return name, ok
}

func (t *Tables) Ornament(id uint32) (string, bool) {
	name, ok := t.Ornaments[id]
	return name, ok
}

func (t *Tables) BNpc(id uint32) (string, bool) {
	name, ok := t.BNpcs[id]
	return name, ok
}

func (t *Tables) ENpc(id uint32) (string, bool) {
	name, ok := t.ENpcs[id]
	return name, ok
}

// Len is the total number of entries over all sheets.
func (t *Tables) Len() int {
	return len(t.Worlds) + len(t.Mounts) + len(t.Companions) +
		len(t.Ornaments) + len(t.BNpcs) + len(t.ENpcs)
}
