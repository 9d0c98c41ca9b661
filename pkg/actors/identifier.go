// Package actors turns live game objects into stable actor identifiers and
// validates the identifiers built from stored or user supplied input.
package actors

import (
	"cmp"
	"fmt"
	"strings"
)

const (
	// AnyWorld matches a player on every home world.
	AnyWorld uint16 = 0xFFFF
	// NoIndex marks an NPC identifier that is not bound to an object slot.
	NoIndex uint16 = 0xFFFF
	// NoViewer is passed to the formatter when there is no local player.
	NoViewer uint16 = 0
)

// Identifier is an immutable, comparable actor identity. The zero value is
// Invalid. Identifiers are safe to use as map keys.
type Identifier struct {
	typ    IdentifierType
	kind   ObjectKind
	value  uint16 // home world, object index or special slot depending on typ
	dataID uint32
	name   string
}

// Invalid is returned by every construction path that fails.
var Invalid = Identifier{}

// IsValid reports whether id is anything but Invalid.
func (id Identifier) IsValid() bool {
	return id.typ != TypeInvalid
}

func (id Identifier) Type() IdentifierType {
	return id.typ
}

// Kind is meaningful for Owned and Npc identifiers.
func (id Identifier) Kind() ObjectKind {
	return id.kind
}

// DataID is meaningful for Owned and Npc identifiers.
func (id Identifier) DataID() uint32 {
	return id.dataID
}

// PlayerName returns the raw name bytes; the owner name for Owned identifiers.
func (id Identifier) PlayerName() string {
	return id.name
}

// HomeWorld is set for Player and Owned identifiers.
func (id Identifier) HomeWorld() (uint16, bool) {
	switch id.typ {
	case TypePlayer, TypeOwned:
		return id.value, true
	}
	return 0, false
}

// Index is set for Npc and UnkObject identifiers. An Npc without a slot
// reports NoIndex.
func (id Identifier) Index() (uint16, bool) {
	switch id.typ {
	case TypeNpc, TypeUnkObject:
		return id.value, true
	}
	return 0, false
}

// Special is set for Special identifiers.
func (id Identifier) Special() (SpecialActor, bool) {
	if id.typ == TypeSpecial {
		return SpecialActor(id.value), true
	}
	return 0, false
}

// Compare orders identifiers by type, kind, slot or world, data id and name.
func (id Identifier) Compare(other Identifier) int {
	return cmp.Or(
		cmp.Compare(id.typ, other.typ),
		cmp.Compare(id.kind, other.kind),
		cmp.Compare(id.value, other.value),
		cmp.Compare(id.dataID, other.dataID),
		strings.Compare(id.name, other.name),
	)
}

// String is a debug rendering. Use Manager.ToString for display labels.
func (id Identifier) String() string {
	switch id.typ {
	case TypePlayer:
		return fmt.Sprintf("Player(%s@%d)", id.name, id.value)
	case TypeRetainer:
		return fmt.Sprintf("Retainer(%s)", id.name)
	case TypeOwned:
		return fmt.Sprintf("Owned(%s@%d %s:%d)", id.name, id.value, id.kind, id.dataID)
	case TypeSpecial:
		return fmt.Sprintf("Special(%s)", SpecialActor(id.value))
	case TypeNpc:
		return fmt.Sprintf("Npc(%s:%d #%d)", id.kind, id.dataID, id.value)
	case TypeUnkObject:
		return fmt.Sprintf("UnkObject(%s #%d)", id.name, id.value)
	}
	return "Invalid"
}

// The builders below produce the canonical layout for each type. Checked and
// unchecked construction both go through them so equal inputs compare equal.

func newPlayer(name string, homeWorld uint16) Identifier {
	return Identifier{typ: TypePlayer, kind: KindPlayer, value: homeWorld, name: name}
}

func newRetainer(name string) Identifier {
	return Identifier{typ: TypeRetainer, kind: KindRetainer, name: name}
}

func newOwned(ownerName string, homeWorld uint16, kind ObjectKind, dataID uint32) Identifier {
	return Identifier{typ: TypeOwned, kind: kind, value: homeWorld, dataID: dataID, name: ownerName}
}

func newSpecial(special SpecialActor) Identifier {
	return Identifier{typ: TypeSpecial, kind: KindPlayer, value: uint16(special)}
}

func newNpc(kind ObjectKind, dataID uint32, index uint16) Identifier {
	return Identifier{typ: TypeNpc, kind: kind, value: index, dataID: dataID}
}

func newUnkObject(name string, index uint16) Identifier {
	return Identifier{typ: TypeUnkObject, kind: KindNone, value: index, name: name}
}
