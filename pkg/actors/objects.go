package actors

// Object is a read-only view of one live object table entry.
type Object interface {
	ObjectIndex() uint16
	ObjectKind() ObjectKind
	// Name returns the raw name bytes.
	Name() []byte
	// HomeWorld is meaningful for player characters.
	HomeWorld() uint16
	// EntityID is the id other objects use to refer to this one as owner.
	EntityID() uint32
	// OwnerID is the owner back-reference of battle NPCs, NoOwner if none.
	OwnerID() uint32
	// NameID is the battle NPC template id.
	NameID() uint32
	DataID() uint32
	// NpcID is the secondary event NPC id accessor.
	NpcID() uint32
}

// ObjectTable is the live object table the resolver reads from. It is
// owned by the game; implementations only answer queries. Lookups that
// report ok must return a non-nil Object, and a miss returns (nil, false).
// The resolver does not look inside the interface for a nil pointer.
type ObjectTable interface {
	Object(index uint16) (Object, bool)
	SearchByID(id uint32) (Object, bool)
	// CutsceneParent returns the slot a cutscene object mirrors, if any.
	CutsceneParent(index uint16) (uint16, bool)
	// CompanionID reads the kind specific data id of a mount, companion or
	// ornament. The location differs per kind and per game version, so it is
	// left to the table adapter.
	CompanionID(actor, owner Object) uint32
}
