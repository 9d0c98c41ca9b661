package actors

import (
	"fmt"
	"strconv"
)

// IdentifierType discriminates which Identifier fields carry meaning.
type IdentifierType uint8

const (
	TypeInvalid IdentifierType = iota
	TypePlayer
	TypeRetainer
	TypeOwned
	TypeSpecial
	TypeNpc
	TypeUnkObject
)

var identifierTypeNames = [...]string{
	TypeInvalid:   "Invalid",
	TypePlayer:    "Player",
	TypeRetainer:  "Retainer",
	TypeOwned:     "Owned",
	TypeSpecial:   "Special",
	TypeNpc:       "Npc",
	TypeUnkObject: "UnkObject",
}

func (t IdentifierType) String() string {
	if int(t) < len(identifierTypeNames) {
		return identifierTypeNames[t]
	}
	return strconv.Itoa(int(t))
}

// MarshalText writes the type name.
func (t IdentifierType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts a type name or its numeric code.
func (t *IdentifierType) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), identifierTypeNames[:])
	if err != nil {
		return fmt.Errorf("identifier type: %w", err)
	}
	*t = IdentifierType(v)
	return nil
}

// UnmarshalJSON accepts a quoted name or a bare number.
func (t *IdentifierType) UnmarshalJSON(data []byte) error {
	return t.UnmarshalText(unquote(data))
}

// ObjectKind is the game's object kind code for a live object table entry.
type ObjectKind uint8

const (
	KindNone ObjectKind = iota
	KindPlayer
	KindBattleNpc
	KindEventNpc
	KindTreasure
	KindAetheryte
	KindGatheringPoint
	KindEventObj
	KindMountType
	KindCompanion
	KindRetainer
	KindArea
	KindHousing
	KindCutscene
	KindCardStand
	KindOrnament
)

// KindUnset is what a structured record decodes to when it has no kind.
const KindUnset = KindCardStand

var objectKindNames = [...]string{
	KindNone:           "None",
	KindPlayer:         "Player",
	KindBattleNpc:      "BattleNpc",
	KindEventNpc:       "EventNpc",
	KindTreasure:       "Treasure",
	KindAetheryte:      "Aetheryte",
	KindGatheringPoint: "GatheringPoint",
	KindEventObj:       "EventObj",
	KindMountType:      "MountType",
	KindCompanion:      "Companion",
	KindRetainer:       "Retainer",
	KindArea:           "Area",
	KindHousing:        "Housing",
	KindCutscene:       "Cutscene",
	KindCardStand:      "CardStand",
	KindOrnament:       "Ornament",
}

func (k ObjectKind) String() string {
	if int(k) < len(objectKindNames) {
		return objectKindNames[k]
	}
	return strconv.Itoa(int(k))
}

// ParseObjectKind accepts a kind name or its numeric code.
func ParseObjectKind(s string) (ObjectKind, error) {
	v, err := parseEnum(s, objectKindNames[:])
	if err != nil {
		return KindNone, fmt.Errorf("object kind: %w", err)
	}
	return ObjectKind(v), nil
}

func (k ObjectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ObjectKind) UnmarshalText(text []byte) error {
	v, err := ParseObjectKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k *ObjectKind) UnmarshalJSON(data []byte) error {
	return k.UnmarshalText(unquote(data))
}

// SpecialActor addresses the fixed UI slots that share the object index space.
type SpecialActor uint16

const (
	CutsceneStart   SpecialActor = 200
	CutsceneEnd     SpecialActor = 240
	CharacterScreen SpecialActor = CutsceneEnd
	ExamineScreen   SpecialActor = 241
	FittingRoom     SpecialActor = 242
	DyePreview      SpecialActor = 243
	Portrait        SpecialActor = 244
)

var specialActorNames = map[SpecialActor]string{
	CharacterScreen: "CharacterScreen",
	ExamineScreen:   "ExamineScreen",
	FittingRoom:     "FittingRoom",
	DyePreview:      "DyePreview",
	Portrait:        "Portrait",
}

var specialActorLabels = map[SpecialActor]string{
	CharacterScreen: "Character Screen Actor",
	ExamineScreen:   "Examine Screen Actor",
	FittingRoom:     "Fitting Room Actor",
	DyePreview:      "Dye Preview Actor",
	Portrait:        "Portrait Actor",
}

func (s SpecialActor) String() string {
	if name, ok := specialActorNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// Label is the human readable name shown for the slot.
func (s SpecialActor) Label() string {
	if label, ok := specialActorLabels[s]; ok {
		return label
	}
	return "Invalid"
}

func (s SpecialActor) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SpecialActor) UnmarshalText(text []byte) error {
	str := string(text)
	for v, name := range specialActorNames {
		if name == str {
			*s = v
			return nil
		}
	}
	n, err := strconv.ParseUint(str, 10, 16)
	if err != nil {
		return fmt.Errorf("special actor: unknown value %q", str)
	}
	*s = SpecialActor(n)
	return nil
}

func (s *SpecialActor) UnmarshalJSON(data []byte) error {
	return s.UnmarshalText(unquote(data))
}

// parseEnum resolves s against names first and falls back to a decimal code.
func parseEnum(s string, names []string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown value %q", s)
	}
	return int(n), nil
}

func unquote(data []byte) []byte {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return data[1 : len(data)-1]
	}
	return data
}
