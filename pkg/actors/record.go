package actors

import (
	"encoding/json"
)

// Record is the structured form of an Identifier used for storage and
// transport. Only the fields meaningful to Type are set.
type Record struct {
	Type       IdentifierType `json:"Type"`
	PlayerName *string        `json:"PlayerName,omitempty"`
	HomeWorld  *uint16        `json:"HomeWorld,omitempty"`
	Kind       *ObjectKind    `json:"Kind,omitempty"`
	DataID     *uint32        `json:"DataId,omitempty"`
	Special    *SpecialActor  `json:"Special,omitempty"`
	Index      *uint16        `json:"Index,omitempty"`
}

// ToRecord converts id to its structured form.
func (id Identifier) ToRecord() Record {
	r := Record{Type: id.typ}
	switch id.typ {
	case TypePlayer:
		r.PlayerName = ptr(id.name)
		r.HomeWorld = ptr(id.value)
	case TypeRetainer:
		r.PlayerName = ptr(id.name)
	case TypeOwned:
		r.PlayerName = ptr(id.name)
		r.HomeWorld = ptr(id.value)
		r.Kind = ptr(id.kind)
		r.DataID = ptr(id.dataID)
	case TypeSpecial:
		r.Special = ptr(SpecialActor(id.value))
	case TypeNpc:
		r.Kind = ptr(id.kind)
		r.Index = ptr(id.value)
		r.DataID = ptr(id.dataID)
	case TypeUnkObject:
		r.PlayerName = ptr(id.name)
		r.Index = ptr(id.value)
	}
	return r
}

// MarshalJSON encodes the structured form of id.
func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.ToRecord())
}

// FromRecord validates a structured record. Missing fields fall back to
// defaults, which usually makes the result Invalid rather than an error.
func (m *Manager) FromRecord(r *Record) Identifier {
	if r == nil {
		return Invalid
	}

	name := deref(r.PlayerName, "")
	homeWorld := deref(r.HomeWorld, 0)
	kind := deref(r.Kind, KindUnset)
	dataID := deref(r.DataID, 0)
	index := deref(r.Index, NoIndex)

	switch r.Type {
	case TypePlayer:
		return m.CreatePlayer(name, homeWorld)
	case TypeRetainer:
		return m.CreateRetainer(name)
	case TypeOwned:
		return m.CreateOwned(name, homeWorld, kind, dataID)
	case TypeSpecial:
		return m.CreateSpecial(deref(r.Special, 0))
	case TypeNpc:
		return m.CreateNpc(kind, dataID, index)
	case TypeUnkObject:
		return newUnkObject(name, index)
	}
	return Invalid
}

// FromJSON decodes and validates a structured record. Malformed input yields
// Invalid.
func (m *Manager) FromJSON(data []byte) Identifier {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		m.logger.Debug("Discarding malformed identifier record", "error", err)
		return Invalid
	}
	return m.FromRecord(&r)
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
