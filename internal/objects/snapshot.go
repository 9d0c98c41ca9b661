package objects

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xivmods/actorid/pkg/actors"
)

// snapshotFile is the on-disk layout of a captured object table. JSON is a
// subset of YAML, so both formats load through the same decoder.
type snapshotFile struct {
	Objects []snapshotObject `yaml:"objects"`
	Parents []snapshotParent `yaml:"cutsceneParents"`
}

type snapshotParent struct {
	Index  uint16 `yaml:"index"`
	Parent uint16 `yaml:"parent"`
}

type snapshotObject struct {
	Index       uint16  `yaml:"index"`
	Kind        string  `yaml:"kind"`
	Name        string  `yaml:"name"`
	HomeWorld   uint16  `yaml:"homeWorld"`
	EntityID    uint32  `yaml:"entityId"`
	OwnerID     *uint32 `yaml:"ownerId"`
	NameID      uint32  `yaml:"nameId"`
	DataID      uint32  `yaml:"dataId"`
	NpcID       uint32  `yaml:"npcId"`
	MountID     uint32  `yaml:"mountId"`
	OrnamentID  uint32  `yaml:"ornamentId"`
	CompanionID uint32  `yaml:"companionId"`
}

// ParseSnapshot decodes a captured object table.
func ParseSnapshot(data []byte) ([]Entry, map[uint16]uint16, error) {
	var f snapshotFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("error unmarshalling snapshot: %w", err)
	}

	entries := make([]Entry, 0, len(f.Objects))
	seen := make(map[uint16]bool, len(f.Objects))
	for i, o := range f.Objects {
		kind, err := actors.ParseObjectKind(o.Kind)
		if err != nil {
			return nil, nil, fmt.Errorf("object %d: %w", i, err)
		}
		if seen[o.Index] {
			return nil, nil, fmt.Errorf("object %d: duplicate index %d", i, o.Index)
		}
		seen[o.Index] = true

		// objects without an explicit owner are masterless
		ownerID := actors.NoOwner
		if o.OwnerID != nil {
			ownerID = *o.OwnerID
		}

		entries = append(entries, Entry{
			Index:       o.Index,
			Kind:        kind,
			Name:        o.Name,
			HomeWorld:   o.HomeWorld,
			EntityID:    o.EntityID,
			OwnerID:     ownerID,
			NameID:      o.NameID,
			DataID:      o.DataID,
			NpcID:       o.NpcID,
			MountID:     o.MountID,
			OrnamentID:  o.OrnamentID,
			CompanionID: o.CompanionID,
		})
	}

	parents := make(map[uint16]uint16, len(f.Parents))
	for _, p := range f.Parents {
		parents[p.Index] = p.Parent
	}
	return entries, parents, nil
}

// ReadFile reads and decodes the snapshot file at path.
func ReadFile(path string) ([]Entry, map[uint16]uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading snapshot file: %w", err)
	}
	return ParseSnapshot(data)
}

// LoadFile reads a snapshot file into a new Table.
func LoadFile(path string) (*Table, error) {
	entries, parents, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := New()
	t.Replace(entries, parents)
	return t, nil
}
