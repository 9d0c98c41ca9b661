// Package sheets loads lookup tables from exported game data sheet files.
package sheets

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/xivmods/actorid/pkg/gamedata"
)

// File is the layout of an exported sheet file. JSON exports decode through
// the same path since JSON is valid YAML.
type File struct {
	Worlds     []World `yaml:"worlds,omitempty"`
	Mounts     []Row   `yaml:"mounts,omitempty"`
	Companions []Row   `yaml:"companions,omitempty"`
	Ornaments  []Row   `yaml:"ornaments,omitempty"`
	BNpcs      []Row   `yaml:"bnpcs,omitempty"`
	ENpcs      []Row   `yaml:"enpcs,omitempty"`
}

// World is one row of the world sheet. Only public worlds are valid homes.
type World struct {
	ID     uint16 `yaml:"id"`
	Name   string `yaml:"name"`
	Public *bool  `yaml:"public,omitempty"`
}

// Row is one id/name row of any other sheet.
type Row struct {
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
}

// Parse decodes a sheet file into lookup tables.
func Parse(data []byte) (*gamedata.Tables, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error unmarshalling sheet file: %w", err)
	}
	return f.Tables()
}

// Load reads and decodes the sheet file at path.
func Load(path string) (*gamedata.Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet file: %w", err)
	}
	return Parse(data)
}

// Tables converts the file rows. Rows with empty names are skipped since the
// game leaves unused ids blank.
func (f *File) Tables() (*gamedata.Tables, error) {
	t := gamedata.NewTables()
	for _, w := range f.Worlds {
		if w.Name == "" || (w.Public != nil && !*w.Public) {
			continue
		}
		if _, ok := t.Worlds[w.ID]; ok {
			return nil, fmt.Errorf("worlds: duplicate id %d", w.ID)
		}
		t.Worlds[w.ID] = w.Name
	}

	for _, sheet := range []struct {
		name string
		rows []Row
		dst  map[uint32]string
	}{
		{"mounts", f.Mounts, t.Mounts},
		{"companions", f.Companions, t.Companions},
		{"ornaments", f.Ornaments, t.Ornaments},
		{"bnpcs", f.BNpcs, t.BNpcs},
		{"enpcs", f.ENpcs, t.ENpcs},
	} {
		for _, r := range sheet.rows {
			if r.Name == "" {
				continue
			}
			if _, ok := sheet.dst[r.ID]; ok {
				return nil, fmt.Errorf("%s: duplicate id %d", sheet.name, r.ID)
			}
			sheet.dst[r.ID] = r.Name
		}
	}
	return t, nil
}

// Save writes t to path as a YAML sheet file.
func Save(path string, t *gamedata.Tables) error {
	data, err := yaml.Marshal(FromTables(t))
	if err != nil {
		return fmt.Errorf("error marshalling sheet file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing sheet file: %w", err)
	}
	return nil
}

// FromTables is the inverse of File.Tables. Rows are sorted by id.
func FromTables(t *gamedata.Tables) *File {
	f := &File{}
	for id, name := range t.Worlds {
		f.Worlds = append(f.Worlds, World{ID: id, Name: name})
	}
	slices.SortFunc(f.Worlds, func(a, b World) int { return cmp.Compare(a.ID, b.ID) })
	f.Mounts = rows(t.Mounts)
	f.Companions = rows(t.Companions)
	f.Ornaments = rows(t.Ornaments)
	f.BNpcs = rows(t.BNpcs)
	f.ENpcs = rows(t.ENpcs)
	return f
}

func rows(m map[uint32]string) []Row {
	out := make([]Row, 0, len(m))
	for id, name := range m {
		out = append(out, Row{ID: id, Name: name})
	}
	slices.SortFunc(out, func(a, b Row) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
