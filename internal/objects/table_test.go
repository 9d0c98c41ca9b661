package objects

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xivmods/actorid/pkg/actors"
	"github.com/xivmods/actorid/pkg/gamedata"
)

const testSnapshot = `
objects:
  - index: 0
    kind: Player
    name: Jean Valjean
    homeWorld: 84
    entityId: 268435457
    mountId: 55
    ornamentId: 3
  - index: 1
    kind: MountType
  - index: 2
    kind: Player
    name: Cosette Fauchelevent
    homeWorld: 63
    entityId: 268435458
  - index: 3
    kind: Companion
    companionId: 12
  - index: 40
    kind: BattleNpc
    nameId: 1008
    ownerId: 268435457
  - index: 42
    kind: "2"
    nameId: 47
  - index: 202
    kind: Player
    name: Jean Valjean
    homeWorld: 84
cutsceneParents:
  - index: 202
    parent: 0
`

func TestParseSnapshot(t *testing.T) {
	entries, parents, err := ParseSnapshot([]byte(testSnapshot))
	require.NoError(t, err)
	require.Len(t, entries, 7)

	assert.Equal(t, actors.KindPlayer, entries[0].Kind)
	assert.Equal(t, "Jean Valjean", entries[0].Name)
	assert.Equal(t, uint32(55), entries[0].MountID)
	assert.Equal(t, actors.NoOwner, entries[0].OwnerID, "missing owner means masterless")
	assert.Equal(t, uint32(268435457), entries[4].OwnerID)
	assert.Equal(t, actors.KindBattleNpc, entries[5].Kind, "numeric kinds are accepted")
	assert.Equal(t, map[uint16]uint16{202: 0}, parents)
}

func TestParseSnapshot_JSON(t *testing.T) {
	entries, parents, err := ParseSnapshot([]byte(`{"objects":[{"index":4,"kind":"Retainer","name":"Retainer"}]}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, actors.KindRetainer, entries[0].Kind)
	assert.Empty(t, parents)
}

func TestParseSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"unknown kind", "objects:\n  - index: 1\n    kind: Dragon\n", "object kind"},
		{"duplicate index", "objects:\n  - index: 1\n    kind: Player\n  - index: 1\n    kind: Player\n", "duplicate index"},
		{"not yaml", "objects: [", "error unmarshalling snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSnapshot([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSnapshot), 0644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading snapshot file")
}

func TestTable_Lookups(t *testing.T) {
	entries, parents, err := ParseSnapshot([]byte(testSnapshot))
	require.NoError(t, err)
	table := New()
	table.Replace(entries, parents)

	obj, ok := table.Object(2)
	require.True(t, ok)
	assert.Equal(t, []byte("Cosette Fauchelevent"), obj.Name())
	assert.Equal(t, uint16(63), obj.HomeWorld())

	missing, ok := table.Object(5)
	assert.False(t, ok)
	assert.True(t, missing == nil, "a miss is an untyped nil Object")

	owner, ok := table.SearchByID(268435457)
	require.True(t, ok)
	assert.Equal(t, uint16(0), owner.ObjectIndex())

	none, ok := table.SearchByID(actors.NoOwner)
	assert.False(t, ok)
	assert.True(t, none == nil)

	parent, ok := table.CutsceneParent(202)
	assert.True(t, ok)
	assert.Equal(t, uint16(0), parent)
	_, ok = table.CutsceneParent(203)
	assert.False(t, ok)
}

func TestTable_CompanionID(t *testing.T) {
	entries, parents, err := ParseSnapshot([]byte(testSnapshot))
	require.NoError(t, err)
	table := New()
	table.Replace(entries, parents)

	owner, _ := table.Object(0)
	mount, _ := table.Object(1)
	assert.Equal(t, uint32(55), table.CompanionID(mount, owner), "mount id lives on the owner")

	owner2, _ := table.Object(2)
	minion, _ := table.Object(3)
	assert.Equal(t, uint32(12), table.CompanionID(minion, owner2), "companion id lives on the companion")
}

func TestTable_ResolvesThroughManager(t *testing.T) {
	entries, parents, err := ParseSnapshot([]byte(testSnapshot))
	require.NoError(t, err)
	table := New()
	table.Replace(entries, parents)

	tables := gamedata.NewTables()
	tables.Worlds[84] = "Omega"
	tables.Worlds[63] = "Gilgamesh"
	tables.Mounts[55] = "Fat Chocobo"
	tables.Companions[12] = "Wind-up Tonberry"
	tables.BNpcs[1008] = "Eos"
	tables.BNpcs[47] = "Goblin Thug"
	m := actors.NewManager(gamedata.NewStore(tables), actors.WithObjectTable(table))

	assert.Equal(t, "Jean Valjean's Fat Chocobo", m.ToString(m.FromIndex(1, true), 84))
	assert.Equal(t, "Cosette Fauchelevent (Gilgamesh)'s Wind-up Tonberry", m.ToString(m.FromIndex(3, true), 84))
	assert.Equal(t, "Jean Valjean's Eos", m.ToString(m.FromIndex(40, true), 84))
	assert.Equal(t, "Goblin Thug at 42", m.ToString(m.FromIndex(42, true), 84))
	assert.Equal(t, m.FromIndex(0, true), m.FromIndex(202, true))
}

func TestTable_ReplaceConcurrent(t *testing.T) {
	table := New()
	var wg sync.WaitGroup

	for i := uint16(0); i < 50; i++ {
		wg.Add(2)
		go func(n uint16) {
			defer wg.Done()
			table.Replace([]Entry{{Index: n, Kind: actors.KindPlayer}}, nil)
		}(i)
		go func(n uint16) {
			defer wg.Done()
			table.Object(n)
			table.CutsceneParent(n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, table.Len())
}
