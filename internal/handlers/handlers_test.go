package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xivmods/actorid/internal/dispatcher"
	"github.com/xivmods/actorid/internal/objects"
	"github.com/xivmods/actorid/pkg/actors"
	"github.com/xivmods/actorid/pkg/gamedata"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func testTables() *gamedata.Tables {
	t := gamedata.NewTables()
	t.Worlds[63] = "Gilgamesh"
	t.Worlds[84] = "Omega"
	t.Mounts[55] = "Fat Chocobo"
	t.BNpcs[47] = "Goblin Thug"
	t.ENpcs[1001426] = "Momodi"
	return t
}

func newTestService(t *testing.T, loader Loader) (*Service, *dispatcher.Dispatcher) {
	t.Helper()

	table := objects.New()
	table.Replace([]objects.Entry{
		{Index: 0, Kind: actors.KindPlayer, Name: "Jean Valjean", HomeWorld: 84, EntityID: 0x10000001, MountID: 55, OwnerID: actors.NoOwner},
		{Index: 1, Kind: actors.KindMountType, OwnerID: actors.NoOwner},
		{Index: 2, Kind: actors.KindPlayer, Name: "bad name", HomeWorld: 9999, OwnerID: actors.NoOwner},
		{Index: 42, Kind: actors.KindBattleNpc, NameID: 47, OwnerID: actors.NoOwner},
		{Index: 202, Kind: actors.KindPlayer, Name: "Jean Valjean", HomeWorld: 84, OwnerID: actors.NoOwner},
	}, map[uint16]uint16{202: 0})

	m := actors.NewManager(gamedata.NewStore(testTables()), actors.WithObjectTable(table))
	svc := NewService(Dependencies{
		Actors:      m,
		Objects:     table,
		Loader:      loader,
		ViewerWorld: 84,
	})

	d, err := dispatcher.New(nopLogger{})
	require.NoError(t, err)
	svc.Register(d)
	t.Cleanup(d.Close)
	return svc, d
}

func call(t *testing.T, d *dispatcher.Dispatcher, cmd string, args ...string) (any, error) {
	t.Helper()
	return d.Dispatch(dispatcher.Event{Command: cmd, Args: args})
}

func TestRegister_AllCommands(t *testing.T) {
	_, d := newTestService(t, nil)

	assert.Equal(t, []string{
		CmdActorCreate, CmdActorFormat, CmdActorLabel, CmdActorName, CmdActorObject,
		CmdCutsceneParent, CmdGameDataReload, CmdObjectsLoad,
	}, d.Commands())
}

func TestResolveObject(t *testing.T) {
	_, d := newTestService(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"player", []string{"0"}, `{"Type":"Player","PlayerName":"Jean Valjean","HomeWorld":84}`},
		{"owned mount", []string{"1", "true"}, `{"Type":"Owned","PlayerName":"Jean Valjean","HomeWorld":84,"Kind":"MountType","DataId":55}`},
		{"battle npc", []string{`"42"`}, `{"Type":"Npc","Kind":"BattleNpc","DataId":47,"Index":42}`},
		{"cutscene copy", []string{"202"}, `{"Type":"Player","PlayerName":"Jean Valjean","HomeWorld":84}`},
		{"empty slot", []string{"7"}, `{"Type":"Invalid"}`},
		{"float index", []string{"0.0", "1"}, `{"Type":"Player","PlayerName":"Jean Valjean","HomeWorld":84}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, d, CmdActorObject, tt.args...)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got.(string))
		})
	}
}

func TestResolveObject_BadArgs(t *testing.T) {
	_, d := newTestService(t, nil)

	_, err := call(t, d, CmdActorObject)
	assert.ErrorContains(t, err, "expected index")

	_, err = call(t, d, CmdActorObject, "seventy")
	assert.ErrorContains(t, err, "error parsing index")

	_, err = call(t, d, CmdActorObject, "0", "maybe")
	assert.ErrorContains(t, err, "error parsing verify")
}

func TestResolveObject_Unverified(t *testing.T) {
	_, d := newTestService(t, nil)

	got, err := call(t, d, CmdActorObject, "2", "false")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"Player","PlayerName":"bad name","HomeWorld":9999}`, got.(string))

	got, err = call(t, d, CmdActorObject, "2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"Invalid"}`, got.(string))
}

func TestLabelObject(t *testing.T) {
	_, d := newTestService(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"player", []string{"0"}, "Jean Valjean"},
		{"other viewer", []string{"0", "", "63"}, "Jean Valjean (Omega)"},
		{"owned mount", []string{"1", "true"}, "Jean Valjean's Fat Chocobo"},
		{"battle npc", []string{"42"}, "Goblin Thug at 42"},
		{"unverified keeps raw values", []string{"2", "false"}, "bad name (Invalid)"},
		{"verified rejects bad name", []string{"2", "true"}, "Invalid"},
		{"empty slot", []string{"7", "false"}, "Invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, d, CmdActorLabel, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := call(t, d, CmdActorLabel, "0", "true", "Omega")
	assert.ErrorContains(t, err, "error parsing viewer world")
	_, err = call(t, d, CmdActorLabel)
	assert.ErrorContains(t, err, "expected index")
}

func TestFormatIdentifier(t *testing.T) {
	_, d := newTestService(t, nil)

	player := `{"Type":"Player","PlayerName":"Jean Valjean","HomeWorld":84}`

	got, err := call(t, d, CmdActorFormat, player)
	require.NoError(t, err)
	assert.Equal(t, "Jean Valjean", got, "viewer world defaults to the configured one")

	got, err = call(t, d, CmdActorFormat, player, "63")
	require.NoError(t, err)
	assert.Equal(t, "Jean Valjean (Omega)", got)

	got, err = call(t, d, CmdActorFormat, `{"Type":"Special","Special":"Portrait"}`)
	require.NoError(t, err)
	assert.Equal(t, "Portrait Actor", got)

	got, err = call(t, d, CmdActorFormat, `not json`)
	require.NoError(t, err)
	assert.Equal(t, "Invalid", got)

	_, err = call(t, d, CmdActorFormat, player, "x")
	assert.ErrorContains(t, err, "error parsing viewer world")
}

func TestCreateIdentifier(t *testing.T) {
	_, d := newTestService(t, nil)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"player", []string{"Player", "Cosette Fauchelevent", "63"}, `{"Type":"Player","PlayerName":"Cosette Fauchelevent","HomeWorld":63}`},
		{"unknown world", []string{"Player", "Cosette Fauchelevent", "3"}, `{"Type":"Invalid"}`},
		{"retainer", []string{"Retainer", "Marius", "0"}, `{"Type":"Retainer","PlayerName":"Marius"}`},
		{"special by name", []string{"Special", "", "Portrait"}, `{"Type":"Special","Special":"Portrait"}`},
		{"special by code", []string{"Special", "", "241"}, `{"Type":"Special","Special":"ExamineScreen"}`},
		{"npc", []string{"Npc", "", "65535", "EventNpc", "1001426"}, `{"Type":"Npc","Kind":"EventNpc","DataId":1001426,"Index":65535}`},
		{"owned", []string{"Owned", "Jean Valjean", "84", "MountType", "55"}, `{"Type":"Owned","PlayerName":"Jean Valjean","HomeWorld":84,"Kind":"MountType","DataId":55}`},
		{"owned unknown data", []string{"Owned", "Jean Valjean", "84", "MountType", "56"}, `{"Type":"Invalid"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := call(t, d, CmdActorCreate, tt.args...)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got.(string))
		})
	}
}

func TestCreateIdentifier_BadArgs(t *testing.T) {
	_, d := newTestService(t, nil)

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"too few", []string{"Player", "Jean Valjean"}, "expected type, name and value"},
		{"bad type", []string{"Dragon", "x", "0"}, "unknown value"},
		{"bad value", []string{"Player", "Jean Valjean", "Omega"}, "error parsing value"},
		{"bad kind", []string{"Npc", "", "1", "Wyvern", "1"}, "object kind"},
		{"bad data id", []string{"Npc", "", "1", "BattleNpc", "-4"}, "error parsing data id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, d, CmdActorCreate, tt.args...)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestVerifyName(t *testing.T) {
	_, d := newTestService(t, nil)

	got, err := call(t, d, CmdActorName, "player", "Jean Valjean")
	require.NoError(t, err)
	assert.Equal(t, true, got)

	got, err = call(t, d, CmdActorName, "player", "jean valjean")
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = call(t, d, CmdActorName, "retainer", "Marius")
	require.NoError(t, err)
	assert.Equal(t, true, got)

	_, err = call(t, d, CmdActorName, "minion", "Tonberry")
	assert.ErrorContains(t, err, "unknown name kind")

	_, err = call(t, d, CmdActorName, "player")
	assert.ErrorContains(t, err, "expected kind and name")
}

func TestCutsceneParent(t *testing.T) {
	_, d := newTestService(t, nil)

	got, err := call(t, d, CmdCutsceneParent, "202")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = call(t, d, CmdCutsceneParent, "203")
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	svc := NewService(Dependencies{Actors: actors.NewManager(nil)})
	got, err = svc.CutsceneParent(dispatcher.Event{Command: CmdCutsceneParent, Args: []string{"202"}})
	require.NoError(t, err)
	assert.Equal(t, -1, got, "no object table")
}

func TestReloadGameData(t *testing.T) {
	next := gamedata.NewTables()
	next.Worlds[84] = "Omega"
	next.Worlds[82] = "Mandragora"

	svc, d := newTestService(t, func() (*gamedata.Tables, error) { return next, nil })
	before := svc.deps.Actors.Data().Version()

	got, err := call(t, d, CmdGameDataReload)
	require.NoError(t, err)
	assert.Equal(t, before+1, got)
	assert.Equal(t, "Mandragora", svc.deps.Actors.ToWorldName(82))

	// the new tables no longer carry the mount
	id, err := call(t, d, CmdActorObject, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Type":"Invalid"}`, id.(string))
}

func TestReloadGameData_Errors(t *testing.T) {
	_, d := newTestService(t, nil)
	_, err := call(t, d, CmdGameDataReload)
	assert.ErrorContains(t, err, "no game data source configured")

	svc, d := newTestService(t, func() (*gamedata.Tables, error) { return nil, errors.New("sheet missing") })
	before := svc.deps.Actors.Data().Version()
	_, err = call(t, d, CmdGameDataReload)
	assert.ErrorContains(t, err, "sheet missing")
	assert.Equal(t, before, svc.deps.Actors.Data().Version(), "failed reload keeps the old tables")
}

func TestLoadSnapshot(t *testing.T) {
	svc, d := newTestService(t, nil)

	path := filepath.Join(t.TempDir(), "objects.yaml")
	snapshot := "objects:\n  - {index: 5, kind: Player, name: Cosette Fauchelevent, homeWorld: 63}\n"
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0644))

	got, err := call(t, d, CmdObjectsLoad, path)
	require.NoError(t, err)
	assert.Equal(t, "queued", got)

	// Close drains the queue
	d.Close()
	assert.Equal(t, 1, svc.deps.Objects.Len())
	assert.Equal(t, "Cosette Fauchelevent (Gilgamesh)", svc.deps.Actors.ToString(svc.deps.Actors.FromIndex(5, true), 84))
	_, ok := svc.deps.Objects.Object(0)
	assert.False(t, ok, "the old entries are replaced")
}

func TestLoadSnapshot_Errors(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.LoadSnapshot(dispatcher.Event{Command: CmdObjectsLoad})
	assert.ErrorContains(t, err, "expected snapshot path")

	_, err = svc.LoadSnapshot(dispatcher.Event{Command: CmdObjectsLoad, Args: []string{filepath.Join(t.TempDir(), "missing.yaml")}})
	assert.ErrorContains(t, err, "error reading snapshot file")
	assert.Equal(t, 5, svc.deps.Objects.Len(), "a failed load keeps the table")

	bare := NewService(Dependencies{Actors: actors.NewManager(nil)})
	_, err = bare.LoadSnapshot(dispatcher.Event{Command: CmdObjectsLoad, Args: []string{"x.yaml"}})
	assert.ErrorContains(t, err, "no object table")
}

func TestReloadGameData_NilTables(t *testing.T) {
	svc, d := newTestService(t, func() (*gamedata.Tables, error) { return nil, nil })
	before := svc.deps.Actors.Data().Version()

	got, err := call(t, d, CmdGameDataReload)
	require.NoError(t, err)
	assert.Equal(t, before+1, got)
	assert.Equal(t, "Invalid", svc.deps.Actors.ToWorldName(84))
}
