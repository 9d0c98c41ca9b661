// Package handlers exposes identity resolution as dispatcher commands.
package handlers

import (
	"fmt"
	"log/slog"

	"github.com/xivmods/actorid/internal/dispatcher"
	"github.com/xivmods/actorid/internal/objects"
	"github.com/xivmods/actorid/internal/util"
	"github.com/xivmods/actorid/pkg/actors"
	"github.com/xivmods/actorid/pkg/gamedata"
)

// Command names registered by Service.Register.
const (
	CmdActorObject    = ":ACTOR:OBJECT:"
	CmdActorLabel     = ":ACTOR:LABEL:"
	CmdActorFormat    = ":ACTOR:FORMAT:"
	CmdActorCreate    = ":ACTOR:CREATE:"
	CmdActorName      = ":ACTOR:NAME:"
	CmdCutsceneParent = ":CUTSCENE:PARENT:"
	CmdGameDataReload = ":GAMEDATA:RELOAD:"
	CmdObjectsLoad    = ":OBJECTS:LOAD:"
)

// snapshotQueueSize bounds pending :OBJECTS:LOAD: events. Loads are applied
// in arrival order by one worker.
const snapshotQueueSize = 8

// Loader builds fresh lookup tables from the configured source.
type Loader func() (*gamedata.Tables, error)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Actors      *actors.Manager
	Objects     *objects.Table // optional
	Loader      Loader             // optional, required for reloads
	ViewerWorld uint16
	Logger      *slog.Logger
}

// Service implements the command handlers.
type Service struct {
	deps Dependencies
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Service{deps: deps}
}

// Register adds every command to d.
func (s *Service) Register(d *dispatcher.Dispatcher) {
	d.Register(CmdActorObject, s.ResolveObject, dispatcher.Logged())
	d.Register(CmdActorLabel, s.LabelObject, dispatcher.Logged())
	d.Register(CmdActorFormat, s.FormatIdentifier, dispatcher.Logged())
	d.Register(CmdActorCreate, s.CreateIdentifier, dispatcher.Logged())
	d.Register(CmdActorName, s.VerifyName, dispatcher.Logged())
	d.Register(CmdCutsceneParent, s.CutsceneParent, dispatcher.Logged())
	d.Register(CmdGameDataReload, s.ReloadGameData, dispatcher.Logged())
	d.Register(CmdObjectsLoad, s.LoadSnapshot,
		dispatcher.Buffered(snapshotQueueSize), dispatcher.Blocking(), dispatcher.Logged())
}

// ResolveObject resolves the object at an index: [index, verify?].
// verify defaults to true. The result is the identifier record as JSON.
func (s *Service) ResolveObject(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	id, err := s.resolve(e.Command, args)
	if err != nil {
		return nil, err
	}
	return encode(id)
}

// LabelObject resolves the object at an index and renders it:
// [index, verify?, viewerWorld?]. The identifier is formatted as resolved,
// so unverified results keep their raw names and worlds.
func (s *Service) LabelObject(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	id, err := s.resolve(e.Command, args)
	if err != nil {
		return nil, err
	}
	viewer := s.deps.ViewerWorld
	if len(args) > 2 && args[2] != "" {
		v, err := util.ParseUint(args[2], 16)
		if err != nil {
			return nil, fmt.Errorf("%s: error parsing viewer world: %w", e.Command, err)
		}
		viewer = uint16(v)
	}
	return s.deps.Actors.ToString(id, viewer), nil
}

func (s *Service) resolve(command string, args []string) (actors.Identifier, error) {
	if len(args) < 1 {
		return actors.Invalid, fmt.Errorf("%s: expected index", command)
	}
	index, err := util.ParseUint(args[0], 16)
	if err != nil {
		return actors.Invalid, fmt.Errorf("%s: error parsing index: %w", command, err)
	}
	verify := true
	if len(args) > 1 && args[1] != "" {
		if verify, err = util.ParseBool(args[1]); err != nil {
			return actors.Invalid, fmt.Errorf("%s: error parsing verify: %w", command, err)
		}
	}
	return s.deps.Actors.FromIndex(uint16(index), verify), nil
}

// FormatIdentifier renders an identifier record: [json, viewerWorld?].
func (s *Service) FormatIdentifier(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: expected identifier record", e.Command)
	}
	viewer := s.deps.ViewerWorld
	if len(args) > 1 {
		v, err := util.ParseUint(args[1], 16)
		if err != nil {
			return nil, fmt.Errorf("%s: error parsing viewer world: %w", e.Command, err)
		}
		viewer = uint16(v)
	}

	id := s.deps.Actors.FromJSON([]byte(args[0]))
	return s.deps.Actors.ToString(id, viewer), nil
}

// CreateIdentifier builds a checked identifier:
// [type, name, value, kind?, dataId?] where value is the home world, object
// index or special slot as the type requires.
func (s *Service) CreateIdentifier(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	if len(args) < 3 {
		return nil, fmt.Errorf("%s: expected type, name and value", e.Command)
	}

	var typ actors.IdentifierType
	if err := typ.UnmarshalText([]byte(args[0])); err != nil {
		return nil, fmt.Errorf("%s: %w", e.Command, err)
	}
	value, err := util.ParseUint(args[2], 16)
	if err != nil && typ == actors.TypeSpecial {
		// special slots may be given by name
		var special actors.SpecialActor
		if special.UnmarshalText([]byte(args[2])) == nil {
			value, err = uint64(special), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: error parsing value: %w", e.Command, err)
	}
	kind := actors.KindUnset
	if len(args) > 3 && args[3] != "" {
		if kind, err = actors.ParseObjectKind(args[3]); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Command, err)
		}
	}
	var dataID uint64
	if len(args) > 4 && args[4] != "" {
		if dataID, err = util.ParseUint(args[4], 32); err != nil {
			return nil, fmt.Errorf("%s: error parsing data id: %w", e.Command, err)
		}
	}

	id := s.deps.Actors.CreateIndividual(typ, args[1], uint16(value), kind, uint32(dataID))
	if !id.IsValid() {
		s.deps.Logger.Debug("Rejected identifier", "type", typ, "name", args[1], "value", value)
	}
	return encode(id)
}

// VerifyName checks a name against the grammar: [player|retainer, name].
func (s *Service) VerifyName(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: expected kind and name", e.Command)
	}
	switch args[0] {
	case "player":
		return actors.VerifyPlayerName(args[1]), nil
	case "retainer":
		return actors.VerifyRetainerName(args[1]), nil
	}
	return nil, fmt.Errorf("%s: unknown name kind %q", e.Command, args[0])
}

// CutsceneParent returns the recorded parent of a cutscene slot, or -1.
func (s *Service) CutsceneParent(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: expected index", e.Command)
	}
	index, err := util.ParseUint(args[0], 16)
	if err != nil {
		return nil, fmt.Errorf("%s: error parsing index: %w", e.Command, err)
	}
	if s.deps.Objects == nil {
		return -1, nil
	}
	parent, ok := s.deps.Objects.CutsceneParent(uint16(index))
	if !ok {
		return -1, nil
	}
	return int(parent), nil
}

// ReloadGameData rebuilds the lookup tables and swaps them in. The result is
// the new table version.
func (s *Service) ReloadGameData(e dispatcher.Event) (any, error) {
	if s.deps.Loader == nil {
		return nil, fmt.Errorf("%s: no game data source configured", e.Command)
	}
	t, err := s.deps.Loader()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Command, err)
	}
	store := s.deps.Actors.Data()
	store.Swap(t)
	s.deps.Logger.Info("Game data reloaded", "version", store.Version(), "entries", store.Load().Len())
	return store.Version(), nil
}

// LoadSnapshot replaces the object table with a snapshot file: [path].
// It runs queued, so the caller only learns that the load was accepted.
func (s *Service) LoadSnapshot(e dispatcher.Event) (any, error) {
	args := util.CleanArgs(e.Args)
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: expected snapshot path", e.Command)
	}
	if s.deps.Objects == nil {
		return nil, fmt.Errorf("%s: no object table", e.Command)
	}
	entries, parents, err := objects.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Command, err)
	}
	s.deps.Objects.Replace(entries, parents)
	s.deps.Logger.Info("Object snapshot loaded", "path", args[0], "objects", len(entries))
	return len(entries), nil
}

func encode(id actors.Identifier) (string, error) {
	data, err := id.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("error marshalling identifier: %w", err)
	}
	return string(data), nil
}
