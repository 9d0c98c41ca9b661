package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xivmods/actorid/internal/config"
	"github.com/xivmods/actorid/internal/database"
	"github.com/xivmods/actorid/internal/handlers"
	"github.com/xivmods/actorid/internal/sheets"
)

func newResolveCmd(current func() *app) *cobra.Command {
	var (
		noVerify bool
		label    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <index>",
		Short: "Resolve the object at an index of the snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := handlers.CmdActorObject
			if label {
				command = handlers.CmdActorLabel
			}
			result, err := current().call(command, args[0], strconv.FormatBool(!noVerify))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip name and game data checks")
	cmd.Flags().BoolVar(&label, "label", false, "Print the display label instead of the record")

	return cmd
}

func newFormatCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format <record-json>",
		Short: "Render an identifier record as a display label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := current().call(handlers.CmdActorFormat, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newCreateCmd(current func() *app) *cobra.Command {
	var (
		kind   string
		dataID string
	)

	cmd := &cobra.Command{
		Use:   "create <type> <name> <value>",
		Short: "Build a checked identifier",
		Long: "Builds an identifier of the given type. value is the home world for " +
			"Player and Owned, the object index for Npc and UnkObject and the slot " +
			"for Special. Pass an empty name where the type has none.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := current().call(handlers.CmdActorCreate, args[0], args[1], args[2], kind, dataID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), record)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Object kind for Owned and Npc")
	cmd.Flags().StringVar(&dataID, "data-id", "", "Sheet row id for Owned and Npc")

	return cmd
}

func newValidateCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:       "validate <player|retainer> <name>",
		Short:     "Check a name against the naming rules",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"player", "retainer"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := current().call(handlers.CmdActorName, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newImportSheetCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-sheet <sheet-file>",
		Short: "Store a sheet file in the sheet database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			tables, err := sheets.Load(args[0])
			if err != nil {
				return err
			}

			path := config.GetGameDataConfig().SQLitePath
			db := database.NewManager(a.zlog)
			if err := db.Open(path); err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(); err != nil {
				return err
			}
			if err := db.SaveTables(tables); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries into %s\n", tables.Len(), path)
			return nil
		},
	}
}

func newExportSheetCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export-sheet <sheet-file>",
		Short: "Write the configured game data to a sheet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := loadTables(config.GetGameDataConfig(), current().zlog)
			if err != nil {
				return err
			}
			if err := sheets.Save(args[0], tables); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", tables.Len(), args[0])
			return nil
		},
	}
}

func newCallCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <command> [args...]",
		Short: "Dispatch a raw command such as :ACTOR:OBJECT:",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := current().call(args[0], args[1:]...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
