// Package database stores game data sheets in SQLite so lookup tables can be
// rebuilt without re-exporting the game files.
package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xivmods/actorid/pkg/gamedata"
)

const (
	sheetMounts     = "mounts"
	sheetCompanions = "companions"
	sheetOrnaments  = "ornaments"
	sheetBNpcs      = "bnpcs"
	sheetENpcs      = "enpcs"
)

// WorldRow is one row of the world sheet. IsPublic must not get a column
// default, gorm would then drop false on insert.
type WorldRow struct {
	ID       uint16 `gorm:"primaryKey;autoIncrement:false"`
	Name     string `gorm:"not null"`
	IsPublic bool   `gorm:"not null"`
}

func (WorldRow) TableName() string { return "worlds" }

// SheetRow is one id/name row of the mount, companion, ornament or NPC sheets.
type SheetRow struct {
	Sheet string `gorm:"primaryKey;size:16"`
	ID    uint32 `gorm:"primaryKey;autoIncrement:false"`
	Name  string `gorm:"not null"`
}

func (SheetRow) TableName() string { return "sheet_rows" }

// Models lists every table managed by Migrate.
var Models = []any{&WorldRow{}, &SheetRow{}}

// Manager handles the sheet database connection.
type Manager struct {
	DB     *gorm.DB
	Path   string
	Logger zerolog.Logger
}

// NewManager creates a database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{Logger: log}
}

// Open connects to the SQLite database at path. An empty path opens a
// private in-memory database.
func (m *Manager) Open(path string) error {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if path == "" {
		// every new connection to :memory: would see an empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	m.DB = db
	m.Path = path
	if path == "" {
		m.Logger.Info().Msg("Using SQLite sheet DB in memory")
	} else {
		m.Logger.Info().Str("path", path).Msg("Using SQLite sheet DB")
	}
	return nil
}

// Migrate creates or updates the sheet tables.
func (m *Manager) Migrate() error {
	if m.DB == nil {
		return fmt.Errorf("database not open")
	}
	m.Logger.Debug().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SaveTables replaces all stored sheet rows with the contents of t.
func (m *Manager) SaveTables(t *gamedata.Tables) error {
	if m.DB == nil {
		return fmt.Errorf("database not open")
	}

	worlds := make([]WorldRow, 0, len(t.Worlds))
	for id, name := range t.Worlds {
		worlds = append(worlds, WorldRow{ID: id, Name: name, IsPublic: true})
	}

	var rows []SheetRow
	for _, sheet := range []struct {
		name string
		m    map[uint32]string
	}{
		{sheetMounts, t.Mounts},
		{sheetCompanions, t.Companions},
		{sheetOrnaments, t.Ornaments},
		{sheetBNpcs, t.BNpcs},
		{sheetENpcs, t.ENpcs},
	} {
		for id, name := range sheet.m {
			rows = append(rows, SheetRow{Sheet: sheet.name, ID: id, Name: name})
		}
	}

	err := m.DB.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&WorldRow{}).Error; err != nil {
			return fmt.Errorf("error clearing worlds: %w", err)
		}
		if err := all.Delete(&SheetRow{}).Error; err != nil {
			return fmt.Errorf("error clearing sheet rows: %w", err)
		}
		if len(worlds) > 0 {
			if err := tx.CreateInBatches(worlds, 500).Error; err != nil {
				return fmt.Errorf("error inserting worlds: %w", err)
			}
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 500).Error; err != nil {
				return fmt.Errorf("error inserting sheet rows: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.Logger.Info().Int("worlds", len(worlds)).Int("rows", len(rows)).Msg("Saved game data sheets")
	return nil
}

// LoadTables builds lookup tables from the stored rows. Non-public worlds are
// left out.
func (m *Manager) LoadTables() (*gamedata.Tables, error) {
	if m.DB == nil {
		return nil, fmt.Errorf("database not open")
	}

	var worlds []WorldRow
	if err := m.DB.Where("is_public = ?", true).Find(&worlds).Error; err != nil {
		return nil, fmt.Errorf("error getting worlds: %w", err)
	}
	var rows []SheetRow
	if err := m.DB.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting sheet rows: %w", err)
	}

	t := gamedata.NewTables()
	for _, w := range worlds {
		t.Worlds[w.ID] = w.Name
	}

	sheets := map[string]map[uint32]string{
		sheetMounts:     t.Mounts,
		sheetCompanions: t.Companions,
		sheetOrnaments:  t.Ornaments,
		sheetBNpcs:      t.BNpcs,
		sheetENpcs:      t.ENpcs,
	}
	for _, r := range rows {
		dst, ok := sheets[r.Sheet]
		if !ok {
			m.Logger.Warn().Str("sheet", r.Sheet).Uint32("id", r.ID).Msg("Skipping row of unknown sheet")
			continue
		}
		dst[r.ID] = r.Name
	}

	m.Logger.Debug().Int("entries", t.Len()).Msg("Loaded game data sheets")
	return t, nil
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	sqlDB, err := m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
