package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "actorid.cfg.json"

// Game data sources.
const (
	SourceSheet  = "sheet"
	SourceSQLite = "sqlite"
)

// GameDataConfig selects where lookup tables are loaded from.
type GameDataConfig struct {
	Source     string `json:"source" mapstructure:"source"`
	SheetPath  string `json:"sheetPath" mapstructure:"sheetPath"`
	SQLitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// SnapshotConfig points at a captured object table.
type SnapshotConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./actorid_logs")
	viper.SetDefault("viewerWorld", 0)

	viper.SetDefault("gameData.source", SourceSheet)
	viper.SetDefault("gameData.sheetPath", "./sheets.yaml")
	viper.SetDefault("gameData.sqlitePath", "./actorid.db")

	viper.SetDefault("snapshot.path", "")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "actorid")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// LoadDefaults sets default values without reading a file.
func LoadDefaults() {
	setDefaults()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// Set overrides a config value, used for command line flags.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetViewerWorld returns the world labels are rendered relative to.
func GetViewerWorld() uint16 {
	return uint16(viper.GetUint("viewerWorld"))
}

// GetGameDataConfig returns the lookup table source settings.
func GetGameDataConfig() GameDataConfig {
	return GameDataConfig{
		Source:     viper.GetString("gameData.source"),
		SheetPath:  viper.GetString("gameData.sheetPath"),
		SQLitePath: viper.GetString("gameData.sqlitePath"),
	}
}

// GetSnapshotConfig returns the object snapshot settings.
func GetSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Path: viper.GetString("snapshot.path"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
