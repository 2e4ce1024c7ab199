package config

import (
	"encoding/json"
	"fmt"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 2

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// 0 -> 1: add version field, no structural changes
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			data["version"] = 1
			return data, nil
		},
	},
	// 1 -> 2: the companion section was called "pip" and the tick interval
	// lived at the top level
	{
		FromVersion: 1,
		ToVersion:   2,
		Migrate: func(data map[string]any) (map[string]any, error) {
			if pip, ok := data["pip"]; ok {
				if _, exists := data["companion"]; !exists {
					data["companion"] = pip
				}
				delete(data, "pip")
			}
			if tick, ok := data["tickIntervalMs"]; ok {
				timer, _ := data["timer"].(map[string]any)
				if timer == nil {
					timer = map[string]any{}
				}
				if _, exists := timer["tickIntervalMs"]; !exists {
					timer["tickIntervalMs"] = tick
				}
				data["timer"] = timer
				delete(data, "tickIntervalMs")
			}
			data["version"] = 2
			return data, nil
		},
	},
}

// ParseVersionedConfig parses JSON (comments and trailing commas allowed)
// with version migration support
func ParseVersionedConfig(data []byte) (*Config, error) {
	var rawConfig map[string]any
	if err := json.Unmarshal(stripComments(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := rawConfig["version"].(float64); ok {
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}
	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// A nested "config" object takes precedence over inline fields
	if nested, ok := rawConfig["config"].(map[string]any); ok {
		rawConfig = nested
	}
	delete(rawConfig, "version")

	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(migratedData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}
	return data, nil
}

// MarshalVersionedConfig serializes a config with a top-level version field
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := json.Unmarshal(cfgData, &result); err != nil {
		return nil, err
	}
	result["version"] = CurrentVersion

	return json.MarshalIndent(result, "", "  ")
}
