// Package config reads server configuration from the environment.
//
// Everything has a working default: with no environment set, the server
// runs with local storage under ./projects and no sync database.
package config

import "os"

// Config holds the server's runtime configuration, read once at startup.
type Config struct {
	// StorageRoot is the base directory for the local storage provider.
	StorageRoot string

	// SyncDBPath enables the SQLite sync store when non-empty.
	SyncDBPath string

	// AutoSyncOnAnalyze pushes results to the sync store after each
	// analyze_discovery call.
	AutoSyncOnAnalyze bool

	// AutoSyncOnUpdate pushes results after update_project_context.
	AutoSyncOnUpdate bool

	// PreferSummaries controls whether the analyzer scans agent-written
	// summaries instead of full content for integration documents.
	PreferSummaries bool
}

// FromEnv builds a Config from environment variables, applying defaults
// for anything unset.
func FromEnv() Config {
	return Config{
		StorageRoot:       envOr("DISCOVERY_STORAGE_ROOT", "projects"),
		SyncDBPath:        os.Getenv("DISCOVERY_SYNC_DB"),
		AutoSyncOnAnalyze: envBool("AUTO_SYNC_ON_ANALYZE", false),
		AutoSyncOnUpdate:  envBool("AUTO_SYNC_ON_UPDATE", false),
		PreferSummaries:   envBool("DISCOVERY_PREFER_SUMMARIES", true),
	}
}

// SyncEnabled reports whether the sync store is configured.
func (c Config) SyncEnabled() bool {
	return c.SyncDBPath != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool parses a boolean env var; only the literal "true" enables it.
func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true"
}
