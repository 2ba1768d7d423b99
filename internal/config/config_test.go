package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DISCOVERY_STORAGE_ROOT", "")
	t.Setenv("DISCOVERY_SYNC_DB", "")
	t.Setenv("AUTO_SYNC_ON_ANALYZE", "")
	t.Setenv("AUTO_SYNC_ON_UPDATE", "")
	t.Setenv("DISCOVERY_PREFER_SUMMARIES", "")

	cfg := FromEnv()

	if cfg.StorageRoot != "projects" {
		t.Errorf("StorageRoot = %q, want projects", cfg.StorageRoot)
	}
	if cfg.SyncEnabled() {
		t.Error("sync enabled without DISCOVERY_SYNC_DB")
	}
	if cfg.AutoSyncOnAnalyze || cfg.AutoSyncOnUpdate {
		t.Error("auto-sync flags should default to false")
	}
	if !cfg.PreferSummaries {
		t.Error("PreferSummaries should default to true")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DISCOVERY_STORAGE_ROOT", "/data/projects")
	t.Setenv("DISCOVERY_SYNC_DB", "/data/sync.db")
	t.Setenv("AUTO_SYNC_ON_ANALYZE", "true")
	t.Setenv("AUTO_SYNC_ON_UPDATE", "yes") // only "true" enables
	t.Setenv("DISCOVERY_PREFER_SUMMARIES", "false")

	cfg := FromEnv()

	if cfg.StorageRoot != "/data/projects" {
		t.Errorf("StorageRoot = %q", cfg.StorageRoot)
	}
	if !cfg.SyncEnabled() || cfg.SyncDBPath != "/data/sync.db" {
		t.Errorf("SyncDBPath = %q", cfg.SyncDBPath)
	}
	if !cfg.AutoSyncOnAnalyze {
		t.Error("AutoSyncOnAnalyze not enabled by \"true\"")
	}
	if cfg.AutoSyncOnUpdate {
		t.Error("AutoSyncOnUpdate enabled by a non-\"true\" value")
	}
	if cfg.PreferSummaries {
		t.Error("PreferSummaries not disabled by \"false\"")
	}
}
