package config

import (
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "modelverse-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(originalDir) })

	return tempDir
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := chdirTemp(t)
	path := filepath.Join(tempDir, ConfigFileName)

	cfg := &Config{
		Servers: []Server{
			{URL: "http://10.0.0.5:8000", Alias: "lab"},
			{URL: "http://10.0.0.6:8000", Alias: "staging"},
		},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(loaded.Servers) != 2 {
		t.Fatalf("servers = %d, want 2", len(loaded.Servers))
	}
	if loaded.Servers[0].Alias != "lab" {
		t.Errorf("alias = %q, want %q", loaded.Servers[0].Alias, "lab")
	}
}

func TestFindConfigFile_SearchesParents(t *testing.T) {
	tempDir := chdirTemp(t)

	path := filepath.Join(tempDir, ConfigFileName)
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	nested := filepath.Join(tempDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("expected to find config in parent, got: %v", err)
	}
	if found != path {
		t.Errorf("found = %q, want %q", found, path)
	}
}

func TestLoadFromCurrentDir_EnvOverride(t *testing.T) {
	chdirTemp(t) // no config file on disk

	t.Setenv("MODELVERSE_SERVER_URL", "http://10.0.0.9:8000")

	cfg, err := LoadFromCurrentDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Servers) != 1 || cfg.Servers[0].URL != "http://10.0.0.9:8000" {
		t.Errorf("unexpected servers: %+v", cfg.Servers)
	}
}

func TestLoadFromCurrentDir_MissingFile(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MODELVERSE_SERVER_URL", "")

	if _, err := LoadFromCurrentDir(); err == nil {
		t.Error("expected error when config file is missing, got nil")
	}
}

func TestGetServerByAlias(t *testing.T) {
	cfg := &Config{Servers: []Server{{URL: "http://10.0.0.5:8000", Alias: "lab"}}}

	server, err := cfg.GetServerByAlias("lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server.URL != "http://10.0.0.5:8000" {
		t.Errorf("url = %q", server.URL)
	}

	if _, err := cfg.GetServerByAlias("nope"); err == nil {
		t.Error("expected error for unknown alias, got nil")
	}
}

func TestGetDefaultServer_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetDefaultServer(); err == nil {
		t.Error("expected error for empty server list, got nil")
	}
}
