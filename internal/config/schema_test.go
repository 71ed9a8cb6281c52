package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/hyperoop/internal/errors"
)

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `
name: todo
preview:
  port: 8081
  app: todo-hist
history:
  depth: 0
snapshot:
  db: snapshots.db
log:
  level: warn
`
	if err := os.WriteFile(filepath.Join(tmpDir, "hyperoop.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmpDir) {
		t.Fatal("Exists should see hyperoop.yaml")
	}
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "todo" || cfg.Preview.Port != 8081 || cfg.Preview.App != "todo-hist" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.History.Depth != 0 {
		t.Errorf("History.Depth = %d, want 0", cfg.History.Depth)
	}
	if cfg.Preview.Host != DefaultHost {
		t.Errorf("Preview.Host = %q, want default", cfg.Preview.Host)
	}
	if cfg.SnapshotStore() != StoreBolt {
		t.Errorf("SnapshotStore() = %q, want bolt", cfg.SnapshotStore())
	}
	if got := cfg.SnapshotDBPath(); got != filepath.Join(tmpDir, "snapshots.db") {
		t.Errorf("SnapshotDBPath() = %q", got)
	}
}

func TestLoad_PrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"name": "json"}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, "hyperoop.yml"), []byte("name: yaml\n"), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestLoadFile_Schema(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"unknown section", ConfigFileName, `{"dev": {}}`, "E121"},
		{"unknown key", ConfigFileName, `{"preview": {"colour": "red"}}`, "E121"},
		{"port type", ConfigFileName, `{"preview": {"port": "80"}}`, "E121"},
		{"port range", ConfigFileName, `{"preview": {"port": 70000}}`, "E121"},
		{"depth fraction", ConfigFileName, `{"history": {"depth": 1.5}}`, "E121"},
		{"namespace", ConfigFileName, `{"metrics": {"namespace": "bad-name"}}`, "E121"},
		{"yaml unknown key", "hyperoop.yaml", "log:\n  colour: red\n", "E121"},
		{"yaml syntax", "hyperoop.yaml", "log: [\n", "E120"},
		{"json syntax", ConfigFileName, `{"log": `, "E120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if !errors.HasCode(err, tt.code) {
				t.Errorf("LoadFile() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSaveTo_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyperoop.yml")

	cfg := New()
	cfg.Snapshot.Redis = "localhost:6379"
	cfg.Metrics.Enabled = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Errorf("saved YAML looks like JSON:\n%s", data)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.SnapshotStore() != StoreRedis || loaded.Metrics.Enabled {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Preview.Port != DefaultPort {
		t.Errorf("Preview.Port = %d, want %d", loaded.Preview.Port, DefaultPort)
	}
}

func TestSnapshotStore(t *testing.T) {
	tests := []struct {
		name string
		snap SnapshotConfig
		want string
	}{
		{"default", SnapshotConfig{Dir: "snapshots"}, StoreFile},
		{"bolt", SnapshotConfig{DB: "s.db"}, StoreBolt},
		{"redis over bolt", SnapshotConfig{DB: "s.db", Redis: "localhost:6379"}, StoreRedis},
		{"s3 over all", SnapshotConfig{DB: "s.db", Redis: "r:6379", Bucket: "b"}, StoreS3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Snapshot = tt.snap
			if got := cfg.SnapshotStore(); got != tt.want {
				t.Errorf("SnapshotStore() = %q, want %q", got, tt.want)
			}
		})
	}
}
