package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/hyperoop/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "hyperoop.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultHistoryDepth is the undo depth of example apps.
	DefaultHistoryDepth = 100

	// DefaultSnapshotDir is where the file snapshot store writes markup.
	DefaultSnapshotDir = "snapshots"

	// DefaultMetricsPath is where the preview server exposes metrics.
	DefaultMetricsPath = "/metrics"
)

// Config represents hyperoop.json.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// History contains undo history configuration.
	History HistoryConfig `json:"history,omitempty"`

	// Snapshot contains snapshot store configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	configPath string
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// App is the example app served by default.
	App string `json:"app,omitempty"`
}

// HistoryConfig contains undo history settings.
type HistoryConfig struct {
	// Depth bounds the undo stack. Zero or less means unbounded.
	Depth int `json:"depth"`
}

// SnapshotConfig selects and configures the snapshot store. The first of
// Bucket, Redis and DB that is set picks S3, Redis or a bbolt file;
// otherwise snapshots go to Dir.
type SnapshotConfig struct {
	Dir    string `json:"dir,omitempty"`
	DB     string `json:"db,omitempty"`
	Redis  string `json:"redis,omitempty"`
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Region string `json:"region,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Preview: PreviewConfig{
			Port: DefaultPort,
			Host: DefaultHost,
			App:  "counter",
		},
		History: HistoryConfig{
			Depth: DefaultHistoryDepth,
		},
		Snapshot: SnapshotConfig{
			Dir: DefaultSnapshotDir,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "hyperoop",
			Path:      DefaultMetricsPath,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigFileNames lists the accepted file names in lookup order.
var ConfigFileNames = []string{ConfigFileName, "hyperoop.yaml", "hyperoop.yml"}

// Load reads the first of ConfigFileNames found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass flags on the command line")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	data, err = normalize(path, data)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(path, data); err != nil {
		return nil, err
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')
	if isYAML(path) {
		if data, err = toYAML(data); err != nil {
			return errors.New("E120").Wrap(err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.App == "" {
		c.Preview.App = "counter"
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "hyperoop"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("E122").
			WithDetail("preview.port must be between 0 and 65535")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E122").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E122").
			WithDetailf("log.format %q is not text or json", c.Log.Format)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E122").
			WithDetail("metrics.path must start with /")
	}
	if strings.Contains(c.Snapshot.Prefix, "..") {
		return errors.New("E122").
			WithDetail("snapshot.prefix must not contain ..")
	}
	return nil
}

// PreviewAddress returns the listen address of the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the URL of the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// SnapshotPath returns the absolute path of the file snapshot directory.
func (c *Config) SnapshotPath() string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return c.Snapshot.Dir
	}
	return filepath.Join(c.Dir(), c.Snapshot.Dir)
}

// UsesS3 reports whether snapshots are stored in S3.
func (c *Config) UsesS3() bool {
	return c.Snapshot.Bucket != ""
}

// Snapshot store kinds.
const (
	StoreFile  = "file"
	StoreBolt  = "bolt"
	StoreRedis = "redis"
	StoreS3    = "s3"
)

// SnapshotStore returns which snapshot store is configured.
func (c *Config) SnapshotStore() string {
	switch {
	case c.Snapshot.Bucket != "":
		return StoreS3
	case c.Snapshot.Redis != "":
		return StoreRedis
	case c.Snapshot.DB != "":
		return StoreBolt
	}
	return StoreFile
}

// SnapshotDBPath returns the absolute path of the bbolt snapshot database.
func (c *Config) SnapshotDBPath() string {
	if c.Snapshot.DB == "" || filepath.IsAbs(c.Snapshot.DB) {
		return c.Snapshot.DB
	}
	return filepath.Join(c.Dir(), c.Snapshot.DB)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to the one holding hyperoop.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its nearest parent holding hyperoop.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
