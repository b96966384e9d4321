package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath   string
	HierarchyPath string
	ArchiveDir    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string
	Storage        string
	Database       Database

	// Execution settings
	Processors int
	BatchSize  int
	Binary     string
	BinaryArgs []string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Database holds MySQL connection settings
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Flags holds command-line flags
type Flags struct {
	// Selection
	Hierarchy             string
	Cases                 []string
	CaseList              string
	CaseListSet           bool
	CaseListFile          string
	CaseListResource      string
	ArchiveDir            string
	StdinCaseList         bool
	Fraction              string
	FractionMandatoryFile string
	RunnerType            string
	CheckDuplicates       bool

	// Execution
	Processors   int
	BatchSize    int
	Binary       string
	FailFast     bool
	OpenFailures bool

	// Output
	Output  string
	Verbose bool
}

// fileConfig is the layout of caselist.toml
type fileConfig struct {
	Hierarchy   string   `toml:"hierarchy"`
	ArchiveDir  string   `toml:"archive_dir"`
	Storage     string   `toml:"storage"`
	OutputDir   string   `toml:"output_dir"`
	OutputFile  string   `toml:"output_file"`
	Processors  int      `toml:"processors"`
	BatchSize   int      `toml:"batch_size"`
	Binary      string   `toml:"binary"`
	BinaryArgs  []string `toml:"binary_args"`
	IgnorePaths []string `toml:"ignore_paths"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		HierarchyPath:  DefaultHierarchyPath,
		ArchiveDir:     DefaultArchiveDir,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Storage:        DefaultStorage,
		Processors:     DefaultProcessors,
		BatchSize:      DefaultBatchSize,
		Binary:         DefaultBinary,
		Database: Database{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
			Name: DefaultDBName,
		},
		Flags: Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadFile applies a TOML config file on top of the current settings
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.HierarchyPath, fc.Hierarchy)
	setString(&c.ArchiveDir, fc.ArchiveDir)
	setString(&c.Storage, fc.Storage)
	setString(&c.OutputJSONDir, fc.OutputDir)
	setString(&c.OutputJSONFile, fc.OutputFile)
	setString(&c.Binary, fc.Binary)
	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if fc.BatchSize > 0 {
		c.BatchSize = fc.BatchSize
	}
	if len(fc.BinaryArgs) > 0 {
		c.BinaryArgs = fc.BinaryArgs
	}
	if len(fc.IgnorePaths) > 0 {
		c.PathsToIgnore = append(c.PathsToIgnore, fc.IgnorePaths...)
	}
	return nil
}

// LoadEnv loads the project's .env file, if any, and applies CASELIST_* and
// DB_* variables
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	setString(&c.HierarchyPath, os.Getenv("CASELIST_HIERARCHY"))
	setString(&c.ArchiveDir, os.Getenv("CASELIST_ARCHIVE_DIR"))
	setString(&c.Storage, os.Getenv("CASELIST_STORAGE"))
	setString(&c.Binary, os.Getenv("CASELIST_BINARY"))
	if v := os.Getenv("CASELIST_PROCESSORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid CASELIST_PROCESSORS %q", v)
		}
		c.Processors = n
	}

	setString(&c.Database.Host, os.Getenv("DB_HOST"))
	setString(&c.Database.Port, os.Getenv("DB_PORT"))
	setString(&c.Database.User, os.Getenv("DB_USERNAME"))
	setString(&c.Database.Password, os.Getenv("DB_PASSWORD"))
	setString(&c.Database.Name, os.Getenv("DB_DATABASE"))
	return nil
}

// ApplyFlags stores the parsed flags and lets them override file and
// environment settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.BatchSize > 0 {
		c.BatchSize = flags.BatchSize
	}
	setString(&c.HierarchyPath, flags.Hierarchy)
	setString(&c.ArchiveDir, flags.ArchiveDir)
	setString(&c.Binary, flags.Binary)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// GetHierarchyPath returns the hierarchy path, relative to the project unless absolute
func (c *Config) GetHierarchyPath() string {
	return c.projectRelative(c.HierarchyPath)
}

// GetArchiveDir returns the directory case-list resources are resolved against
func (c *Config) GetArchiveDir() string {
	return c.projectRelative(c.ArchiveDir)
}

// GetConfigFilePath returns the path of the project config file
func (c *Config) GetConfigFilePath() string {
	return filepath.Join(c.ProjectPath, DefaultConfigFile)
}

func (c *Config) projectRelative(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetBatchDir returns the directory batch case lists are written to
func (c *Config) GetBatchDir() string {
	return filepath.Join(c.ProjectPath, c.OutputJSONDir, "batches")
}
