package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/pseudomuto/migrun/pkg/database"
	"github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/pseudomuto/migrun/pkg/utils"
	"gopkg.in/yaml.v3"
)

type (
	// Ledger holds settings for the table that records applied migrations.
	Ledger struct {
		// Table is the ledger table name, optionally schema-qualified
		// (e.g. "ops.migrun_ledger").
		Table string `yaml:"table,omitempty"`
	}

	// Config represents the project configuration for running migrations.
	Config struct {
		// Dir specifies the directory where migration files are stored
		Dir string `yaml:"dir"`

		// Driver names the target engine: postgres, sqlite or mysql
		Driver string `yaml:"driver,omitempty"`

		// Extensions lists the file extensions considered migration scripts
		Extensions []string `yaml:"extensions,omitempty"`

		// TxMode controls transaction wrapping: auto, always or never
		TxMode string `yaml:"tx_mode,omitempty"`

		// Ledger contains ledger table settings
		Ledger Ledger `yaml:"ledger"`
	}
)

// Defaults returns a configuration populated with the default values used
// when no migrun.yaml is present.
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The reader must contain a YAML document. Fields that are omitted are set to
// their defaults: db/migrations for the directory, postgres for the driver,
// .sql as the only extension, auto transaction mode and migrun_ledger as the
// ledger table.
//
// Example:
//
//	yamlData := `
//	dir: db/migrations
//	driver: sqlite
//	ledger:
//	  table: schema_history
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Ledger table: %s\n", cfg.Ledger.Table)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal project config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// Relative migration directories are resolved against the file's directory.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file: %s", path)
	}

	if !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}

	return cfg, nil
}

// Validate checks that the driver, transaction mode and ledger table name are
// all usable.
func (c *Config) Validate() error {
	if _, err := ledger.LookupDialect(c.Driver); err != nil {
		return errors.Wrap(err, "driver")
	}

	if _, err := database.ParseTxMode(c.TxMode); err != nil {
		return errors.Wrap(err, "tx_mode")
	}

	if err := utils.ValidateTableName(c.Ledger.Table); err != nil {
		return errors.Wrap(err, "ledger.table")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Dir == "" {
		c.Dir = consts.DefaultMigrationsDir
	}
	if c.Driver == "" {
		c.Driver = consts.DefaultDriver
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{consts.DefaultExtension}
	}
	if c.TxMode == "" {
		c.TxMode = consts.DefaultTxMode
	}
	if c.Ledger.Table == "" {
		c.Ledger.Table = consts.DefaultLedgerTable
	}
}
