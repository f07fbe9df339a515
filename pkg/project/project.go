package project

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/config"
	"github.com/pseudomuto/migrun/pkg/consts"
)

var (
	//go:embed embed/migrun.yaml
	defaultConfig []byte

	image = fstest.MapFS{
		"db":                        {Mode: os.ModeDir | consts.ModeDir},
		consts.DefaultMigrationsDir: {Mode: os.ModeDir | consts.ModeDir},
		consts.DefaultConfigFile:    {Data: defaultConfig},
	}
)

type (
	// InitOptions contains options for project initialization
	InitOptions struct {
		// Driver is written to migrun.yaml. Defaults to postgres.
		Driver string

		// Table is the ledger table written to migrun.yaml. Defaults to
		// migrun_ledger.
		Table string
	}

	Project struct {
		root   string
		config *config.Config
	}
)

// New creates a new Project rooted at path, which must be an existing
// directory.
//
// Example:
//
//	proj := project.New(".")
//	if err := proj.Initialize(project.InitOptions{Driver: "sqlite"}); err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println("Migrations go in", proj.Config().Dir)
func New(path string) *Project {
	return &Project{root: path}
}

// Initialize creates migrun.yaml and the migrations directory. It's
// idempotent: existing files and directories are left untouched, including a
// migrun.yaml written with different options.
func (p *Project) Initialize(options InitOptions) error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	rendered, err := renderConfig(options)
	if err != nil {
		return err
	}

	for path, entry := range image {
		fullPath := filepath.Join(p.root, path)

		if _, err := os.Stat(fullPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		if entry.Mode.IsDir() {
			if err := os.MkdirAll(fullPath, entry.Mode.Perm()); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", fullPath)
			}

			continue
		}

		data := entry.Data
		if path == consts.DefaultConfigFile {
			data = rendered
		}

		if err := os.WriteFile(fullPath, data, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write file %s", fullPath)
		}
	}

	cfg, err := config.LoadConfigFile(p.ConfigPath())
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", consts.DefaultConfigFile)
	}

	p.config = cfg
	return nil
}

// Config returns the configuration loaded by Initialize, or nil before that.
func (p *Project) Config() *config.Config {
	return p.config
}

// ConfigPath returns the path of the project's migrun.yaml.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.root, consts.DefaultConfigFile)
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}

// renderConfig fills in the config template and makes sure the result loads.
func renderConfig(options InitOptions) ([]byte, error) {
	driver := strings.TrimSpace(options.Driver)
	if driver == "" {
		driver = consts.DefaultDriver
	}

	table := strings.TrimSpace(options.Table)
	if table == "" {
		table = consts.DefaultLedgerTable
	}

	data := bytes.ReplaceAll(defaultConfig, []byte("$$DRIVER"), []byte(driver))
	data = bytes.ReplaceAll(data, []byte("$$TABLE"), []byte(table))

	if _, err := config.LoadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap(err, "invalid init options")
	}

	return data, nil
}
