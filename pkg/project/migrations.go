package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing/fstest"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/pseudomuto/migrun/pkg/migrator"
)

// VersionTimestampFormat is the layout of generated versions. Every generated
// version has the same width, so byte order and numeric order agree.
const VersionTimestampFormat = "20060102150405"

var (
	// ErrInvalidDescription is returned when a description has no letters or
	// digits to build a file name from.
	ErrInvalidDescription = errors.New("invalid migration description")

	nonWord = regexp.MustCompile(`[^a-z0-9]+`)
)

// NewMigrationOptions controls how CreateMigration names the new script.
type NewMigrationOptions struct {
	// Description is turned into the snake_case part of the file name.
	Description string

	// Version is used as-is when set (e.g. "1.4.0"). Otherwise the version
	// is Time formatted with VersionTimestampFormat.
	Version string

	// Time is the creation time. Defaults to time.Now().
	Time time.Time

	// Extensions are the script extensions of the project. The first one is
	// used for the new file. Defaults to .sql.
	Extensions []string
}

// CreateMigration writes an empty script named V<version>__<description> to
// dir and returns its path.
//
// The new file must sort after every existing script and keep versions
// strictly increasing, otherwise nothing is written. This keeps the directory
// valid for migrator.Resolver.
//
// Example:
//
//	path, err := project.CreateMigration("db/migrations", project.NewMigrationOptions{
//		Description: "add users table",
//	})
//	// path == "db/migrations/V20250102030405__add_users_table.sql"
func CreateMigration(dir string, opts NewMigrationOptions) (string, error) {
	slug := strings.Trim(nonWord.ReplaceAllString(strings.ToLower(opts.Description), "_"), "_")
	if slug == "" {
		return "", errors.Wrapf(ErrInvalidDescription, "%q", opts.Description)
	}

	resolver := migrator.NewResolver(opts.Extensions...)
	version := strings.TrimPrefix(strings.TrimPrefix(opts.Version, "V"), "v")
	if version == "" {
		ts := opts.Time
		if ts.IsZero() {
			ts = time.Now()
		}
		version = ts.UTC().Format(VersionTimestampFormat)
	}

	name := "V" + version + "__" + slug + resolver.Extensions[0]
	if _, err := migrator.NewMigration(nil, name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return "", errors.Wrapf(err, "failed to create directory %s", dir)
	}

	if err := checkAppendable(dir, name, resolver); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	header := fmt.Sprintf("-- %s\n", strings.TrimSpace(opts.Description))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, consts.ModeFile)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(header); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}

	return path, nil
}

// checkAppendable resolves the directory as if name had already been added
// and requires name to come out last.
func checkAppendable(dir, name string, resolver *migrator.Resolver) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to read directory %s", dir)
	}

	overlay := fstest.MapFS{name: {}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Name() == name {
			return errors.Errorf("migration %s already exists", name)
		}
		overlay[e.Name()] = &fstest.MapFile{}
	}

	candidates, err := resolver.ListCandidates(overlay)
	if err != nil {
		return errors.Wrapf(err, "adding %s would invalidate the migration set", name)
	}

	if last := candidates[len(candidates)-1]; last.Identifier != name {
		return errors.Errorf("migration %s would sort before %s", name, last.Identifier)
	}

	return nil
}
