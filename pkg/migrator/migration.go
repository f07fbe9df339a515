package migrator

import (
	"io/fs"
	"path"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/parser"
)

// Migration is a single change script discovered in a source directory.
//
// The script body is not read until Load is called, so listing a large
// directory only touches file names.
type Migration struct {
	// Identifier is the full filename and doubles as the ledger key.
	Identifier string

	// Version is parsed from the identifier and only used for ordering checks.
	Version Version

	// Description is the label following the version separator.
	Description string

	// Extension is the file extension including the leading dot.
	Extension string

	fsys fs.FS
	path string
}

// NewMigration parses the filename at file and returns a Migration backed by
// fsys. The returned error matches ErrMalformedIdentifier when the name can't
// be parsed.
func NewMigration(fsys fs.FS, file string) (*Migration, error) {
	name := path.Base(file)
	id, err := parser.ParseIdentifier(name)
	if err != nil {
		return nil, &IdentifierError{Filename: name, Err: err}
	}

	return &Migration{
		Identifier:  id.Name,
		Version:     Version(id.Version),
		Description: id.Description,
		Extension:   id.Extension,
		fsys:        fsys,
		path:        file,
	}, nil
}

// Load reads the script body.
func (m *Migration) Load() (string, error) {
	data, err := fs.ReadFile(m.fsys, m.path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read migration: %s", m.Identifier)
	}

	return string(data), nil
}

func (m *Migration) String() string {
	return m.Identifier
}
