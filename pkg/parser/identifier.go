package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// ErrMissingExtension is returned for filenames without an extension.
	ErrMissingExtension = errors.New("missing file extension")

	identifierLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Prefix", Pattern: `[Vv]`, Action: lexer.Push("Version")},
		},
		"Version": {
			{Name: "Number", Pattern: `\d+`},
			{Name: "Dot", Pattern: `\.`},
			{Name: "Separator", Pattern: `__`, Action: lexer.Push("Description")},
		},
		"Description": {
			{Name: "Text", Pattern: `[^/\\\x00]+`},
		},
	})

	identifierParser = participle.MustBuild[filename](
		participle.Lexer(identifierLexer),
	)
)

type filename struct {
	Prefix      string   `parser:"@Prefix"`
	Version     []string `parser:"@Number ( Dot @Number )*"`
	Description string   `parser:"Separator @Text"`
}

// Identifier is the parsed form of a migration filename such as
// V1.2.0__add_users.sql.
type Identifier struct {
	// Name is the complete filename, extension included.
	Name string

	// Prefix is the version marker, either "V" or "v".
	Prefix string

	// Version holds the dot-separated numeric components.
	Version []uint64

	// Description is the opaque label between the separator and the extension.
	Description string

	// Extension is the file extension including the leading dot.
	Extension string
}

// ParseIdentifier parses a migration filename of the form
// V<version>__<description>.<ext>, where <version> is a dot-separated
// sequence of non-negative integers.
//
// Example:
//
//	id, err := parser.ParseIdentifier("V1.0.1__create_users.sql")
//	// id.Version == []uint64{1, 0, 1}
//	// id.Description == "create_users"
//	// id.Extension == ".sql"
func ParseIdentifier(name string) (*Identifier, error) {
	ext := filepath.Ext(name)
	if len(ext) < 2 {
		return nil, errors.Wrapf(ErrMissingExtension, "%q", name)
	}

	base := strings.TrimSuffix(name, ext)
	parsed, err := identifierParser.ParseString(name, base)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %q", name)
	}

	version := make([]uint64, len(parsed.Version))
	for i, part := range parsed.Version {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version component %q in %q", part, name)
		}
		version[i] = n
	}

	return &Identifier{
		Name:        name,
		Prefix:      parsed.Prefix,
		Version:     version,
		Description: parsed.Description,
		Extension:   ext,
	}, nil
}
