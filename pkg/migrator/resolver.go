package migrator

import (
	"io/fs"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrun/pkg/consts"
	"github.com/pseudomuto/migrun/pkg/utils"
)

// Resolver discovers migration candidates in a source directory.
type Resolver struct {
	// Extensions lists the file extensions (with leading dot) that are
	// considered migration scripts. Matching is case-insensitive.
	Extensions []string
}

// NewResolver returns a Resolver that considers files with the given
// extensions. With no extensions, only .sql files are considered.
func NewResolver(exts ...string) *Resolver {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(normalized, ext) {
			normalized = append(normalized, ext)
		}
	}

	if len(normalized) == 0 {
		normalized = append(normalized, consts.DefaultExtension)
	}

	return &Resolver{Extensions: normalized}
}

// ListCandidates enumerates the scripts at the root of fsys and returns them
// sorted by byte-wise comparison of their filenames.
//
// Directories, dot-files and files with other extensions are ignored. Any
// remaining file that can't be parsed fails the listing with
// ErrMalformedIdentifier. When the byte order disagrees with version order, or
// two files collide on identifier (ignoring case) or version, the error matches
// both ErrMalformedIdentifier and ErrOrderingViolation.
func (r *Resolver) ListCandidates(fsys fs.FS) ([]*Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migration directory")
	}

	var candidates []*Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !r.matches(name) {
			continue
		}

		m, err := NewMigration(fsys, name)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, m)
	}

	// NB: fs.ReadDir already sorts by name, but that's an implementation detail
	// of the FS. Byte-wise order is the execution contract, so sort explicitly.
	slices.SortFunc(candidates, func(a, b *Migration) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})

	if err := checkOrdering(candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}

func (r *Resolver) matches(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range r.Extensions {
		if strings.HasSuffix(lower, ext) && len(lower) > len(ext) {
			return true
		}
	}

	return false
}

func checkOrdering(candidates []*Migration) error {
	seen := make(map[string]string, len(candidates))
	for i, m := range candidates {
		key := utils.FoldIdentifier(m.Identifier)
		if other, ok := seen[key]; ok {
			return &IdentifierError{
				Filename: m.Identifier,
				Err:      errors.Wrapf(ErrOrderingViolation, "%q and %q differ only in case", other, m.Identifier),
			}
		}
		seen[key] = m.Identifier

		if i == 0 {
			continue
		}

		prev := candidates[i-1]
		if prev.Version.Compare(m.Version) >= 0 {
			return &IdentifierError{
				Filename: m.Identifier,
				Err: errors.Wrapf(
					ErrOrderingViolation,
					"%q (version %s) sorts before %q (version %s)",
					prev.Identifier, prev.Version, m.Identifier, m.Version,
				),
			}
		}
	}

	return nil
}
