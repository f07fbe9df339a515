package migrator_test

import (
	"testing"
	"testing/fstest"

	"github.com/pseudomuto/migrun/pkg/migrator"
	"github.com/stretchr/testify/require"
)

func identifiers(ms []*migrator.Migration) []string {
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.Identifier
	}
	return ids
}

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestNewResolver(t *testing.T) {
	require.Equal(t, []string{".sql"}, migrator.NewResolver().Extensions)
	require.Equal(t, []string{".sql", ".psql"}, migrator.NewResolver("SQL", " .psql ", ".sql", "").Extensions)
	require.Equal(t, []string{".sql"}, migrator.NewResolver(" ").Extensions)
}

func TestListCandidates(t *testing.T) {
	tests := []struct {
		name     string
		fsys     fstest.MapFS
		exts     []string
		expected []string
	}{
		{
			name:     "empty_directory",
			fsys:     fstest.MapFS{},
			expected: nil,
		},
		{
			name: "byte_order",
			fsys: fstest.MapFS{
				"V1.1.0__create_orders.sql": file("CREATE TABLE orders (id INT);"),
				"V1.0.0__create_users.sql":  file("CREATE TABLE users (id INT);"),
				"V1.0.1__add_email.sql":     file("ALTER TABLE users ADD email TEXT;"),
			},
			expected: []string{
				"V1.0.0__create_users.sql",
				"V1.0.1__add_email.sql",
				"V1.1.0__create_orders.sql",
			},
		},
		{
			name: "ignores_other_files",
			fsys: fstest.MapFS{
				"V1__init.sql":           file("SELECT 1;"),
				"README.md":              file("docs"),
				".V2__hidden.sql":        file("SELECT 2;"),
				"archive/V0__old.sql":    file("SELECT 0;"),
				"V3__not_a_script.txt":   file("notes"),
				"V2__second_upper.SQL":   file("SELECT 2;"),
				"migrun.sum":             file("hash"),
				"notes_without_ext_here": file("x"),
			},
			expected: []string{"V1__init.sql", "V2__second_upper.SQL"},
		},
		{
			name: "custom_extensions",
			fsys: fstest.MapFS{
				"V1__init.sql":  file("SELECT 1;"),
				"V2__more.psql": file("SELECT 2;"),
			},
			exts:     []string{".psql"},
			expected: []string{"V2__more.psql"},
		},
		{
			name: "zero_padded_versions",
			fsys: fstest.MapFS{
				"V1.10__ten.sql":  file("SELECT 10;"),
				"V1.09__nine.sql": file("SELECT 9;"),
			},
			expected: []string{"V1.09__nine.sql", "V1.10__ten.sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := migrator.NewResolver(tt.exts...).ListCandidates(tt.fsys)
			require.NoError(t, err)
			require.Equal(t, tt.expected, identifiers(candidates))
		})
	}
}

func TestListCandidatesMalformed(t *testing.T) {
	fsys := fstest.MapFS{
		"V1__init.sql":      file("SELECT 1;"),
		"create_orders.sql": file("SELECT 2;"),
		"V3__later.sql":     file("SELECT 3;"),
	}

	candidates, err := migrator.NewResolver().ListCandidates(fsys)
	require.ErrorIs(t, err, migrator.ErrMalformedIdentifier)
	require.NotErrorIs(t, err, migrator.ErrOrderingViolation)
	require.ErrorContains(t, err, "create_orders.sql")
	require.Nil(t, candidates)
}

func TestListCandidatesOrderingViolations(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "unpadded_versions",
			fsys: fstest.MapFS{
				"V1.9__nine.sql": file("SELECT 9;"),
				"V1.10__ten.sql": file("SELECT 10;"),
			},
		},
		{
			name: "duplicate_version",
			fsys: fstest.MapFS{
				"V1__a.sql": file("SELECT 1;"),
				"V1__b.sql": file("SELECT 2;"),
			},
		},
		{
			name: "case_only_difference",
			fsys: fstest.MapFS{
				"V1__init.sql": file("SELECT 1;"),
				"v1__init.sql": file("SELECT 1;"),
			},
		},
		{
			name: "mixed_prefix_case",
			fsys: fstest.MapFS{
				"V2__second.sql": file("SELECT 2;"),
				"v1__first.sql":  file("SELECT 1;"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := migrator.NewResolver().ListCandidates(tt.fsys)
			require.ErrorIs(t, err, migrator.ErrOrderingViolation)
			require.ErrorIs(t, err, migrator.ErrMalformedIdentifier)
		})
	}
}
