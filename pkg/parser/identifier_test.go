package parser_test

import (
	"testing"

	. "github.com/pseudomuto/migrun/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		version     []uint64
		description string
		extension   string
	}{
		{
			name:        "three part version",
			input:       "V1.0.1__create_users.sql",
			version:     []uint64{1, 0, 1},
			description: "create_users",
			extension:   ".sql",
		},
		{
			name:        "lowercase prefix",
			input:       "v1.0.1__foo.sql",
			version:     []uint64{1, 0, 1},
			description: "foo",
			extension:   ".sql",
		},
		{
			name:        "single component",
			input:       "V42__seed.sql",
			version:     []uint64{42},
			description: "seed",
			extension:   ".sql",
		},
		{
			name:        "description with dots and spaces",
			input:       "V2.1__add users.v2.psql",
			version:     []uint64{2, 1},
			description: "add users.v2",
			extension:   ".psql",
		},
		{
			name:        "description with underscores",
			input:       "V3__add__more___things.sql",
			version:     []uint64{3},
			description: "add__more___things",
			extension:   ".sql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseIdentifier(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.input, id.Name)
			require.Equal(t, tt.version, id.Version)
			require.Equal(t, tt.description, id.Description)
			require.Equal(t, tt.extension, id.Extension)
		})
	}
}

func TestParseIdentifierErrors(t *testing.T) {
	tests := []string{
		"create_users.sql",
		"V1.0.1_create_users.sql",
		"V1.0.1__.sql",
		"V__create_users.sql",
		"V1..2__create_users.sql",
		"V1.__create_users.sql",
		"Va.b__create_users.sql",
		"X1__create_users.sql",
		"V1.0.1__create_users",
		"V1.0.1__create_users.",
		"V99999999999999999999__overflow.sql",
		"",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseIdentifier(input)
			require.Error(t, err)
		})
	}
}

func TestParseIdentifierMissingExtension(t *testing.T) {
	_, err := ParseIdentifier("V1__no_extension")
	require.ErrorIs(t, err, ErrMissingExtension)
}
