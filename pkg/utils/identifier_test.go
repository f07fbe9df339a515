package utils_test

import (
	"testing"

	"github.com/pseudomuto/migrun/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "migrun_ledger"},
		{name: "schema qualified", input: "ops.migrun_ledger"},
		{name: "leading underscore", input: "_ledger"},
		{name: "empty", input: "", wantErr: true},
		{name: "leading digit", input: "1ledger", wantErr: true},
		{name: "injection attempt", input: "ledger; DROP TABLE users", wantErr: true},
		{name: "quoted", input: `"ledger"`, wantErr: true},
		{name: "too many segments", input: "a.b.c", wantErr: true},
		{name: "empty segment", input: "ops.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTableName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, utils.ErrInvalidTableName)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSplitQualified(t *testing.T) {
	schema, table := utils.SplitQualified("ledger")
	require.Empty(t, schema)
	require.Equal(t, "ledger", table)

	schema, table = utils.SplitQualified("ops.ledger")
	require.Equal(t, "ops", schema)
	require.Equal(t, "ledger", table)
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name     string
		quote    func(string) string
		input    string
		expected string
	}{
		{name: "backtick simple", quote: utils.BacktickIdentifier, input: "ledger", expected: "`ledger`"},
		{name: "backtick qualified", quote: utils.BacktickIdentifier, input: "ops.ledger", expected: "`ops`.`ledger`"},
		{name: "backtick empty", quote: utils.BacktickIdentifier, input: "", expected: ""},
		{name: "double simple", quote: utils.DoubleQuoteIdentifier, input: "ledger", expected: `"ledger"`},
		{name: "double qualified", quote: utils.DoubleQuoteIdentifier, input: "ops.ledger", expected: `"ops"."ledger"`},
		{name: "double escapes quotes", quote: utils.DoubleQuoteIdentifier, input: `we"ird`, expected: `"we""ird"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.quote(tt.input))
		})
	}
}

func TestFoldIdentifier(t *testing.T) {
	require.Equal(t, utils.FoldIdentifier("V1.0.1__Foo.sql"), utils.FoldIdentifier("v1.0.1__foo.sql"))
	require.NotEqual(t, utils.FoldIdentifier("V1.0.1__Foo.sql"), utils.FoldIdentifier("V1.0.2__Foo.sql"))
}
