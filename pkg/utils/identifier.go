package utils

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidTableName is returned when a table name cannot be safely
	// interpolated into generated statements.
	ErrInvalidTableName = errors.New("invalid table name")

	tableSegment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ValidateTableName checks that name is either a bare table name or a
// schema-qualified one (schema.table), where every segment starts with a
// letter or underscore and contains only letters, digits and underscores.
//
// Examples:
//   - "migrun_ledger" -> nil
//   - "ops.migrun_ledger" -> nil
//   - "ledger; DROP TABLE x" -> ErrInvalidTableName
//   - "a.b.c" -> ErrInvalidTableName
func ValidateTableName(name string) error {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return errors.Wrapf(ErrInvalidTableName, "%q has too many segments", name)
	}

	for _, part := range parts {
		if !tableSegment.MatchString(part) {
			return errors.Wrapf(ErrInvalidTableName, "%q", name)
		}
	}

	return nil
}

// SplitQualified splits a possibly schema-qualified name into its schema and
// table parts. The schema is empty for unqualified names.
//
// Examples:
//   - "ledger" -> ("", "ledger")
//   - "ops.ledger" -> ("ops", "ledger")
func SplitQualified(name string) (string, string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}

	return "", name
}

// BacktickIdentifier adds backticks around each segment of a (possibly
// qualified) identifier.
//
// Examples:
//   - "table" -> "`table`"
//   - "database.table" -> "`database`.`table`"
//   - "" -> ""
func BacktickIdentifier(name string) string {
	return quoteSegments(name, "`")
}

// DoubleQuoteIdentifier adds ANSI double quotes around each segment of a
// (possibly qualified) identifier.
//
// Examples:
//   - "table" -> `"table"`
//   - "schema.table" -> `"schema"."table"`
func DoubleQuoteIdentifier(name string) string {
	return quoteSegments(name, `"`)
}

// FoldIdentifier normalizes an identifier for case-insensitive comparison.
func FoldIdentifier(id string) string {
	return strings.ToLower(id)
}

func quoteSegments(name, quote string) string {
	if name == "" {
		return ""
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = quote + strings.ReplaceAll(part, quote, quote+quote) + quote
	}

	return strings.Join(parts, ".")
}
