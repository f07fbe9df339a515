// Package utils provides small helpers shared by the ledger and command
// packages.
//
// # Identifier Utilities (identifier.go)
//
// Ledger table names are configurable, so they end up interpolated into DDL
// and DML. ValidateTableName restricts them to plain (optionally
// schema-qualified) SQL identifiers before any quoting happens:
//
//	if err := utils.ValidateTableName("ops.migrun_ledger"); err != nil {
//		return err
//	}
//
// Quoting is dialect specific:
//
//	utils.DoubleQuoteIdentifier("ops.migrun_ledger") // "ops"."migrun_ledger"
//	utils.BacktickIdentifier("ops.migrun_ledger")    // `ops`.`migrun_ledger`
//
// Migration identifiers compare case-insensitively everywhere. FoldIdentifier
// is the single normalization used for set membership:
//
//	utils.FoldIdentifier("V1.0.1__Foo.sql") == utils.FoldIdentifier("v1.0.1__foo.sql")
package utils
