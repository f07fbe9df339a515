// Package parser provides the participle-based lexers used by migrun.
//
// Two grammars live here:
//
//   - ParseIdentifier parses migration filenames of the form
//     V<major>.<minor>.<patch>__<description>.<ext> into their components. Any
//     number of dot-separated numeric components is accepted, and the prefix
//     may be upper or lower case.
//   - HasTransactionControl scans a SQL script and reports whether it opens or
//     closes transactions itself. Comments, string literals, quoted identifiers
//     and dollar-quoted bodies are skipped so that keywords inside them are
//     ignored. END and SAVEPOINT are not treated as transaction control.
//     Compound statements that aren't dollar-quoted, such as a MySQL
//     CREATE PROCEDURE body, are not tracked: a nested BEGIN ... END block
//     that follows a semicolon inside the body is reported as transaction
//     control, so auto mode runs that script without a wrapping transaction.
//
// Basic usage:
//
//	id, err := parser.ParseIdentifier("V1.0.1__create_users.sql")
//	if err != nil {
//		return err
//	}
//
//	managed, err := parser.HasTransactionControl(strings.NewReader(script))
package parser
