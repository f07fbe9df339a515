// Package migrator discovers migration scripts and produces their execution
// order.
//
// A migration is a single file in a source directory whose name follows the
// V<version>__<description>.<ext> convention, for example:
//
//	V1.0.0__create_users.sql
//	V1.0.1__add_email_to_users.sql
//	V1.1.0__create_orders.sql
//
// The Resolver lists candidates from any fs.FS (an on-disk directory via
// os.DirFS, an embed.FS, or fstest.MapFS in tests) and orders them by byte-wise
// comparison of the full filename. That ordering is the execution order. The
// parsed version is only used to check that authors named their files so that
// byte order and version order agree: when they don't, ListCandidates fails
// with ErrOrderingViolation instead of silently running scripts out of
// sequence.
//
// Any file with a configured extension that cannot be parsed aborts the whole
// listing with ErrMalformedIdentifier, since skipping it would change the
// meaning of everything ordered after it.
//
// Example usage:
//
//	resolver := migrator.NewResolver(".sql")
//	candidates, err := resolver.ListCandidates(os.DirFS("db/migrations"))
//	if err != nil {
//		return err
//	}
//
//	for _, m := range candidates {
//		script, err := m.Load()
//		...
//	}
//
// Script contents are treated as immutable once a migration has been applied in
// any environment. Editing an applied script is unsupported and goes
// undetected.
package migrator
