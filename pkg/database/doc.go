// Package database opens connections to migration targets and executes
// migration scripts against them.
//
// Each script is sent to the database as a single exec call. The TxMode
// decides whether that call happens inside a transaction:
//
//   - auto (default): wrap unless the script contains its own BEGIN, COMMIT,
//     ROLLBACK or START TRANSACTION statements
//   - always: always wrap
//   - never: never wrap
//
// Note that some engines (MySQL in particular) implicitly commit DDL, so a
// failed script may leave partial effects behind regardless of the mode.
package database
