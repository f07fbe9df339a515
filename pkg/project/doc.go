// Package project scaffolds migrun projects and new migration scripts.
//
// A project follows this layout:
//
//	project-root/
//	├── migrun.yaml          # Project configuration
//	└── db/
//	    └── migrations/      # V<version>__<description>.sql scripts
//
// Initialize is idempotent and never overwrites existing files. CreateMigration
// only writes a script when the directory stays valid for the migration
// resolver with the new script sorting last.
package project
