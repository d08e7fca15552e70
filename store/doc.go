// Package store persists finalized conversation records. Orders, check-ins
// and leads go to whole-file JSON arrays (one file per agent type); fraud
// cases live in a SQLite table managed through GORM, pre-seeded with sample
// cases and mutated in place as reviews conclude.
package store
