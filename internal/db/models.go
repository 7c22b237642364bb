// Package db persists the published podcast list in SQLite.
//
// The list is stored as a single JSON document under one key, newest first,
// so the on-disk contract matches the browser storage slot the list was
// originally kept in.
package db

// PodcastsKey is the storage key holding the published list.
const PodcastsKey = "podcasts"

const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updatedAt REAL NOT NULL
	);
`
