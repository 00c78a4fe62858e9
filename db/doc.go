// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and session persistence.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite (modernc.org/sqlite, the default) and
Postgres (lib/pq).

# Tables

  - naming_session: one row per session, JSON payload plus the current phase
  - founder_profile: one row per (session, founder), JSON payload plus the
    derived interview status

# Store

Store is a last-write-wins key/value layer over those tables. Queries are
built with squirrel so the placeholder style follows the dialect:

	store := db.NewStore(conn, db.DialectPostgres)
	err := store.Save(ctx, session)
	session, err := store.Load(ctx, id) // db.ErrSessionNotFound if missing

Save writes the session and both founder profiles in one transaction. Load
prefers the founder_profile rows over the profile copies in the session
payload, so SaveProfile can update a single founder.
*/
package db
