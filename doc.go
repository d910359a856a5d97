// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the parkvote API server.

parkvote is the event participation ledger behind the Mythenpark
website's "Join Event" buttons: anonymous devices each register a
single join vote per event, deduplicated by a client-supplied device
identifier, with the aggregate count kept consistent across several
interchangeable storage backends.

# Starting the Server

The server reads configuration from the environment (a .env file is
honored) or CLI flags:

	IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 8090 -s postgres -d "postgres://..."

# Configuration

Required settings:

  - IP_HASH_SALT (-ip-salt): Secret for the salted IP hash recorded
    on vote records
  - DATABASE_URL (-d): connection string, for postgres/sqlite stores
  - MONGO_URI (-mongo-uri): connection URI, for the mongo store

Optional settings:

  - PORT (-p): Server port (default: 8090)
  - STORE_TYPE (-s): memory, postgres, sqlite, mongo or bolt
    (default: memory)
  - BOLT_PATH (-bolt-path): Bolt file path (default: data/parkvote.db)
  - EVENTS_FILE (-events): Event catalog JSON file
  - STORE_TIMEOUT_MS (-store-timeout-ms): per-operation storage
    timeout (default: 3000)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (votes, events)
  - router: Route definitions using Go 1.22+ routing
  - ledger: The vote ledger service and its invariants
  - store: Interchangeable storage backends + fallback supervisor
  - events: Static event catalog
  - deviceid: Device identity provider and IP hashing
  - client: Go participation client with optimistic reconciliation
  - middleware: CORS, logging, JSON helpers
  - models: Wire and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
