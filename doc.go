// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the clubvote API server.

clubvote runs a book club's nomination-and-election cycle: members nominate
books, reaction engagement and past votes rank the nominees, and elections
pick the next read with quadratically priced voting.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8080 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_TOKEN (-admin-token): Shared secret for open/close operations
  - CHAT_API_URL / CHAT_BOT_TOKEN: Chat platform credentials

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - VOTE_WEIGHT_MEMBER / VOTE_WEIGHT_PUBLIC: Quadratic caps (defaults 22 / 10)
  - BALLOT_SIZE, ELECTION_HOURS, MAX_BALLOT_APPEARANCES, STAGING

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (books, nominations, elections, votes, predictions)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error mapping
  - election: Lifecycle engine, vote validation, tallying
  - ballot: Candidate ranking and selection
  - indicator: Turnout reactions on the ballot post
  - scheduler: Deadline closes and prediction reminders
  - chat: Chat platform REST client
  - metadata: Open Library book enrichment
  - store: Typed PostgreSQL access
  - db: Embedded goose migrations
  - models: Request/response types
  - auth: Admin token validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
