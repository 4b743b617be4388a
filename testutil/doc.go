// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides test helpers: database setup against a local
// Postgres with the real migrations, row fixtures, request/response
// assertion helpers, and an in-memory chat client.
package testutil
