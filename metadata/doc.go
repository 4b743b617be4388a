// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metadata enriches book records from an external source. The only
// implementation is Open Library's books API; lookups are best-effort and a
// miss never blocks book creation.
package metadata
