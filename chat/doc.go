// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package chat integrates with the club's chat platform over its REST API.

The Client interface is the one seam between the election engine and the
platform: announcements, engagement reads, and indicator reactions all go
through it, so tests substitute a fake and the rest of the codebase never
touches HTTP. RESTClient is the production implementation, speaking a
Discord-compatible API with bot-token auth.

A missing message (deleted channel, purged history) surfaces as ErrNotFound;
engagement readers treat that as zero, not as an error.
*/
package chat
