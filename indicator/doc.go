// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package indicator maintains the turnout reaction on an election's ballot
// post: a digit emoji capped at ten distinct voters, joined by a permanent
// overflow marker once turnout passes the freeze threshold.
package indicator
