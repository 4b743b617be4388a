// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package scheduler owns the background sweeps: deadline-driven election
// closes and prediction reminders. Sweeps are idempotent and tolerate
// per-item failures, so a crashed or restarted server picks up where it
// left off.
package scheduler
