// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package auth guards the privileged election operations with a shared admin
// token, compared in constant time.
package auth
