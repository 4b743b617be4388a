// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides HTTP cross-cutting helpers: request logging
// with correlation ids, JSON response encoding, the uniform {"detail": ...}
// error body, and the single place where domain errors become status codes.
package middleware
