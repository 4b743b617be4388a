// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires handlers to routes on a standard library ServeMux
// using method-qualified patterns.
package router
