// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface.

Handlers own request parsing and input validation only; domain rules live in
the election and ballot packages and data access in the store. Domain errors
flow through middleware.WriteError so each error class maps to one status
code everywhere.

Privileged operations (opening and closing elections) require the admin
token header; everything else is open to the club's own tooling.
*/
package handlers
