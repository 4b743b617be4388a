// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot selects which nominated books appear on an election's ballot.

Selection is a pure ranking (Select) over a candidate pool: fresh books
before returners, then score, then nomination age, with past winners and
over-exposed books filtered out. Builder wraps Select with the impure parts,
loading the pool from storage and recounting live reaction engagement from
the chat platform so scores reflect reality at the moment the election opens.
*/
package ballot
