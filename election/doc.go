// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election runs the election lifecycle.

An election opens with a ballot chosen by the ballot package, accepts
weighted votes while open, and closes into a tally. Votes are priced
quadratically: a submission is valid only while the sum of its squared
weights stays within the voter's tier cap. Each submission is priced on its
own, and resubmitting replaces prior weights per book.

Closing is race-safe: the store's conditional update lets exactly one closer
through to tally, and a defensive sweep closes any other election that
somehow ended up open. Tallying ranks ballot books by summed weight, with
ties going to the earlier ballot position; an election with no votes has no
winner.
*/
package election
