// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNoMatch is returned when the metadata source has nothing for the ISBN.
var ErrNoMatch = errors.New("metadata: no match for isbn")

// BookInfo is what a metadata source can tell us about a book.
type BookInfo struct {
	Title       string
	Description string
	PageCount   int
}

// Lookup resolves an ISBN to book metadata.
type Lookup interface {
	ByISBN(ctx context.Context, isbn string) (BookInfo, error)
}

// OpenLibrary looks books up against the Open Library books API.
type OpenLibrary struct {
	baseURL string
	http    *http.Client
}

// DefaultBaseURL is the public Open Library endpoint.
const DefaultBaseURL = "https://openlibrary.org"

func NewOpenLibrary(baseURL string) *OpenLibrary {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenLibrary{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (o *OpenLibrary) ByISBN(ctx context.Context, isbn string) (BookInfo, error) {
	endpoint := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&format=json&jscmd=data",
		o.baseURL, url.QueryEscape(isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return BookInfo{}, fmt.Errorf("metadata: failed to build request: %w", err)
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return BookInfo{}, fmt.Errorf("metadata: lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return BookInfo{}, fmt.Errorf("metadata: lookup returned %d", resp.StatusCode)
	}

	var payload map[string]struct {
		Title         string `json:"title"`
		NumberOfPages int    `json:"number_of_pages"`
		Excerpts      []struct {
			Text string `json:"text"`
		} `json:"excerpts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return BookInfo{}, fmt.Errorf("metadata: failed to decode response: %w", err)
	}

	entry, ok := payload["ISBN:"+isbn]
	if !ok {
		return BookInfo{}, ErrNoMatch
	}

	info := BookInfo{
		Title:     entry.Title,
		PageCount: entry.NumberOfPages,
	}
	if len(entry.Excerpts) > 0 {
		info.Description = entry.Excerpts[0].Text
	}
	return info, nil
}

// ErrNoSummary is returned when a summarizer has nothing to offer.
var ErrNoSummary = errors.New("metadata: no summary available")

// Summarizer produces a short club-facing summary of a book.
type Summarizer interface {
	Summarize(ctx context.Context, title, description string) (string, error)
}

// Noop is a Lookup and Summarizer that never matches. Used when no metadata
// source is configured.
type Noop struct{}

func (Noop) ByISBN(ctx context.Context, isbn string) (BookInfo, error) {
	return BookInfo{}, ErrNoMatch
}

func (Noop) Summarize(ctx context.Context, title, description string) (string, error) {
	return "", ErrNoSummary
}

// ExcerptSummarizer summarizes a book from its own description: the first
// sentence or two, clipped to maxLen runes. A stand-in for a smarter
// upstream; it never calls out.
type ExcerptSummarizer struct {
	MaxLen int
}

func (e ExcerptSummarizer) Summarize(ctx context.Context, title, description string) (string, error) {
	if description == "" {
		return "", ErrNoSummary
	}
	maxLen := e.MaxLen
	if maxLen <= 0 {
		maxLen = 280
	}
	runes := []rune(description)
	if len(runes) <= maxLen {
		return description, nil
	}
	clipped := runes[:maxLen]
	// Prefer to break at the last sentence end inside the window.
	for i := len(clipped) - 1; i > maxLen/2; i-- {
		if clipped[i] == '.' || clipped[i] == '!' || clipped[i] == '?' {
			return string(clipped[:i+1]), nil
		}
	}
	return string(clipped) + "…", nil
}
