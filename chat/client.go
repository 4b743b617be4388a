// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotFound is returned when the chat platform no longer has the requested
// message (deleted channels, purged history). Callers treat it as "zero
// engagement", not a failure.
var ErrNotFound = errors.New("chat: message not found")

// Message is a posted chat message as the platform reports it.
type Message struct {
	ID        int64
	ChannelID int64
	Content   string
}

// Client is the single surface through which the server talks to the chat
// platform. Everything the election flow needs: posting announcements,
// reading engagement off nomination messages, and maintaining the indicator
// reactions on the ballot post.
type Client interface {
	// SendMessage posts content to a channel and returns the new message.
	SendMessage(ctx context.Context, channelID int64, content string) (Message, error)

	// EditMessage replaces the content of an existing message.
	EditMessage(ctx context.Context, channelID, messageID int64, content string) error

	// AddReaction adds the bot's own reaction to a message.
	AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error

	// RemoveOwnReaction removes the bot's own reaction from a message.
	RemoveOwnReaction(ctx context.Context, channelID, messageID int64, emoji string) error

	// DistinctReactors returns the ids of users who reacted to a message
	// with any emoji, deduplicated across emoji.
	DistinctReactors(ctx context.Context, channelID, messageID int64) ([]int64, error)
}

// RESTClient talks to a Discord-compatible REST API with bot-token auth.
type RESTClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

func NewRESTClient(baseURL, token string, logger *slog.Logger) *RESTClient {
	return &RESTClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *RESTClient) SendMessage(ctx context.Context, channelID int64, content string) (Message, error) {
	body := map[string]string{"content": content}
	var resp struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/channels/%d/messages", channelID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return Message{}, err
	}
	id, err := strconv.ParseInt(resp.ID, 10, 64)
	if err != nil {
		return Message{}, fmt.Errorf("chat: bad message id %q: %w", resp.ID, err)
	}
	return Message{ID: id, ChannelID: channelID, Content: content}, nil
}

func (c *RESTClient) EditMessage(ctx context.Context, channelID, messageID int64, content string) error {
	body := map[string]string{"content": content}
	path := fmt.Sprintf("/channels/%d/messages/%d", channelID, messageID)
	return c.do(ctx, http.MethodPatch, path, body, nil)
}

func (c *RESTClient) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	path := fmt.Sprintf("/channels/%d/messages/%d/reactions/%s/@me",
		channelID, messageID, url.PathEscape(emoji))
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

func (c *RESTClient) RemoveOwnReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	path := fmt.Sprintf("/channels/%d/messages/%d/reactions/%s/@me",
		channelID, messageID, url.PathEscape(emoji))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *RESTClient) DistinctReactors(ctx context.Context, channelID, messageID int64) ([]int64, error) {
	var msg struct {
		Reactions []struct {
			Emoji struct {
				Name string `json:"name"`
			} `json:"emoji"`
		} `json:"reactions"`
	}
	path := fmt.Sprintf("/channels/%d/messages/%d", channelID, messageID)
	if err := c.do(ctx, http.MethodGet, path, nil, &msg); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	var out []int64
	for _, r := range msg.Reactions {
		reactPath := fmt.Sprintf("/channels/%d/messages/%d/reactions/%s",
			channelID, messageID, url.PathEscape(r.Emoji.Name))
		var users []struct {
			ID string `json:"id"`
		}
		if err := c.do(ctx, http.MethodGet, reactPath, nil, &users); err != nil {
			return nil, err
		}
		for _, u := range users {
			id, err := strconv.ParseInt(u.ID, 10, 64)
			if err != nil {
				continue
			}
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("chat: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("chat: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("chat: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("chat request failed",
			"method", method, "path", path,
			"status", resp.StatusCode, "body", string(msg))
		return fmt.Errorf("chat: %s %s returned %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("chat: failed to decode response: %w", err)
		}
	}
	return nil
}
