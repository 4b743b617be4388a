// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"sync"

	"github.com/avelis/clubvote/chat"
)

// FakeChat is an in-memory chat.Client. It records everything sent and lets
// tests script reactor lists per message.
type FakeChat struct {
	mu sync.Mutex

	nextID    int64
	Messages  []chat.Message
	Reactions map[int64][]string // message id -> bot's own reactions, in order
	Reactors  map[int64][]int64  // message id -> scripted distinct reactors
	Missing   map[int64]bool     // message ids that return chat.ErrNotFound

	// FailSend makes SendMessage fail, for outage scenarios.
	FailSend bool
}

func NewFakeChat() *FakeChat {
	return &FakeChat{
		nextID:    1000,
		Reactions: make(map[int64][]string),
		Reactors:  make(map[int64][]int64),
		Missing:   make(map[int64]bool),
	}
}

func (f *FakeChat) SendMessage(ctx context.Context, channelID int64, content string) (chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSend {
		return chat.Message{}, chat.ErrNotFound
	}
	f.nextID++
	msg := chat.Message{ID: f.nextID, ChannelID: channelID, Content: content}
	f.Messages = append(f.Messages, msg)
	return msg, nil
}

func (f *FakeChat) EditMessage(ctx context.Context, channelID, messageID int64, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[messageID] {
		return chat.ErrNotFound
	}
	for i, m := range f.Messages {
		if m.ID == messageID {
			f.Messages[i].Content = content
		}
	}
	return nil
}

func (f *FakeChat) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[messageID] {
		return chat.ErrNotFound
	}
	for _, e := range f.Reactions[messageID] {
		if e == emoji {
			return nil
		}
	}
	f.Reactions[messageID] = append(f.Reactions[messageID], emoji)
	return nil
}

func (f *FakeChat) RemoveOwnReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[messageID] {
		return chat.ErrNotFound
	}
	existing := f.Reactions[messageID]
	out := existing[:0]
	for _, e := range existing {
		if e != emoji {
			out = append(out, e)
		}
	}
	f.Reactions[messageID] = out
	return nil
}

func (f *FakeChat) DistinctReactors(ctx context.Context, channelID, messageID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[messageID] {
		return nil, chat.ErrNotFound
	}
	return f.Reactors[messageID], nil
}

// LastMessage returns the most recently sent message, or false when nothing
// has been sent.
func (f *FakeChat) LastMessage() (chat.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Messages) == 0 {
		return chat.Message{}, false
	}
	return f.Messages[len(f.Messages)-1], true
}
