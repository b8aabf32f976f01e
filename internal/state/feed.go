package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/avoronin/MiniFeed/internal/models"
)

// FeedService defines the post-feed operations the feed container composes.
type FeedService interface {
	CreatePost(ctx context.Context, c models.CreatePost) (models.Post, error)
}

// AccountDirectory defines the account lookup used to join a fresh post
// to its author.
type AccountDirectory interface {
	FindAccount(ctx context.Context, id string) (models.Account, bool, error)
}

// Feed is the observable container for the current feed entries.
type Feed struct {
	svc      FeedService
	accounts AccountDirectory

	mu      sync.Mutex
	entries []models.FeedEntry
	subs    []func([]models.FeedEntry)
}

// NewFeed constructs an empty feed container.
func NewFeed(svc FeedService, accounts AccountDirectory) *Feed {
	return &Feed{svc: svc, accounts: accounts}
}

// Set replaces the in-memory entries and notifies subscribers.
func (f *Feed) Set(entries []models.FeedEntry) {
	f.mu.Lock()
	f.entries = entries
	f.mu.Unlock()

	f.notify()
}

// Entries returns a copy of the in-memory feed entries, newest first.
func (f *Feed) Entries() []models.FeedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.FeedEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// AddPost resolves the author, persists the candidate as a new post, and
// prepends the joined entry to the in-memory feed. The author is resolved
// before anything is written: an unknown author fails the whole operation
// with models.ErrUnknownAuthor and neither storage nor memory changes.
func (f *Feed) AddPost(ctx context.Context, c models.CreatePost) (models.FeedEntry, error) {
	author, ok, err := f.accounts.FindAccount(ctx, c.UserID)
	if err != nil {
		return models.FeedEntry{}, fmt.Errorf("resolve author: %w", err)
	}
	if !ok {
		return models.FeedEntry{}, models.ErrUnknownAuthor
	}

	post, err := f.svc.CreatePost(ctx, c)
	if err != nil {
		return models.FeedEntry{}, err
	}

	entry := models.FeedEntry{Post: post, User: author.Public()}

	f.mu.Lock()
	f.entries = append([]models.FeedEntry{entry}, f.entries...)
	f.mu.Unlock()

	f.notify()
	return entry, nil
}

// Subscribe registers fn to run after every feed change with a copy of
// the current entries.
func (f *Feed) Subscribe(fn func([]models.FeedEntry)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

func (f *Feed) notify() {
	f.mu.Lock()
	subs := f.subs
	entries := make([]models.FeedEntry, len(f.entries))
	copy(entries, f.entries)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(entries)
	}
}
