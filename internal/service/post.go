package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avoronin/MiniFeed/internal/models"
	"github.com/avoronin/MiniFeed/internal/storage"
)

// AccountDirectory defines the account lookups required by the post feed.
type AccountDirectory interface {
	// FindAccount looks up an account by id; ok=false when none matches.
	FindAccount(ctx context.Context, id string) (models.Account, bool, error)
}

// PostFeed manages the ordered post collection and its join against the
// account directory.
type PostFeed struct {
	kv       storage.KV
	accounts AccountDirectory
}

// NewPostFeed constructs a PostFeed over the given store and directory.
func NewPostFeed(kv storage.KV, accounts AccountDirectory) *PostFeed {
	return &PostFeed{kv: kv, accounts: accounts}
}

// Bootstrap materializes the fixture posts if the collection is empty,
// making the lazy seed visible in the boot path.
func (s *PostFeed) Bootstrap(ctx context.Context) error {
	_, err := s.listPosts(ctx)
	return err
}

// listPosts returns the persisted post collection, seeding the built-in
// demo posts when it is empty.
func (s *PostFeed) listPosts(ctx context.Context) ([]models.Post, error) {
	posts, ok, err := storage.GetItem[[]models.Post](ctx, s.kv, storage.KeyPosts)
	if err != nil {
		return nil, fmt.Errorf("read posts: %w", err)
	}
	if !ok || len(posts) == 0 {
		seed := FixturePosts()
		if err := storage.SetItem(ctx, s.kv, storage.KeyPosts, seed); err != nil {
			return nil, fmt.Errorf("seed posts: %w", err)
		}
		return seed, nil
	}
	return posts, nil
}

// ListFeed joins every stored post to its author. Posts whose author no
// longer resolves are returned separately in orphaned so callers can
// observe the integrity violation instead of it vanishing. For every
// returned entry, entry.User.ID equals entry.UserID.
func (s *PostFeed) ListFeed(ctx context.Context) (entries []models.FeedEntry, orphaned []models.Post, err error) {
	posts, err := s.listPosts(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, post := range posts {
		author, ok, err := s.accounts.FindAccount(ctx, post.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve author %q: %w", post.UserID, err)
		}
		if !ok {
			orphaned = append(orphaned, post)
			continue
		}
		entries = append(entries, models.FeedEntry{Post: post, User: author.Public()})
	}
	return entries, orphaned, nil
}

// CreatePost persists a new post at the head of the stored collection and
// returns it. The post gets a fresh id and the current time as PostedAt.
// Content validation is the caller's responsibility.
func (s *PostFeed) CreatePost(ctx context.Context, c models.CreatePost) (models.Post, error) {
	post := models.Post{
		ID:       uuid.NewString(),
		PostedAt: time.Now().UTC(),
		Content:  c.Content,
		UserID:   c.UserID,
		Emoji:    c.Emoji,
	}

	stored, _, err := storage.GetItem[[]models.Post](ctx, s.kv, storage.KeyPosts)
	if err != nil {
		return models.Post{}, fmt.Errorf("read posts: %w", err)
	}

	updated := append([]models.Post{post}, stored...)
	if err := storage.SetItem(ctx, s.kv, storage.KeyPosts, updated); err != nil {
		return models.Post{}, fmt.Errorf("persist posts: %w", err)
	}
	return post, nil
}
