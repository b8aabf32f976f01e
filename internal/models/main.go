// Package models defines the core data structures for accounts, sessions,
// and the post feed.
package models

import (
	"io"
	"time"
)

// Account represents a registered user with credentials.
type Account struct {
	// ID is the unique identifier for the account.
	ID string `json:"id"`
	// Name is the display name shown next to posts.
	Name string `json:"name"`
	// Email is the login email, unique within the directory.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"passwordHash"`
	// ImageURL is the optional avatar URL.
	ImageURL string `json:"imageUrl,omitempty"`
}

// Public returns the password-free projection of the account,
// suitable for sessions and feed entries.
func (a Account) Public() SessionUser {
	return SessionUser{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		ImageURL: a.ImageURL,
	}
}

// SessionUser is the reduced projection of the currently authenticated
// account. It never carries credentials.
type SessionUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Post is a single feed item authored by an account.
type Post struct {
	// ID is the unique identifier for the post.
	ID string `json:"id"`
	// PostedAt is the creation timestamp, assigned when the post is created.
	PostedAt time.Time `json:"postedAt"`
	// Content is the post text.
	Content string `json:"content"`
	// UserID references the authoring Account.ID.
	UserID string `json:"userId"`
	// Emoji is an optional reaction attached at creation time.
	Emoji string `json:"emoji,omitempty"`
}

// FeedEntry is a post joined with its author's public projection.
// For every entry, User.ID equals the embedded post's UserID.
type FeedEntry struct {
	Post
	User SessionUser `json:"user"`
}

// CreatePost is the candidate record for a new post. Content is expected
// to be trimmed and non-empty by the caller.
type CreatePost struct {
	Content string
	UserID  string
	Emoji   string
}

// CreateAccount is the candidate record for a new account. Image, when
// non-nil, is uploaded to the image host before the account is persisted.
type CreateAccount struct {
	Name     string
	Email    string
	Password string
	// Image is the optional avatar file content.
	Image io.Reader
	// ImageName is the original file name of the avatar, used as the
	// multipart file name on upload.
	ImageName string
}
