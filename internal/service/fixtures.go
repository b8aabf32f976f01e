package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avoronin/MiniFeed/internal/models"
)

const loremContent = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, " +
	"sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris " +
	"nisi ut aliquip ex ea commodo consequat."

// FixtureAccounts returns the built-in demo accounts that get materialized
// into storage on first use. Passwords are hashed here rather than stored
// as literals, so the plaintext never ends up in the persisted collection.
func FixtureAccounts() []models.Account {
	return []models.Account{
		{
			ID:           "1",
			Name:         "Theresa Webb",
			Email:        "demo@example.com",
			PasswordHash: mustHash("password123"),
			ImageURL:     "https://picsum.photos/id/64/200",
		},
		{
			ID:           "2",
			Name:         "John Doe",
			Email:        "test@user.com",
			PasswordHash: mustHash("testpass"),
			ImageURL:     "https://picsum.photos/id/550/200",
		},
	}
}

// FixturePosts returns the built-in demo posts that get materialized into
// storage on first use. Every post references a fixture account.
func FixturePosts() []models.Post {
	postedAt := time.Date(2024, time.June, 7, 11, 38, 0, 0, time.UTC)
	return []models.Post{
		{ID: "98", PostedAt: postedAt, Content: loremContent, UserID: "1", Emoji: "🥴"},
		{ID: "99", PostedAt: postedAt, Content: loremContent, UserID: "2", Emoji: "🤞"},
		{ID: "100", PostedAt: postedAt, Content: loremContent, UserID: "1", Emoji: "💀"},
	}
}

// mustHash bcrypt-hashes a fixture password. GenerateFromPassword can only
// fail for an out-of-range cost, which DefaultCost never is.
func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
