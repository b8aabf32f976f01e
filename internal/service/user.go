// Package service provides the user-directory and post-feed business logic,
// delegating persistence to a storage.KV.
package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronin/MiniFeed/internal/models"
	"github.com/avoronin/MiniFeed/internal/storage"
)

// Uploader resolves an image file to a hosted URL. It is consumed during
// account creation when the candidate carries an avatar.
type Uploader interface {
	// Upload sends the file content and returns the hosted URL.
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// UserDirectory manages the registered accounts and the session pointer.
type UserDirectory struct {
	kv       storage.KV
	uploader Uploader
}

// NewUserDirectory constructs a UserDirectory over the given store.
// uploader may be nil when avatar upload is not needed.
func NewUserDirectory(kv storage.KV, uploader Uploader) *UserDirectory {
	return &UserDirectory{kv: kv, uploader: uploader}
}

// Bootstrap materializes the fixture accounts if the directory is empty.
// The lazy seed inside ListAccounts makes this optional, but calling it at
// startup keeps the side effect in the boot path instead of hidden behind
// the first read.
func (s *UserDirectory) Bootstrap(ctx context.Context) error {
	_, err := s.ListAccounts(ctx)
	return err
}

// ListAccounts returns the persisted account collection. An empty directory
// is seeded with the built-in demo accounts first.
func (s *UserDirectory) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, ok, err := storage.GetItem[[]models.Account](ctx, s.kv, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if !ok || len(accounts) == 0 {
		seed := FixtureAccounts()
		if err := storage.SetItem(ctx, s.kv, storage.KeyUsers, seed); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
		return seed, nil
	}
	return accounts, nil
}

// FindAccount looks up an account by id. ok=false when no account matches.
func (s *UserDirectory) FindAccount(ctx context.Context, id string) (models.Account, bool, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return models.Account{}, false, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, true, nil
		}
	}
	return models.Account{}, false, nil
}

// SessionUser reads the persisted session pointer. ok=false when no user
// is logged in.
func (s *UserDirectory) SessionUser(ctx context.Context) (models.SessionUser, bool, error) {
	return storage.GetItem[models.SessionUser](ctx, s.kv, storage.KeyUser)
}

// SetSessionUser persists the session pointer.
func (s *UserDirectory) SetSessionUser(ctx context.Context, user models.SessionUser) error {
	return storage.SetItem(ctx, s.kv, storage.KeyUser, user)
}

// ClearSession removes the persisted session pointer.
func (s *UserDirectory) ClearSession(ctx context.Context) error {
	return s.kv.Delete(ctx, storage.KeyUser)
}

// Login authenticates by email and password. On success it persists and
// returns the password-free session projection; otherwise it returns
// models.ErrInvalidCredentials without disclosing which field was wrong.
// Email comparison is a case-sensitive exact match.
func (s *UserDirectory) Login(ctx context.Context, email, password string) (models.SessionUser, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return models.SessionUser{}, err
	}

	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
			continue
		}
		user := a.Public()
		if err := s.SetSessionUser(ctx, user); err != nil {
			return models.SessionUser{}, fmt.Errorf("persist session: %w", err)
		}
		return user, nil
	}

	return models.SessionUser{}, models.ErrInvalidCredentials
}

// CreateAccount registers a new account. A duplicate email fails with
// models.ErrEmailTaken before anything is persisted. When the candidate
// carries an avatar, it is uploaded first; an upload failure aborts the
// whole operation. On success the new account is appended to the stored
// collection and becomes the current session user.
func (s *UserDirectory) CreateAccount(ctx context.Context, c models.CreateAccount) (models.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return models.Account{}, err
	}

	for _, a := range accounts {
		if a.Email == c.Email {
			return models.Account{}, models.ErrEmailTaken
		}
	}

	var imageURL string
	if c.Image != nil {
		if s.uploader == nil {
			return models.Account{}, fmt.Errorf("upload image: no uploader configured")
		}
		imageURL, err = s.uploader.Upload(ctx, c.ImageName, c.Image)
		if err != nil {
			return models.Account{}, fmt.Errorf("upload image: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: string(hash),
		ImageURL:     imageURL,
	}

	if err := storage.SetItem(ctx, s.kv, storage.KeyUsers, append(accounts, account)); err != nil {
		return models.Account{}, fmt.Errorf("persist accounts: %w", err)
	}
	if err := s.SetSessionUser(ctx, account.Public()); err != nil {
		return models.Account{}, fmt.Errorf("persist session: %w", err)
	}
	return account, nil
}
