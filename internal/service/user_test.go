package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/avoronin/MiniFeed/internal/models"
	"github.com/avoronin/MiniFeed/internal/storage"
)

func TestListAccounts_SeedsFixturesOnEmptyStorage(t *testing.T) {
	kv := newMemKV()
	svc := NewUserDirectory(kv, nil)

	accounts, err := svc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts returned error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("ListAccounts returned %d accounts; want 2", len(accounts))
	}
	if accounts[0].ID != "1" || accounts[0].Name != "Theresa Webb" {
		t.Errorf("accounts[0] = %s %q; want 1 \"Theresa Webb\"", accounts[0].ID, accounts[0].Name)
	}
	if accounts[1].ID != "2" || accounts[1].Name != "John Doe" {
		t.Errorf("accounts[1] = %s %q; want 2 \"John Doe\"", accounts[1].ID, accounts[1].Name)
	}

	// The seed must have been persisted, not just returned.
	stored, ok, err := storage.GetItem[[]models.Account](context.Background(), kv, storage.KeyUsers)
	if err != nil || !ok {
		t.Fatalf("stored accounts = ok %v, err %v; want present", ok, err)
	}
	if len(stored) != 2 {
		t.Errorf("stored %d accounts; want 2", len(stored))
	}
}

func TestFindAccount(t *testing.T) {
	svc := NewUserDirectory(newMemKV(), nil)

	account, ok, err := svc.FindAccount(context.Background(), "2")
	if err != nil {
		t.Fatalf("FindAccount returned error: %v", err)
	}
	if !ok || account.Email != "test@user.com" {
		t.Errorf("FindAccount(2) = %v, %v; want John Doe's account", account, ok)
	}

	_, ok, err = svc.FindAccount(context.Background(), "999")
	if err != nil {
		t.Fatalf("FindAccount returned error: %v", err)
	}
	if ok {
		t.Error("FindAccount(999) = present; want absent")
	}
}

func TestLogin_FixtureCredentials(t *testing.T) {
	kv := newMemKV()
	svc := NewUserDirectory(kv, nil)

	user, err := svc.Login(context.Background(), "demo@example.com", "password123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != "1" || user.Name != "Theresa Webb" {
		t.Errorf("Login = %s %q; want id 1 \"Theresa Webb\"", user.ID, user.Name)
	}

	// The session pointer must be persisted and password-free.
	stored, ok, err := svc.SessionUser(context.Background())
	if err != nil || !ok {
		t.Fatalf("SessionUser = ok %v, err %v; want present", ok, err)
	}
	if stored.ID != "1" || stored.Email != "demo@example.com" {
		t.Errorf("SessionUser = %+v; want fixture user 1", stored)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewUserDirectory(newMemKV(), nil)

	_, err := svc.Login(context.Background(), "demo@example.com", "wrong")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewUserDirectory(newMemKV(), nil)

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("Login error = %v; want ErrInvalidCredentials", err)
	}
}

func TestCreateAccount_Success(t *testing.T) {
	kv := newMemKV()
	svc := NewUserDirectory(kv, nil)

	account, err := svc.CreateAccount(context.Background(), models.CreateAccount{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "difference-engine",
	})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if account.ID == "" {
		t.Error("CreateAccount assigned empty id")
	}
	if account.PasswordHash == "difference-engine" {
		t.Error("CreateAccount stored the plaintext password")
	}

	// The new account must be appended to the stored collection.
	accounts, err := svc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts returned error: %v", err)
	}
	if len(accounts) != 3 || accounts[2].Email != "ada@example.com" {
		t.Errorf("stored accounts = %d, last %q; want 3 with ada@example.com last",
			len(accounts), accounts[len(accounts)-1].Email)
	}

	// Signup establishes the session for the new account.
	user, ok, err := svc.SessionUser(context.Background())
	if err != nil || !ok {
		t.Fatalf("SessionUser = ok %v, err %v; want present", ok, err)
	}
	if user.ID != account.ID {
		t.Errorf("SessionUser.ID = %s; want %s", user.ID, account.ID)
	}

	// The fresh credentials must round-trip through Login.
	if _, err := svc.Login(context.Background(), "ada@example.com", "difference-engine"); err != nil {
		t.Errorf("Login with new credentials returned error: %v", err)
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	kv := newMemKV()
	svc := NewUserDirectory(kv, nil)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccount{
		Name:     "Impostor",
		Email:    "test@user.com", // fixture John Doe
		Password: "whatever123",
	})
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Fatalf("CreateAccount error = %v; want ErrEmailTaken", err)
	}

	// The stored collection must be unchanged.
	accounts, err := svc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts returned error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("stored accounts = %d; want 2 after rejected duplicate", len(accounts))
	}
}

func TestCreateAccount_UploadsImage(t *testing.T) {
	kv := newMemKV()
	uploaded := false
	up := &mockUploader{
		UploadFunc: func(ctx context.Context, name string, r io.Reader) (string, error) {
			uploaded = true
			if name != "avatar.png" {
				t.Errorf("Upload received name = %q; want avatar.png", name)
			}
			return "http://img.example/abc", nil
		},
	}
	svc := NewUserDirectory(kv, up)

	account, err := svc.CreateAccount(context.Background(), models.CreateAccount{
		Name:      "Grace Hopper",
		Email:     "grace@example.com",
		Password:  "cobol4ever",
		Image:     strings.NewReader("png bytes"),
		ImageName: "avatar.png",
	})
	if err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	if !uploaded {
		t.Fatal("expected Upload to be called")
	}
	if account.ImageURL != "http://img.example/abc" {
		t.Errorf("ImageURL = %q; want the uploaded URL", account.ImageURL)
	}
}

func TestCreateAccount_UploadFailureAborts(t *testing.T) {
	kv := newMemKV()
	up := &mockUploader{
		UploadFunc: func(ctx context.Context, name string, r io.Reader) (string, error) {
			return "", errors.New("image host down")
		},
	}
	svc := NewUserDirectory(kv, up)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccount{
		Name:      "Grace Hopper",
		Email:     "grace@example.com",
		Password:  "cobol4ever",
		Image:     strings.NewReader("png bytes"),
		ImageName: "avatar.png",
	})
	if err == nil {
		t.Fatal("CreateAccount returned nil error; want upload failure")
	}

	// Nothing must have been persisted for the aborted signup.
	accounts, listErr := svc.ListAccounts(context.Background())
	if listErr != nil {
		t.Fatalf("ListAccounts returned error: %v", listErr)
	}
	if len(accounts) != 2 {
		t.Errorf("stored accounts = %d; want 2 after aborted signup", len(accounts))
	}
	if _, ok, _ := svc.SessionUser(context.Background()); ok {
		t.Error("SessionUser = present; want absent after aborted signup")
	}
}

func TestClearSession(t *testing.T) {
	svc := NewUserDirectory(newMemKV(), nil)

	if _, err := svc.Login(context.Background(), "demo@example.com", "password123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := svc.ClearSession(context.Background()); err != nil {
		t.Fatalf("ClearSession returned error: %v", err)
	}
	if _, ok, _ := svc.SessionUser(context.Background()); ok {
		t.Error("SessionUser = present; want absent after ClearSession")
	}
}
