// Package main runs the interactive social-feed client: it wires
// configuration, logging, storage, services, and state containers, then
// drops into a command loop.
package main

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/avoronin/MiniFeed/internal/config"
	"github.com/avoronin/MiniFeed/internal/logger"
	"github.com/avoronin/MiniFeed/internal/models"
	"github.com/avoronin/MiniFeed/internal/service"
	"github.com/avoronin/MiniFeed/internal/state"
	"github.com/avoronin/MiniFeed/internal/storage"
	"github.com/avoronin/MiniFeed/internal/uploader"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	ctx := context.Background()

	// Choose the persistence backend: local file by default, Postgres
	// when a DSN is configured.
	var kv storage.KV
	if options.DatabaseDSN != "" {
		store, err := storage.OpenPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot open postgres storage", zap.Error(err))
		}
		defer store.DB.Close()
		kv = store
	} else {
		store, err := storage.OpenFile(options.StoragePath)
		if err != nil {
			zapLogger.Fatal("cannot open file storage", zap.Error(err))
		}
		kv = store
	}

	// Wire the image uploader and the services.
	up := uploader.New(options.ImageEndpoint, options.ImageAPIKey, nil)
	users := service.NewUserDirectory(kv, up)
	feedSvc := service.NewPostFeed(kv, users)

	// Materialize the demo fixtures up front so seeding happens in the
	// boot path rather than behind the first read.
	if err := users.Bootstrap(ctx); err != nil {
		zapLogger.Fatal("cannot bootstrap accounts", zap.Error(err))
	}
	if err := feedSvc.Bootstrap(ctx); err != nil {
		zapLogger.Fatal("cannot bootstrap posts", zap.Error(err))
	}

	// Restore the session and feed into the in-memory containers.
	session := state.NewSession(users)
	if user, ok, err := users.SessionUser(ctx); err != nil {
		zapLogger.Fatal("cannot restore session", zap.Error(err))
	} else if ok {
		session.Set(user)
	}

	feed := state.NewFeed(feedSvc, users)
	entries, orphaned, err := feedSvc.ListFeed(ctx)
	if err != nil {
		zapLogger.Fatal("cannot load feed", zap.Error(err))
	}
	if len(orphaned) > 0 {
		zapLogger.Warn("dropped posts with unresolvable authors",
			zap.Int("count", len(orphaned)))
	}
	feed.Set(entries)

	repl(ctx, session, feed, users)
}

// repl runs the interactive shell loop, accepting commands to browse the
// feed and manage the session.
func repl(ctx context.Context, session *state.Session, feed *state.Feed, users *service.UserDirectory) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("minifeed> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, signup, login, logout, whoami, feed, post, exit")
		case "signup":
			signup(ctx, scanner, session, users)
		case "login":
			login(ctx, scanner, session, users)
		case "logout":
			if !session.IsAuthenticated() {
				fmt.Println("Not logged in")
				continue
			}
			if err := session.Logout(ctx); err != nil {
				fmt.Println("Logout failed:", err)
				continue
			}
			fmt.Println("Logged out")
		case "whoami":
			user, ok := session.Current()
			if !ok {
				fmt.Println("Not logged in")
				continue
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
		case "feed":
			printFeed(feed.Entries())
		case "post":
			addPost(ctx, scanner, session, feed)
		case "photo", "gif", "location":
			// Composer toolbar actions are stubs, same as in the web client.
			fmt.Println("This feature is not implemented yet")
		case "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// prompt prints the label and reads one trimmed line of input.
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// signup collects and validates the signup form, then creates the account.
// Field validation lives here, not in the service layer.
func signup(ctx context.Context, scanner *bufio.Scanner, session *state.Session, users *service.UserDirectory) {
	name := prompt(scanner, "Name: ")
	if name == "" {
		fmt.Println("Name must not be empty")
		return
	}
	email := prompt(scanner, "Email: ")
	if !strings.Contains(email, "@") {
		fmt.Println("Invalid email address")
		return
	}
	password := prompt(scanner, "Password: ")
	if len(password) < 8 {
		fmt.Println("Password must be at least 8 characters")
		return
	}
	confirm := prompt(scanner, "Confirm password: ")
	if confirm != password {
		fmt.Println("Passwords do not match")
		return
	}

	candidate := models.CreateAccount{Name: name, Email: email, Password: password}

	imagePath := prompt(scanner, "Avatar image path (optional): ")
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			fmt.Println("Cannot open image:", err)
			return
		}
		defer f.Close()
		candidate.Image = f
		candidate.ImageName = filepath.Base(imagePath)
	}

	account, err := users.CreateAccount(ctx, candidate)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			// Deliberately vague, same wording for conflict and failure.
			fmt.Println("Account already exists or something went wrong")
			return
		}
		fmt.Println("Signup failed:", err)
		return
	}

	session.Set(account.Public())
	fmt.Printf("Welcome, %s!\n", account.Name)
}

// login collects credentials and establishes a session.
func login(ctx context.Context, scanner *bufio.Scanner, session *state.Session, users *service.UserDirectory) {
	email := prompt(scanner, "Email: ")
	password := prompt(scanner, "Password: ")

	user, err := users.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			fmt.Println("Invalid email or password")
			return
		}
		fmt.Println("Login failed:", err)
		return
	}

	session.Set(user)
	fmt.Printf("Welcome back, %s!\n", user.Name)
}

// addPost collects post content from the current user and publishes it.
func addPost(ctx context.Context, scanner *bufio.Scanner, session *state.Session, feed *state.Feed) {
	user, ok := session.Current()
	if !ok {
		fmt.Println("Log in to post")
		return
	}

	content := prompt(scanner, "Content: ")
	if content == "" {
		fmt.Println("Content must not be empty")
		return
	}
	emoji := prompt(scanner, "Emoji (optional): ")

	entry, err := feed.AddPost(ctx, models.CreatePost{
		Content: content,
		UserID:  user.ID,
		Emoji:   emoji,
	})
	if err != nil {
		fmt.Println("Post failed:", err)
		return
	}
	fmt.Println("Posted", entry.ID)
}

// printFeed renders the feed entries, newest first.
func printFeed(entries []models.FeedEntry) {
	if len(entries) == 0 {
		fmt.Println("The feed is empty")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s (%s)", e.User.Name, e.PostedAt.Format("2006-01-02 15:04"))
		if e.Emoji != "" {
			fmt.Printf(" %s", e.Emoji)
		}
		fmt.Printf("\n%s\n---\n", e.Content)
	}
}
