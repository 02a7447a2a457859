package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/devlink/devlink/internal/auth"
	"github.com/devlink/devlink/internal/avatar"
	"github.com/devlink/devlink/internal/model"
	"github.com/devlink/devlink/internal/repository"
)

type output struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		name        = flag.String("name", "Seed User", "Account name")
		email       = flag.String("email", "seed@devlink.local", "Account email")
		password    = flag.String("password", "", "Account password (generated when empty)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	pass := *password
	if pass == "" {
		pass = ulid.Make().String()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	account, err := ensureAccount(ctx, repo, *name, *email, pass)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out := output{
		AccountID: account.ID,
		Email:     account.Email,
		Password:  pass,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.AccountID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func ensureAccount(ctx context.Context, repo *repository.Repository, name, email, password string) (*model.Account, error) {
	if existing, err := repo.GetAccountByEmail(ctx, email); err == nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           ulid.Make().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    avatar.URL(email, avatar.Options{}),
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}
