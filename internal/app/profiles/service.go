package profiles

import (
	"context"

	"tunecrate/internal/identity"
)

// Accounts captures the signup/login operations of the profile directory.
type Accounts interface {
	Signup(ctx context.Context, username, password, pictureURL string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// TokenIssuer mints session tokens for authenticated usernames.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Service exposes profile workflows.
type Service interface {
	Signup(ctx context.Context, username, password, pictureURL string) error
	Login(ctx context.Context, username, password string) (string, error)
	Get(ctx context.Context, username string) (identity.Profile, error)
}

type service struct {
	accounts Accounts
	resolver identity.Resolver
	tokens   TokenIssuer
}

// New wires a Service over the directory and token issuer.
func New(accounts Accounts, resolver identity.Resolver, tokens TokenIssuer) Service {
	return &service{accounts: accounts, resolver: resolver, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password, pictureURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.accounts.Signup(ctx, username, password, pictureURL)
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	canonical, err := s.accounts.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(canonical)
}

func (s *service) Get(ctx context.Context, username string) (identity.Profile, error) {
	if err := ctx.Err(); err != nil {
		return identity.Profile{}, err
	}
	return s.resolver.LookupByUsername(ctx, username)
}
