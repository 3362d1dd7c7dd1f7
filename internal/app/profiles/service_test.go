package profiles

import (
	"context"
	"errors"
	"testing"

	"tunecrate/internal/identity"
)

type stubAccounts struct {
	signupErr error
	authErr   error
	canonical string
}

func (s *stubAccounts) Signup(ctx context.Context, username, password, pictureURL string) error {
	return s.signupErr
}

func (s *stubAccounts) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.authErr != nil {
		return "", s.authErr
	}
	return s.canonical, nil
}

type stubResolver struct {
	profile identity.Profile
	err     error
}

func (s *stubResolver) LookupByUsername(ctx context.Context, username string) (identity.Profile, error) {
	if s.err != nil {
		return identity.Profile{}, s.err
	}
	return s.profile, nil
}

func (s *stubResolver) SearchUsernames(ctx context.Context, text string) ([]identity.Profile, error) {
	return nil, nil
}

type stubIssuer struct {
	issuedFor string
}

func (s *stubIssuer) Issue(username string) (string, error) {
	s.issuedFor = username
	return "signed-token", nil
}

func TestLoginIssuesTokenForCanonicalUsername(t *testing.T) {
	issuer := &stubIssuer{}
	svc := New(&stubAccounts{canonical: "Alice"}, &stubResolver{}, issuer)

	token, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "signed-token" {
		t.Fatalf("unexpected token %q", token)
	}
	if issuer.issuedFor != "Alice" {
		t.Fatalf("expected token for canonical username, got %q", issuer.issuedFor)
	}
}

func TestLoginBadCredentialsSkipsTokenIssue(t *testing.T) {
	issuer := &stubIssuer{}
	svc := New(&stubAccounts{authErr: identity.ErrInvalidCredentials}, &stubResolver{}, issuer)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if issuer.issuedFor != "" {
		t.Fatal("token must not be issued for failed login")
	}
}

func TestGetPropagatesNotFound(t *testing.T) {
	svc := New(&stubAccounts{}, &stubResolver{err: identity.ErrProfileNotFound}, &stubIssuer{})

	_, err := svc.Get(context.Background(), "ghost")
	if !errors.Is(err, identity.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
