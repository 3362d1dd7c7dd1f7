package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// searchLimit bounds free-text username searches.
const searchLimit = 10

// defaultAvatarURL is used when a signup supplies no picture.
const defaultAvatarURL = "/avatars/default.png"

// dummyPasswordHash keeps login timing uniform for unknown usernames.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

// Directory is the Postgres-backed profile directory.
type Directory struct {
	db *sql.DB
}

// NewDirectory sets up a Directory using the provided database handle.
func NewDirectory(db *sql.DB) *Directory {
	return &Directory{db: db}
}

// Signup registers a new profile.
func (d *Directory) Signup(ctx context.Context, username, password, pictureURL string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	if pictureURL == "" {
		pictureURL = defaultAvatarURL
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := d.db.ExecContext(ctx, `
		INSERT INTO profiles (username, password_hash, profile_image_url)
		VALUES ($1, $2, $3)
	`, username, hash, pictureURL); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

// Authenticate validates credentials and returns the canonical username.
func (d *Directory) Authenticate(ctx context.Context, username, password string) (string, error) {
	var (
		canonical string
		hash      []byte
	)

	err := d.db.QueryRowContext(ctx, `
		SELECT username, password_hash
		FROM profiles
		WHERE username = $1
	`, strings.TrimSpace(username)).Scan(&canonical, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup profile: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return canonical, nil
}

// LookupByUsername implements Resolver.
func (d *Directory) LookupByUsername(ctx context.Context, username string) (Profile, error) {
	var profile Profile
	err := d.db.QueryRowContext(ctx, `
		SELECT username, profile_image_url
		FROM profiles
		WHERE username = $1
	`, username).Scan(&profile.Username, &profile.ProfileImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("lookup profile: %w", err)
	}
	return profile, nil
}

// SearchUsernames implements Resolver.
func (d *Directory) SearchUsernames(ctx context.Context, text string) ([]Profile, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT username, profile_image_url
		FROM profiles
		WHERE username ILIKE $1
		ORDER BY username ASC
		LIMIT $2
	`, "%"+text+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]Profile, 0)
	for rows.Next() {
		var profile Profile
		if err := rows.Scan(&profile.Username, &profile.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}
