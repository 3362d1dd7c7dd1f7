package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tunecrate/internal/app/playlists"
	"tunecrate/internal/app/songs"
	"tunecrate/internal/identity"
	"tunecrate/internal/searchagg"
	"tunecrate/internal/store"
)

// defaultTimeout bounds each request's external calls. Collaborator timeouts
// surface as 503, never as a data-integrity error.
const defaultTimeout = 5 * time.Second

// ProfileService captures the profile-facing operations needed by the HTTP handlers.
type ProfileService interface {
	Signup(ctx context.Context, username, password, pictureURL string) error
	Login(ctx context.Context, username, password string) (string, error)
	Get(ctx context.Context, username string) (identity.Profile, error)
}

// SongService coordinates song-level operations.
type SongService interface {
	Create(ctx context.Context, input songs.CreateInput, acting string) error
	Update(ctx context.Context, upd songs.UpdateInput, currentSongName, currentPlaylistName, acting string) error
	Delete(ctx context.Context, name, playlistName, acting string) error
	Get(ctx context.Context, key store.SongKey) (store.Song, error)
	ByPlaylist(ctx context.Context, authorName, playlistName string) ([]store.Song, error)
	Recent(ctx context.Context) ([]store.Song, error)
}

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Create(ctx context.Context, input playlists.CreateInput, acting string) error
	Get(ctx context.Context, key store.PlaylistKey) (store.Playlist, error)
	ByAuthor(ctx context.Context, authorName string) ([]store.Playlist, error)
	AddSong(ctx context.Context, song store.SongKey, playlistName, acting string) error
}

// SearchService provides the unified search fan-out.
type SearchService interface {
	FilteredItems(ctx context.Context, name string, routeCtx url.Values) ([]searchagg.FilterItem, error)
}

// TokenVerifier resolves a bearer token to the acting username.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	profiles  ProfileService
	songs     SongService
	playlists PlaylistService
	search    SearchService
	tokens    TokenVerifier
	timeout   time.Duration
}

// New configures a Server with the given services.
func New(profiles ProfileService, songs SongService, playlists PlaylistService, search SearchService, tokens TokenVerifier) *Server {
	return &Server{
		profiles:  profiles,
		songs:     songs,
		playlists: playlists,
		search:    search,
		tokens:    tokens,
		timeout:   defaultTimeout,
	}
}

// Routes exposes the HTTP handlers for the catalog.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/v1/search", s.handleSearch)

	mux.HandleFunc("GET /api/v1/songs/recent", s.handleRecentSongs)
	mux.HandleFunc("POST /api/v1/songs", s.handleCreateSong)
	mux.HandleFunc("PUT /api/v1/songs", s.handleUpdateSong)
	mux.HandleFunc("DELETE /api/v1/songs", s.handleDeleteSong)

	mux.HandleFunc("POST /api/v1/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("POST /api/v1/playlists/link", s.handleLinkSong)

	mux.HandleFunc("GET /api/v1/profiles/{username}", s.handleGetProfile)
	mux.HandleFunc("GET /api/v1/profiles/{username}/playlists", s.handleListPlaylists)
	mux.HandleFunc("GET /api/v1/profiles/{username}/playlists/{playlist}", s.handleGetPlaylist)
	mux.HandleFunc("GET /api/v1/profiles/{username}/playlists/{playlist}/songs", s.handlePlaylistSongs)
	mux.HandleFunc("GET /api/v1/profiles/{username}/playlists/{playlist}/songs/{song}", s.handleGetSong)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// requestContext bounds the handler's downstream calls.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

// acting resolves the bearer token to the authenticated username. The acting
// identity is only ever sourced here, never from request payloads.
func (s *Server) acting(r *http.Request) (string, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", identity.ErrUnauthorized
	}
	return s.tokens.Verify(token)
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps error kinds to HTTP statuses and emits the human message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrUnauthorized),
		errors.Is(err, identity.ErrUnauthorized),
		errors.Is(err, identity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrPlaylistNotFound),
		errors.Is(err, identity.ErrProfileNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrSongExists),
		errors.Is(err, store.ErrPlaylistExists),
		errors.Is(err, store.ErrAlreadyLinked),
		errors.Is(err, identity.ErrProfileExists):
		status = http.StatusConflict
	case errors.Is(err, searchagg.ErrSourceFailed),
		errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
