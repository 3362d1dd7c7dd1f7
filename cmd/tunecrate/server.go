package main

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tunecrate/internal/app/playlists"
	"tunecrate/internal/app/profiles"
	"tunecrate/internal/app/songs"
	"tunecrate/internal/httpapi"
	"tunecrate/internal/httpmw"
	"tunecrate/internal/identity"
	"tunecrate/internal/searchagg"
	"tunecrate/internal/store"
)

const (
	sessionTTL      = 24 * time.Hour
	profileCacheTTL = 5 * time.Minute
)

func newHTTPHandler(cfg Config, dataStore *store.Store, directory *identity.Directory) http.Handler {
	tokens := identity.NewTokens([]byte(cfg.JWTSecret), sessionTTL)
	resolver := newResolver(cfg, directory)

	profileSvc := profiles.New(directory, resolver, tokens)
	songSvc := songs.New(dataStore)
	playlistSvc := playlists.New(dataStore)
	searchSvc := searchagg.New(dataStore, dataStore, resolver)

	handler := httpapi.New(profileSvc, songSvc, playlistSvc, searchSvc, tokens).Routes()

	handler = httpmw.CORS(cfg.AllowedOrigins)(handler)
	handler = httpmw.Recovery()(handler)
	handler = httpmw.RequestLogging()(handler)
	return handler
}

func newResolver(cfg Config, directory *identity.Directory) identity.Resolver {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR not set, profile cache disabled")
		return directory
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	log.Info().Str("addr", cfg.RedisAddr).Msg("profile cache enabled")
	return identity.NewCachedResolver(directory, rdb, profileCacheTTL)
}
