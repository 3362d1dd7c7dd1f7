package httpapi

import (
	"encoding/json"
	"net/http"

	"tunecrate/internal/app/playlists"
	"tunecrate/internal/store"
)

type linkSongRequest struct {
	SongName         string `json:"songName"`
	SongAuthorName   string `json:"songAuthorName"`
	SongPlaylistName string `json:"songPlaylistName"`
	PlaylistName     string `json:"playlistName"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	acting, err := s.acting(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req playlists.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.playlists.Create(ctx, req, acting); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLinkSong(w http.ResponseWriter, r *http.Request) {
	acting, err := s.acting(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req linkSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	song := store.SongKey{
		Name:         req.SongName,
		AuthorName:   req.SongAuthorName,
		PlaylistName: req.SongPlaylistName,
	}
	if err := s.playlists.AddSong(ctx, song, req.PlaylistName, acting); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	playlist, err := s.playlists.Get(ctx, store.PlaylistKey{
		Name:       r.PathValue("playlist"),
		AuthorName: r.PathValue("username"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	list, err := s.playlists.ByAuthor(ctx, r.PathValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Playlists []store.Playlist `json:"playlists"`
	}{Playlists: list})
}
