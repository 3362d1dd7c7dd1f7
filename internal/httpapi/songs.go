package httpapi

import (
	"encoding/json"
	"net/http"

	"tunecrate/internal/app/songs"
	"tunecrate/internal/store"
)

type updateSongRequest struct {
	NewValues           songs.UpdateInput `json:"newValues"`
	CurrentSongName     string            `json:"currentSongName"`
	CurrentPlaylistName string            `json:"currentPlaylistName"`
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	acting, err := s.acting(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req songs.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.songs.Create(ctx, req, acting); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	acting, err := s.acting(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.songs.Update(ctx, req.NewValues, req.CurrentSongName, req.CurrentPlaylistName, acting); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	acting, err := s.acting(r)
	if err != nil {
		writeError(w, err)
		return
	}

	query := r.URL.Query()
	name := query.Get("name")
	playlistName := query.Get("playlist")

	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.songs.Delete(ctx, name, playlistName, acting); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	key := store.SongKey{
		Name:         r.PathValue("song"),
		AuthorName:   r.PathValue("username"),
		PlaylistName: r.PathValue("playlist"),
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	song, err := s.songs.Get(ctx, key)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handlePlaylistSongs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	list, err := s.songs.ByPlaylist(ctx, r.PathValue("username"), r.PathValue("playlist"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []store.Song `json:"songs"`
	}{Songs: list})
}

func (s *Server) handleRecentSongs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	list, err := s.songs.Recent(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []store.Song `json:"songs"`
	}{Songs: list})
}
