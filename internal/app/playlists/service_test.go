package playlists

import (
	"context"
	"errors"
	"testing"

	"tunecrate/internal/store"
)

type stubStore struct {
	created      *store.Playlist
	linkedSong   *store.SongKey
	linkedTarget *store.PlaylistKey
}

func (s *stubStore) CreatePlaylist(ctx context.Context, playlist store.Playlist) error {
	s.created = &playlist
	return nil
}

func (s *stubStore) PlaylistByKey(ctx context.Context, key store.PlaylistKey) (store.Playlist, error) {
	return store.Playlist{Name: key.Name, AuthorName: key.AuthorName}, nil
}

func (s *stubStore) PlaylistsByAuthor(ctx context.Context, authorName string) ([]store.Playlist, error) {
	return []store.Playlist{}, nil
}

func (s *stubStore) LinkSong(ctx context.Context, song store.SongKey, target store.PlaylistKey) error {
	s.linkedSong = &song
	s.linkedTarget = &target
	return nil
}

func TestCreateAnchorsAuthorToActingUser(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	err := svc.Create(context.Background(), CreateInput{
		Name:       "Chill",
		Genre:      "Lo-fi",
		PictureURL: "https://images.example.com/chill.png",
		Tags:       []string{"night"},
	}, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if st.created == nil || st.created.AuthorName != "alice" {
		t.Fatalf("expected author alice, got %#v", st.created)
	}
}

func TestCreateAllowsEmptyPicture(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	if err := svc.Create(context.Background(), CreateInput{Name: "Chill"}, "alice"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if st.created == nil {
		t.Fatal("expected store call")
	}
}

func TestCreateRejectsNonImagePicture(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	err := svc.Create(context.Background(), CreateInput{
		Name:       "Chill",
		PictureURL: "https://example.com/page.html",
	}, "alice")
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if st.created != nil {
		t.Fatal("store must not be called for invalid input")
	}
}

func TestCreateRequiresAuthentication(t *testing.T) {
	svc := New(&stubStore{})

	err := svc.Create(context.Background(), CreateInput{Name: "Chill"}, "")
	if !errors.Is(err, store.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAddSongTargetsActingUsersPlaylist(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	song := store.SongKey{Name: "Lo-fi Beat", AuthorName: "alice", PlaylistName: "Chill"}
	if err := svc.AddSong(context.Background(), song, "Mine", "bob"); err != nil {
		t.Fatalf("AddSong: %v", err)
	}

	if st.linkedSong == nil || *st.linkedSong != song {
		t.Fatalf("unexpected linked song: %#v", st.linkedSong)
	}
	want := store.PlaylistKey{Name: "Mine", AuthorName: "bob"}
	if st.linkedTarget == nil || *st.linkedTarget != want {
		t.Fatalf("expected target %#v, got %#v", want, st.linkedTarget)
	}
}

func TestAddSongRequiresFullKey(t *testing.T) {
	st := &stubStore{}
	svc := New(st)

	err := svc.AddSong(context.Background(),
		store.SongKey{Name: "Lo-fi Beat", AuthorName: "alice"}, "Mine", "bob")
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if st.linkedSong != nil {
		t.Fatal("store must not be called for partial key")
	}
}
