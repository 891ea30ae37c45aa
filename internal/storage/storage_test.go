package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root)

	key := SongKey("track.mp3")
	ref, err := store.Save(key, strings.NewReader("audio bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ref != key {
		t.Errorf("reference %q should equal the key %q", ref, key)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("got %q", data)
	}
}

func TestKeys_StripDirectoriesFromClientFilenames(t *testing.T) {
	key := SongKey("../../etc/passwd")
	if strings.Contains(key, "..") {
		t.Errorf("key keeps traversal segments: %q", key)
	}
	if !strings.HasPrefix(key, "songs/") || !strings.HasSuffix(key, "/passwd") {
		t.Errorf("unexpected key shape: %q", key)
	}

	if k := CoverKey("art.png"); !strings.HasPrefix(k, "covers/") || !strings.HasSuffix(k, "/art.png") {
		t.Errorf("cover key shape: %q", k)
	}
	if k := PlaylistCoverKey("art.png"); !strings.HasPrefix(k, "playlist_covers/") {
		t.Errorf("playlist cover key shape: %q", k)
	}
}

func TestKeys_AreUniquePerCall(t *testing.T) {
	if SongKey("a.mp3") == SongKey("a.mp3") {
		t.Error("two uploads of the same filename must not collide")
	}
}
