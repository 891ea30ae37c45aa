package query

import "testing"

func songRow(title, artist, album, genre string, famous bool, uploaderID int64) map[string]any {
	row := map[string]any{
		"title": title, "artist": artist, "album": album, "genre": genre,
		"is_famous": famous,
	}
	if uploaderID != 0 {
		row["uploader_id"] = uploaderID
	}
	return row
}

func TestSongListParams_NoFiltersMatchesEverything(t *testing.T) {
	if pred := (SongListParams{}).Predicate(0); pred != nil {
		t.Errorf("expected nil predicate, got %v", pred)
	}
}

func TestSongListParams_SearchSpansFourFields(t *testing.T) {
	pred := SongListParams{Search: "rock"}.Predicate(0)

	rows := map[string]map[string]any{
		"title":  songRow("Rock Anthem", "A", "B", "pop", false, 0),
		"artist": songRow("X", "The Rockers", "B", "pop", false, 0),
		"album":  songRow("X", "A", "Classic Rock Hits", "pop", false, 0),
		"genre":  songRow("X", "A", "B", "Rock", false, 0),
	}
	for field, row := range rows {
		if !pred.Match(row) {
			t.Errorf("search should match via %s", field)
		}
	}
	if pred.Match(songRow("X", "A", "B", "pop", false, 0)) {
		t.Error("search matched a row with no occurrence")
	}
}

func TestSongListParams_FiltersCompose(t *testing.T) {
	famous := true
	pred := SongListParams{Famous: &famous, Genre: "jazz", Search: "blue"}.Predicate(0)

	if !pred.Match(songRow("Kind of Blue", "Miles Davis", "", "Jazz", true, 0)) {
		t.Error("expected composed filters to match")
	}
	// famous filter fails
	if pred.Match(songRow("Kind of Blue", "Miles Davis", "", "Jazz", false, 0)) {
		t.Error("is_famous filter should exclude non-famous rows")
	}
	// search fails even though famous+genre hold
	if pred.Match(songRow("Giant Steps", "John Coltrane", "", "Jazz", true, 0)) {
		t.Error("search term should still restrict the result")
	}
}

func TestSongListParams_UploaderMe(t *testing.T) {
	mine := songRow("T", "A", "", "", false, 42)
	theirs := songRow("T", "A", "", "", false, 7)

	pred := SongListParams{Uploader: "me"}.Predicate(42)
	if !pred.Match(mine) || pred.Match(theirs) {
		t.Error("uploader=me should restrict to the viewer's songs")
	}

	// Anonymous viewers get no uploader restriction.
	if pred := (SongListParams{Uploader: "me"}).Predicate(0); pred != nil {
		t.Errorf("anonymous uploader=me should be ignored, got %v", pred)
	}

	// Other uploader values are ignored outright.
	if pred := (SongListParams{Uploader: "41"}).Predicate(42); pred != nil {
		t.Errorf("uploader=41 should be ignored, got %v", pred)
	}
}

func playlistRow(name, description string, public bool, userID int64) map[string]any {
	return map[string]any{
		"name": name, "description": description,
		"is_public": public, "user_id": userID,
	}
}

func TestPlaylistListParams_Visibility(t *testing.T) {
	pred := PlaylistListParams{}.Predicate(5)

	if !pred.Match(playlistRow("road trip", "", true, 9)) {
		t.Error("public playlist should be visible")
	}
	if !pred.Match(playlistRow("secret", "", false, 5)) {
		t.Error("own private playlist should be visible")
	}
	if pred.Match(playlistRow("secret", "", false, 9)) {
		t.Error("foreign private playlist should be hidden")
	}
}

func TestPlaylistListParams_SearchAppliesToUnion(t *testing.T) {
	pred := PlaylistListParams{Search: "chill"}.Predicate(5)

	// A private playlist owned by the viewer that matches the search is in.
	if !pred.Match(playlistRow("Chill Mix", "", false, 5)) {
		t.Error("own private playlist matching search should be visible")
	}
	// A public playlist that doesn't match the search is out.
	if pred.Match(playlistRow("Workout", "high energy", true, 9)) {
		t.Error("search should restrict public playlists too")
	}
	// Description matches count.
	if !pred.Match(playlistRow("Evenings", "chill tracks for later", true, 9)) {
		t.Error("search should match on description")
	}
}
