package query

// SongListParams are the validated query parameters of GET /api/songs.
// A viewerID of 0 means the request is anonymous.
type SongListParams struct {
	Famous   *bool  // is_famous equality, when present
	Genre    string // case-insensitive substring on genre
	Uploader string // the literal "me" restricts to the viewer's uploads
	Search   string // free text over title/artist/album/genre
}

// Predicate composes the song filters conjunctively. The free-text search
// is an internal disjunction across four fields, AND'd with the rest.
func (p SongListParams) Predicate(viewerID int64) Predicate {
	var ps []Predicate
	if p.Famous != nil {
		ps = append(ps, Eq("is_famous", *p.Famous))
	}
	if p.Genre != "" {
		ps = append(ps, ContainsFold("genre", p.Genre))
	}
	if p.Uploader == "me" && viewerID != 0 {
		ps = append(ps, Eq("uploader_id", viewerID))
	}
	if p.Search != "" {
		ps = append(ps, Or(
			ContainsFold("title", p.Search),
			ContainsFold("artist", p.Search),
			ContainsFold("album", p.Search),
			ContainsFold("genre", p.Search),
		))
	}
	return And(ps...)
}

// PlaylistListParams are the validated query parameters of
// GET /api/playlists.
type PlaylistListParams struct {
	Search string // free text over name/description
}

// Predicate builds the visibility set (public ∪ owned-by-viewer) as a
// single predicate so a private playlist matching the search appears
// exactly once, then narrows it by the search terms.
func (p PlaylistListParams) Predicate(viewerID int64) Predicate {
	visible := Or(Eq("is_public", true), Eq("user_id", viewerID))
	if viewerID == 0 {
		visible = Eq("is_public", true)
	}
	if p.Search == "" {
		return visible
	}
	return And(visible, Or(
		ContainsFold("name", p.Search),
		ContainsFold("description", p.Search),
	))
}
