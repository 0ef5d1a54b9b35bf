package thalamus

// Track is the display form of a recommended or playing track, assembled
// from the metadata collaborators; the engine itself only ever sees IDs and
// feature vectors.
type Track struct {
	// ID is the Spotify track ID.
	// Example: 6rqhFgbbKwnb9MLmUQDhG6
	ID string `json:"id"`
	// Name is the track title.
	Name string `json:"name"`
	// Artists are the credited artist names, in display order.
	Artists []string `json:"artists"`
	// AlbumArt is a cover image URL, when one is available.
	AlbumArt string `json:"album_art,omitempty"`

	ReleaseDate string   `json:"release_date,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}
