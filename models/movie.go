package models

type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Actors      []string `json:"actors,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

type MoviesResponse struct {
	Movies []Movie `json:"movies"`
}

type MovieResponse struct {
	Movie *Movie `json:"movie"`
}
