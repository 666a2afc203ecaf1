package domain

// Movie is the catalog view of a title served by the metadata provider.
type Movie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	BackdropURL string   `json:"backdropUrl,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Rating      float64  `json:"rating"`
	Genres      []string `json:"genres"`
}

// MoviePage is a page of movie results.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
}

// Genre is a movie genre known to the provider.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
