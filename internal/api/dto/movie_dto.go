package dto

// MoviePageQuery is the common paging query of the movie endpoints.
type MoviePageQuery struct {
	Page int `query:"page"`
}

// DiscoverQuery is the query of GET /movies/discover.
type DiscoverQuery struct {
	Genre int64 `query:"genre"`
	Page  int   `query:"page"`
}

// SearchQuery is the query of GET /movies/search.
type SearchQuery struct {
	Query string `query:"query"`
	Page  int    `query:"page"`
}

// PageOrDefault returns page, or 1 when it was not supplied.
func PageOrDefault(page int) int {
	if page == 0 {
		return 1
	}
	return page
}
