package utils

import "movie-collection/internal/models"

// PaginationMeta represents pagination metadata
type PaginationMeta struct {
	CurrentPage  int    `json:"current_page"`
	TotalPages   int    `json:"total_pages"`
	TotalItems   int64  `json:"total_items"`
	ItemsPerPage int    `json:"items_per_page"`
	HasNextPage  bool   `json:"has_next_page"`
	HasPrevPage  bool   `json:"has_prev_page"`
	SortBy       string `json:"sort_by,omitempty"`
}

// SearchPaginationMeta is the shorter pagination block returned by search.
type SearchPaginationMeta struct {
	CurrentPage    int  `json:"current_page"`
	TotalPages     int  `json:"total_pages"`
	ResultsPerPage int  `json:"results_per_page"`
	HasMoreResults bool `json:"has_more_results"`
}

// CreatePaginationMeta creates pagination metadata
func CreatePaginationMeta(p models.PageRequest, total int64) PaginationMeta {
	return PaginationMeta{
		CurrentPage:  p.Page,
		TotalPages:   p.TotalPages(total),
		TotalItems:   total,
		ItemsPerPage: p.Limit,
		HasNextPage:  p.HasNext(total),
		HasPrevPage:  p.Page > 1,
	}
}

func CreateSearchPaginationMeta(p models.PageRequest, total int64) SearchPaginationMeta {
	return SearchPaginationMeta{
		CurrentPage:    p.Page,
		TotalPages:     p.TotalPages(total),
		ResultsPerPage: p.Limit,
		HasMoreResults: p.HasNext(total),
	}
}
