package models

import "strings"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps page to >= 1 and limit to [1, MaxPageLimit].
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit); zero when there is nothing to show.
func (p PageRequest) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

func (p PageRequest) HasNext(total int64) bool {
	return p.Page < p.TotalPages(total)
}

type MovieSortField string

const (
	SortByCreatedAt     MovieSortField = "created_at"
	SortByTitle         MovieSortField = "title"
	SortByYear          MovieSortField = "year"
	SortByAverageRating MovieSortField = "average_rating"
)

// ParseMovieSortField falls back to created_at for anything outside the allow-list.
func ParseMovieSortField(s string) MovieSortField {
	switch f := MovieSortField(strings.TrimSpace(s)); f {
	case SortByCreatedAt, SortByTitle, SortByYear, SortByAverageRating:
		return f
	}
	return SortByCreatedAt
}

// Column maps the field onto a fixed SQL expression.
func (f MovieSortField) Column() string {
	switch f {
	case SortByTitle:
		return "movies.title"
	case SortByYear:
		return "movies.year"
	case SortByAverageRating:
		return "average_rating"
	default:
		return "movies.created_at"
	}
}

type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// ParseSortOrder accepts ASC or DESC exactly and defaults to DESC.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

func (o SortOrder) Desc() bool {
	return o != OrderAsc
}

type MovieListQuery struct {
	PageRequest
	SortBy MovieSortField
	Order  SortOrder
}

// SearchFilter holds the optional, AND-combined search criteria.
type SearchFilter struct {
	Query string
	Genre string
	Year  string
}

func (f SearchFilter) Empty() bool {
	return f.Query == "" && f.Genre == "" && f.Year == ""
}

type ReviewSort string

const (
	ReviewSortNewest  ReviewSort = "newest"
	ReviewSortOldest  ReviewSort = "oldest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
)

func ParseReviewSort(s string) ReviewSort {
	switch r := ReviewSort(strings.TrimSpace(s)); r {
	case ReviewSortOldest, ReviewSortHighest, ReviewSortLowest:
		return r
	}
	return ReviewSortNewest
}

// OrderClause returns the ORDER BY expression for the sort mode.
func (r ReviewSort) OrderClause() string {
	switch r {
	case ReviewSortOldest:
		return "reviews.created_at ASC, reviews.id ASC"
	case ReviewSortHighest:
		return "reviews.rating DESC, reviews.created_at DESC"
	case ReviewSortLowest:
		return "reviews.rating ASC, reviews.created_at DESC"
	default:
		return "reviews.created_at DESC, reviews.id DESC"
	}
}
