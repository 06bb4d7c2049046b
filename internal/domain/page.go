package domain

import "strings"

// Pagination selects one page of a listing. Sort names a column, prefixed with "-" for
// descending order.
type Pagination struct {
	Page     int
	PageSize int
	Term     string
	Sort     string
}

func (p Pagination) descending() bool {
	return strings.HasPrefix(p.Sort, "-")
}

// SortColumn is Sort without its direction prefix.
func (p Pagination) SortColumn() string {
	if p.descending() {
		return p.Sort[1:]
	}

	return p.Sort
}

func (p Pagination) SortDirection() string {
	if p.descending() {
		return "DESC"
	}

	return "ASC"
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset is the number of rows before the first row of the page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}

	return (p.Page - 1) * p.PageSize
}

// Metadata describes where a page sits in the whole result set.
type Metadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

// NewMetadata reports LastPage as 0 for an empty result set.
func NewMetadata(totalRecords, page, pageSize int) *Metadata {
	lastPage := 0
	if pageSize > 0 {
		lastPage = totalRecords / pageSize
		if totalRecords%pageSize != 0 {
			lastPage++
		}
	}

	return &Metadata{
		CurrentPage:  page,
		FirstPage:    1,
		LastPage:     lastPage,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
	}
}
