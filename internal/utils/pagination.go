package utils

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrBadLimit  = errors.New("Only positive number is allowed for limit value")
	ErrBadOffset = errors.New("Only positive number is allowed for offset value")
)

// Pagination carries the parsed limit/offset of a list request.
// Limit == 0 means the caller did not ask for a page size and the full
// result set is returned as one page.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination validates the raw query values. An empty value is
// allowed; anything else must parse to a positive integer.
func ParsePagination(rawLimit, rawOffset string) (Pagination, error) {
	var p Pagination

	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 {
			return Pagination{}, ErrBadLimit
		}
		p.Limit = n
	}

	if rawOffset != "" {
		n, err := strconv.Atoi(rawOffset)
		if err != nil || n <= 0 {
			return Pagination{}, ErrBadOffset
		}
		p.Offset = n
	}

	return p, nil
}

// PageInfo is the pagination block of list responses. The Page key is
// capitalised on the wire; clients already depend on it.
type PageInfo struct {
	PageCount  int `json:"page_count"`
	Page       int `json:"Page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

func NewPageInfo(total int, p Pagination) PageInfo {
	if p.Limit <= 0 {
		return PageInfo{
			PageCount:  1,
			Page:       1,
			PageSize:   total,
			TotalCount: total,
		}
	}

	pageCount := (total + p.Limit - 1) / p.Limit
	if pageCount < 1 {
		pageCount = 1
	}

	return PageInfo{
		PageCount:  pageCount,
		Page:       p.Offset/p.Limit + 1,
		PageSize:   p.Limit,
		TotalCount: total,
	}
}

// SearchTerms splits a raw query into whitespace-separated terms.
func SearchTerms(query string) []string {
	return strings.Fields(query)
}
