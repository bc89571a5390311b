package utils_test

import (
	"errors"
	"testing"

	"dochub/internal/utils"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantErr    error
		wantLimit  int
		wantOffset int
	}{
		{name: "both empty", limit: "", offset: ""},
		{name: "valid values", limit: "4", offset: "3", wantLimit: 4, wantOffset: 3},
		{name: "negative limit", limit: "-2", wantErr: utils.ErrBadLimit},
		{name: "zero limit", limit: "0", wantErr: utils.ErrBadLimit},
		{name: "non numeric limit", limit: "aaa", wantErr: utils.ErrBadLimit},
		{name: "negative offset", limit: "2", offset: "-2", wantErr: utils.ErrBadOffset},
		{name: "non numeric offset", limit: "2", offset: "x", wantErr: utils.ErrBadOffset},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := utils.ParsePagination(tc.limit, tc.offset)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want error %v, got %v", tc.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if p.Limit != tc.wantLimit || p.Offset != tc.wantOffset {
				t.Fatalf("got %+v, want limit=%d offset=%d", p, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	// 7 rows with a page size of 4 means two pages; offset 3 still
	// falls inside the first page.
	info := utils.NewPageInfo(7, utils.Pagination{Limit: 4, Offset: 3})

	if info.PageCount != 2 {
		t.Fatalf("page_count = %d, want 2", info.PageCount)
	}

	if info.Page != 1 {
		t.Fatalf("Page = %d, want 1", info.Page)
	}

	if info.PageSize != 4 || info.TotalCount != 7 {
		t.Fatalf("unexpected page info %+v", info)
	}
}

func TestNewPageInfoWithoutLimit(t *testing.T) {
	info := utils.NewPageInfo(7, utils.Pagination{})

	if info.PageCount != 1 || info.Page != 1 || info.PageSize != 7 || info.TotalCount != 7 {
		t.Fatalf("unexpected page info %+v", info)
	}
}

func TestSearchTerms(t *testing.T) {
	terms := utils.SearchTerms("  alpha   beta\tgamma ")

	if len(terms) != 3 || terms[0] != "alpha" || terms[1] != "beta" || terms[2] != "gamma" {
		t.Fatalf("unexpected terms %v", terms)
	}

	if got := utils.SearchTerms("   "); len(got) != 0 {
		t.Fatalf("blank query should yield no terms, got %v", got)
	}
}
