// Package queries contains the read side of the cargo service: paginated views
// read straight from the database without loading aggregates.
package queries

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cargo/internal/pkg/errs"
)

const (
	DefaultPage   = 0
	DefaultSize   = 10
	MaxSize       = 100
	DefaultSortBy = "id"

	// MaxPage keeps page*size inside int32 for any accepted size.
	MaxPage = math.MaxInt32 / MaxSize
)

// sortColumns whitelists the columns a client may sort by. Values are spliced
// into ORDER BY, so nothing outside this map may reach the SQL.
func sortColumns() map[string]string {
	return map[string]string{
		"id":         "c.id",
		"created_at": "c.created_at",
		"createdAt":  "c.created_at",
		"updated_at": "c.updated_at",
		"updatedAt":  "c.updated_at",
		"status":     "c.status",
	}
}

// Pagination selects one page of a listing. Pages are zero based.
type Pagination struct {
	page   int
	size   int
	sortBy string
}

// NewPagination validates page, size and sortBy. An empty sortBy means DefaultSortBy.
func NewPagination(page, size int, sortBy string) (Pagination, error) {
	var pageErr, sizeErr, sortErr error

	if page < 0 || page > MaxPage {
		pageErr = errs.NewValueIsOutOfRangeError("page", page, 0, MaxPage)
	}
	if size < 1 || size > MaxSize {
		sizeErr = errs.NewValueIsOutOfRangeError("size", size, 1, MaxSize)
	}

	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if _, ok := sortColumns()[sortBy]; !ok {
		sortErr = errs.NewValueIsInvalidErrorWithCause("sortBy", fmt.Errorf("cannot sort by %q", sortBy))
	}

	if err := errors.Join(pageErr, sizeErr, sortErr); err != nil {
		return Pagination{}, err
	}

	return Pagination{page: page, size: size, sortBy: sortBy}, nil
}

// DefaultPagination returns the first page of DefaultSize items sorted by id.
func DefaultPagination() Pagination {
	return Pagination{page: DefaultPage, size: DefaultSize, sortBy: DefaultSortBy}
}

func (p Pagination) Page() int      { return p.page }
func (p Pagination) Size() int      { return p.size }
func (p Pagination) SortBy() string { return p.sortBy }

func (p Pagination) offset() int {
	return p.page * p.size
}

func (p Pagination) orderColumn() string {
	if column, ok := sortColumns()[p.sortBy]; ok {
		return column
	}
	return "c.id"
}

func (p Pagination) isZero() bool {
	return p.size == 0
}

// PageMeta describes where a page sits in the full result set.
type PageMeta struct {
	CurrentPage int
	TotalItems  int64
	PageSize    int
	IsFirst     bool
	IsLast      bool
}

func newPageMeta(p Pagination, total int64) PageMeta {
	totalPages := (total + int64(p.size) - 1) / int64(p.size)

	return PageMeta{
		CurrentPage: p.page,
		TotalItems:  total,
		PageSize:    p.size,
		IsFirst:     p.page == 0,
		IsLast:      int64(p.page+1) >= totalPages,
	}
}
