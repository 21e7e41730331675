package pagination

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"
	"github.com/Qoxxoraliyev/employee-management/internal/shared/response"
	"gorm.io/gorm"
)

const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

var (
	ErrInvalidPageRequest = apperror.New(
		apperror.CodeInvalidInput,
		"Page must be >= 0 and size must be > 0",
		http.StatusBadRequest,
	)
	ErrInvalidSortField = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown sort field",
		http.StatusBadRequest,
	)
	ErrInvalidSortDirection = apperror.New(
		apperror.CodeInvalidInput,
		`Sort direction must be "asc" or "desc"`,
		http.StatusBadRequest,
	)
)

// Request is a validated page request. Page is zero-based.
type Request struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// NewRequest validates the raw page parameters against the set of sort
// fields the listed entity recognizes. Unknown fields and directions are
// hard errors, never silent defaults.
func NewRequest(page, size int, sortBy, direction string, sortable map[string]bool) (Request, error) {
	if page < 0 || size <= 0 {
		return Request{}, ErrInvalidPageRequest
	}

	if !sortable[sortBy] {
		return Request{}, ErrInvalidSortField
	}

	dir := strings.ToLower(direction)
	if dir != DirectionAsc && dir != DirectionDesc {
		return Request{}, ErrInvalidSortDirection
	}

	return Request{
		Page:      page,
		Size:      size,
		SortBy:    sortBy,
		Direction: dir,
	}, nil
}

// Offset returns the row offset of the requested page.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// OrderClause renders the request as a SQL order expression. SortBy has
// already been validated against a whitelist, so it is safe to splice.
func (r Request) OrderClause() string {
	return r.SortBy + " " + r.Direction
}

// Scope applies offset, limit and ordering to a gorm query.
func (r Request) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(r.OrderClause()).Offset(r.Offset()).Limit(r.Size)
	}
}

// Page is one slice of an ordered listing plus its metadata.
type Page[T any] struct {
	Content       []T
	PageIndex     int
	Size          int
	TotalElements int64
	TotalPages    int
}

// Meta converts the page into the shared response metadata.
func (p Page[T]) Meta() response.PaginationMeta {
	return response.NewPaginationMeta(p.TotalElements, p.PageIndex, p.Size)
}

// NewPage wraps content fetched by a store-side query together with the
// total count of the unpaged listing.
func NewPage[T any](content []T, req Request, total int64) Page[T] {
	meta := response.NewPaginationMeta(total, req.Page, req.Size)
	return Page[T]{
		Content:       content,
		PageIndex:     req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    meta.TotalPages,
	}
}

// PageOf pages an in-memory collection. A page index past the last page
// yields an empty (non-nil) content slice, not an error.
func PageOf[T any](items []T, req Request, less func(a, b T) bool) Page[T] {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		if req.Direction == DirectionDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	start := req.Offset()
	end := start + req.Size
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return NewPage(sorted[start:end], req, int64(len(items)))
}
