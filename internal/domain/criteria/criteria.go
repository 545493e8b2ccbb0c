// Package criteria defines shared search and pagination primitives.
// All list endpoints combine optional AND predicates with 1-based
// page navigation and return the total match count alongside the page.
package criteria

import (
	"almacen/internal/core/apperror"
)

const (
	// DefaultPageSize is used when a request omits the page size.
	DefaultPageSize = 10

	// MaxPageSize caps the page size a client may request.
	MaxPageSize = 200
)

// Page describes 1-based page navigation.
type Page struct {
	Number int // first page is 1
	Size   int
}

// Normalize applies defaults and caps, returning a validation error
// for out-of-range values.
func (p Page) Normalize() (Page, error) {
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		return p, apperror.NewValidation("page size exceeds maximum").
			WithDetail("max_size", MaxPageSize)
	}
	return p, nil
}

// Offset converts the 1-based page number to a row offset.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Result is a single page of matches plus the total count across all pages.
// An empty Items slice with TotalCount zero is a valid, successful result.
type Result[T any] struct {
	Items      []T
	TotalCount int64
	Page       Page
}

// TotalPages returns the number of pages needed to cover TotalCount.
func (r Result[T]) TotalPages() int {
	if r.Page.Size <= 0 {
		return 0
	}
	pages := r.TotalCount / int64(r.Page.Size)
	if r.TotalCount%int64(r.Page.Size) != 0 {
		pages++
	}
	return int(pages)
}
