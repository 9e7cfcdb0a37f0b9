package models

import (
	"fmt"
	"strings"

	"jurnal/internal/apperrors"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest describes a zero-based page of a listing.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Validate rejects negative pages and non-positive sizes.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", apperrors.ErrValidation)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size must be positive", apperrors.ErrValidation)
	}
	if p.SortDir != "" && !strings.EqualFold(p.SortDir, SortAsc) && !strings.EqualFold(p.SortDir, SortDesc) {
		return fmt.Errorf("%w: sortDir must be %q or %q", apperrors.ErrValidation, SortAsc, SortDesc)
	}
	return nil
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderClause resolves SortBy against the allowed columns and returns an SQL
// ORDER BY fragment, or "" when no sort was requested.
func (p PageRequest) OrderClause(allowed map[string]string) (string, error) {
	if p.SortBy == "" {
		return "", nil
	}
	column, ok := allowed[p.SortBy]
	if !ok {
		return "", fmt.Errorf("%w: cannot sort by %q", apperrors.ErrValidation, p.SortBy)
	}
	dir := SortDesc
	if strings.EqualFold(p.SortDir, SortAsc) {
		dir = SortAsc
	}
	return column + " " + dir, nil
}

// Page is one page of results plus total-count metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage builds a Page from a slice of results and the total row count.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page+1 >= totalPages,
	}
}
