package handlers

import (
	"fmt"
	"strconv"

	"jurnal/internal/apperrors"
	"jurnal/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PageLimits bounds the page size accepted from clients.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// pageRequest reads page, size and, when withSort is set, sortBy/sortDir from
// the query string. Oversized pages are clamped to MaxSize.
func (l PageLimits) pageRequest(c *fiber.Ctx, withSort bool) (models.PageRequest, error) {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return models.PageRequest{}, err
	}
	size, err := queryInt(c, "size", l.DefaultSize)
	if err != nil {
		return models.PageRequest{}, err
	}
	if l.MaxSize > 0 && size > l.MaxSize {
		size = l.MaxSize
	}

	req := models.PageRequest{Page: page, Size: size}
	if withSort {
		req.SortBy = c.Query("sortBy")
		req.SortDir = c.Query("sortDir")
	}
	if err := req.Validate(); err != nil {
		return models.PageRequest{}, err
	}
	return req, nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperrors.ErrValidation, key)
	}
	return n, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", apperrors.ErrValidation, key)
	}
	return &b, nil
}
