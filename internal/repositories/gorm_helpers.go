package repositories

import (
	"errors"
	"fmt"
	"strings"

	"jurnal/internal/apperrors"
	"jurnal/internal/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// paginate counts and fetches one page of query. query must be a fresh session
// (see gorm.Session) so it can be reused for both statements.
func paginate[T any](query *gorm.DB, req models.PageRequest, allowed map[string]string, defaultOrder string) (*models.Page[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	order, err := req.OrderClause(allowed)
	if err != nil {
		return nil, err
	}
	if order == "" {
		order = defaultOrder
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	items := make([]T, 0, req.Size)
	find := query
	if order != "" {
		find = find.Order(order)
	}
	if err := find.Order("id asc").Offset(req.Offset()).Limit(req.Size).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	return models.NewPage(items, req, total), nil
}

// translateWriteError turns storage constraint errors into domain errors.
func translateWriteError(err error, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s: duplicate value", apperrors.ErrConflict, action)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
