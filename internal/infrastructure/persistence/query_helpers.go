package persistence

import (
	"errors"
	"strings"

	"github.com/institute/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds SELECT ... FOR UPDATE. The sqlite dialect drops the clause.
func forUpdate(query *gorm.DB) *gorm.DB {
	return query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}

// likePattern wraps a search term for a case-insensitive LIKE
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// translateError maps driver errors to domain errors. Record-not-found
// becomes NOT_FOUND and unique violations become ALREADY_EXISTS.
func translateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewDomainError(shared.CodeNotFound, resource+" not found")
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return shared.NewDomainError(shared.CodeAlreadyExists, resource+" already exists")
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

func concurrencyConflict(resource string) error {
	return shared.NewDomainError(shared.CodeConcurrencyConflict, resource+" was modified by another transaction")
}
