package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/institute/backend/internal/domain/shared"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil, "Fee"))
	})

	t.Run("record not found", func(t *testing.T) {
		err := translateError(fmt.Errorf("query: %w", gorm.ErrRecordNotFound), "Fee")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.EqualError(t, err, "Fee not found")
	})

	duplicates := []error{
		gorm.ErrDuplicatedKey,
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_courses_center_code" (SQLSTATE 23505)`),
		errors.New("UNIQUE constraint failed: certificates.verification_code"),
	}
	for _, dup := range duplicates {
		t.Run(dup.Error(), func(t *testing.T) {
			assert.ErrorIs(t, translateError(dup, "Certificate"), shared.ErrAlreadyExists)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection refused")
		assert.Same(t, cause, translateError(cause, "Fee"))
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%asha%", likePattern("  Asha "))
	assert.Equal(t, "%%", likePattern(""))
}

func TestConcurrencyConflict(t *testing.T) {
	err := concurrencyConflict("Payment")
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Contains(t, err.Error(), "Payment was modified")
}
