package persistence

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/infrastructure/persistence/models"
)

func TestValidateSortOrder(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "DESC"},
		{"asc", "ASC"},
		{"  ASC  ", "ASC"},
		{"desc", "DESC"},
		{"sideways", "DESC"},
		{"ASC; DROP TABLE fee_ledgers;--", "DESC"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ValidateSortOrder(c.in), "%q", c.in)
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("whitelisted fields pass trimmed", func(t *testing.T) {
		assert.Equal(t, "fees", ValidateSortField(" fees ", CourseSortFields, "created_at"))
		assert.Equal(t, "due_date", ValidateSortField("due_date", FeeLedgerSortFields, "created_at"))
	})

	t.Run("anything else falls back", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("", CourseSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("FEES", CourseSortFields, "created_at"))
		assert.Equal(t, "created_at", ValidateSortField("due_date", CourseSortFields, "created_at"))
		assert.Empty(t, ValidateSortField("nope", CourseSortFields, ""))
	})

	t.Run("injection payloads never reach ORDER BY", func(t *testing.T) {
		for _, payload := range []string{
			"id; DROP TABLE students;--",
			"id' OR '1'='1",
			"id UNION SELECT verification_code FROM certificates",
			"CASE WHEN 1=1 THEN id ELSE name END",
			"id/**/;DROP TABLE students",
			"name\n; DROP TABLE students",
		} {
			assert.Equal(t, "created_at", ValidateSortField(payload, StudentSortFields, "created_at"))
		}
	})
}

func TestSortWhitelistsShareBaseColumns(t *testing.T) {
	for _, whitelist := range []map[string]bool{
		CourseSortFields, StudentSortFields, FeeLedgerSortFields, PaymentSortFields,
		ExamSortFields, ExamResultSortFields, CertificateSortFields,
	} {
		for _, field := range []string{"id", "created_at", "updated_at"} {
			assert.True(t, whitelist[field], field)
		}
	}
}

func TestPage(t *testing.T) {
	db := setupTestDB(t).Session(&gorm.Session{DryRun: true})

	sqlFor := func(filter shared.Filter) string {
		var rows []models.CourseModel
		stmt := page(db.Model(&models.CourseModel{}), filter, CourseSortFields).Find(&rows).Statement
		return strings.ToUpper(stmt.SQL.String())
	}

	got := sqlFor(shared.NewFilter(3, 10, "fees", "asc", ""))
	assert.Contains(t, got, "ORDER BY FEES ASC")
	assert.Contains(t, got, "LIMIT 10 OFFSET 20")

	got = sqlFor(shared.Filter{OrderBy: "fees; DROP TABLE courses"})
	assert.Contains(t, got, "ORDER BY CREATED_AT DESC")
	assert.NotContains(t, got, "LIMIT")
}

func TestCountAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCourseRepository(db)
	center := uuid.New()
	for _, code := range []string{"ML-101", "ML-102", "ML-103"} {
		require.NoError(t, repo.Save(t.Context(), newCourse(t, center, code, "Course "+code)))
	}

	var rows []models.CourseModel
	total, err := countAndFind(db.Model(&models.CourseModel{}).Where("center_id = ?", center),
		shared.NewFilter(2, 2, "code", "asc", ""), CourseSortFields, &rows)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "ML-103", rows[0].Code)
}
