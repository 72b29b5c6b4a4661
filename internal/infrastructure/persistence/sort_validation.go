package persistence

import (
	"strings"

	"github.com/institute/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC (the default).
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, defaultField otherwise.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func sortFields(extra ...string) map[string]bool {
	m := map[string]bool{"id": true, "created_at": true, "updated_at": true}
	for _, f := range extra {
		m[f] = true
	}
	return m
}

var (
	CourseSortFields      = sortFields("code", "name", "fees", "duration_hours")
	StudentSortFields     = sortFields("first_name", "last_name", "email", "enrollment_date", "status")
	FeeLedgerSortFields   = sortFields("due_date", "total_amount", "paid_amount", "status")
	PaymentSortFields     = sortFields("amount", "status", "payment_date", "method")
	ExamSortFields        = sortFields("name", "exam_date", "status", "type")
	ExamResultSortFields  = sortFields("obtained_marks", "percentage", "rank", "grade")
	CertificateSortFields = sortFields("issue_date", "expiry_date", "status", "certificate_id")
)

// countAndFind counts every row matching query and then loads one page of it into dest.
func countAndFind(query *gorm.DB, filter shared.Filter, allowed map[string]bool, dest any) (int64, error) {
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	if err := page(query, filter, allowed).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// page applies ordering and pagination from filter
func page(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
