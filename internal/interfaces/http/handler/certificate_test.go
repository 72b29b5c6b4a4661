package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certapp "github.com/institute/backend/internal/application/certification"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

func (a *testAPI) issueCertificate(studentID, courseID uuid.UUID, extra map[string]any) certapp.CertificateResponse {
	a.t.Helper()
	body := map[string]any{
		"student_id": studentID.String(),
		"course_id":  courseID.String(),
		"issued_by":  "Academic Office",
	}
	for k, v := range extra {
		body[k] = v
	}
	w := a.do(http.MethodPost, "/certifications", body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[certapp.CertificateResponse](a.t, w).Data
}

func TestCertificateHandler_Issue(t *testing.T) {
	api := newTestAPI(t)
	courseID, studentID := api.seedCourseAndStudent()

	t.Run("defaults issue date to today", func(t *testing.T) {
		cert := api.issueCertificate(studentID, courseID, nil)
		assert.NotEmpty(t, cert.CertificateID)
		assert.NotEmpty(t, cert.VerificationCode)
		assert.Equal(t, "ACTIVE", cert.Status)
		assert.True(t, cert.IsValid)
		assert.False(t, cert.HasDocument)
		assert.Equal(t, 0, cert.VerificationCount)
		assert.Equal(t, testNow.Year(), cert.IssueDate.Year())
		assert.Equal(t, testNow.YearDay(), cert.IssueDate.YearDay())
	})

	t.Run("expiry must follow issue", func(t *testing.T) {
		w := api.do(http.MethodPost, "/certifications", map[string]any{
			"student_id":  studentID.String(),
			"course_id":   courseID.String(),
			"issue_date":  "2026-03-15",
			"expiry_date": "2026-03-15",
		})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("bad issue date", func(t *testing.T) {
		w := api.do(http.MethodPost, "/certifications", map[string]any{
			"student_id": studentID.String(),
			"course_id":  courseID.String(),
			"issue_date": "yesterday",
		})
		assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("unknown course", func(t *testing.T) {
		w := api.do(http.MethodPost, "/certifications", map[string]any{
			"student_id": studentID.String(),
			"course_id":  uuid.NewString(),
		})
		assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("lists", func(t *testing.T) {
		api.issueCertificate(studentID, courseID, map[string]any{"expiry_date": "2027-03-15"})

		w := api.do(http.MethodGet, "/certifications/student/"+studentID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[[]certapp.CertificateResponse](t, w)
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, int64(2), resp.Meta.Total)

		w = api.do(http.MethodGet, "/certifications/course/"+courseID.String()+"?status=active", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, decodeData[[]certapp.CertificateResponse](t, w).Data, 2)

		w = api.doAs(uuid.New(), http.MethodGet, "/certifications", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[[]certapp.CertificateResponse](t, w).Data)
	})
}

func TestCertificateHandler_Verify(t *testing.T) {
	api := newTestAPI(t)
	courseID, studentID := api.seedCourseAndStudent()
	cert := api.issueCertificate(studentID, courseID, nil)

	for i := 1; i <= 2; i++ {
		w := api.do(http.MethodGet, "/certifications/verify/"+cert.VerificationCode, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		v := decodeData[certapp.VerificationResponse](t, w).Data
		assert.Equal(t, cert.CertificateID, v.CertificateID)
		assert.True(t, v.IsValid)
		assert.Equal(t, i, v.VerificationCount)
		assert.Equal(t, "Meera Nair", v.StudentName)
	}

	w := api.do(http.MethodGet, "/certifications/verify/NO-SUCH-CODE", nil)
	assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	require.Len(t, api.recorder.calls, 3)
	assert.True(t, api.recorder.calls[0].found)
	assert.True(t, api.recorder.calls[1].found)
	assert.False(t, api.recorder.calls[2].found)

	w = api.do(http.MethodGet, "/certifications/"+cert.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decodeData[certapp.CertificateResponse](t, w).Data
	assert.Equal(t, 2, stored.VerificationCount)
	assert.Equal(t, "ACTIVE", stored.Status)
}

func TestCertificateHandler_StatusAndRevoke(t *testing.T) {
	api := newTestAPI(t)
	courseID, studentID := api.seedCourseAndStudent()
	cert := api.issueCertificate(studentID, courseID, nil)
	path := "/certifications/" + cert.ID.String()

	w := api.do(http.MethodPut, path+"/status", map[string]any{"status": "SUSPENDED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	suspended := decodeData[certapp.CertificateResponse](t, w).Data
	assert.Equal(t, "SUSPENDED", suspended.Status)
	assert.False(t, suspended.IsValid)

	w = api.do(http.MethodPut, path+"/status", map[string]any{"status": "REVOKED"})
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = api.do(http.MethodPut, path+"/status", map[string]any{"status": "LOST"})
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = api.do(http.MethodPost, path+"/revoke", map[string]any{})
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)

	w = api.do(http.MethodPost, path+"/revoke", map[string]any{"reason": "Issued in error"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	revoked := decodeData[certapp.CertificateResponse](t, w).Data
	assert.Equal(t, "REVOKED", revoked.Status)
	assert.Equal(t, "Issued in error", revoked.RevocationReason)
	require.NotNil(t, revoked.RevokedAt)

	w = api.do(http.MethodPost, path+"/revoke", map[string]any{"reason": "Again"})
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = api.do(http.MethodGet, "/certifications/verify/"+cert.VerificationCode, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := decodeData[certapp.VerificationResponse](t, w).Data
	assert.False(t, v.IsValid)
	assert.Equal(t, "Issued in error", v.RevocationReason)
}

func TestCertificateHandler_DocumentsNotConfigured(t *testing.T) {
	api := newTestAPI(t)
	courseID, studentID := api.seedCourseAndStudent()
	cert := api.issueCertificate(studentID, courseID, nil)

	w := api.do(http.MethodPost, "/certifications/"+cert.ID.String()+"/generate", nil)
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = api.do(http.MethodGet, "/certifications/"+cert.ID.String()+"/download", nil)
	assertError(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = api.do(http.MethodGet, "/certifications/not-a-uuid/download", nil)
	assertError(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
}
