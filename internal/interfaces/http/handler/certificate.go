package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	certapp "github.com/institute/backend/internal/application/certification"
	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// VerificationRecorder counts public verification lookups
type VerificationRecorder interface {
	RecordVerification(ctx context.Context, found bool)
}

// CertificateHandler handles certificate API endpoints
type CertificateHandler struct {
	BaseHandler
	certService *certapp.CertificateService
	recorder    VerificationRecorder
}

// NewCertificateHandler creates a new CertificateHandler. recorder may be nil.
func NewCertificateHandler(certService *certapp.CertificateService, recorder VerificationRecorder) *CertificateHandler {
	return &CertificateHandler{certService: certService, recorder: recorder}
}

// IssueCertificateRequest represents a request to issue a certificate
type IssueCertificateRequest struct {
	StudentID  string  `json:"student_id" binding:"required,uuid" example:"9b2f3c1e-8a4d-4c7e-9f1a-2b3c4d5e6f70"`
	CourseID   string  `json:"course_id" binding:"required,uuid" example:"1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f"`
	IssueDate  string  `json:"issue_date" example:"2026-06-01"`
	ExpiryDate *string `json:"expiry_date" example:"2029-06-01"`
	IssuedBy   string  `json:"issued_by" binding:"max=200" example:"Academic Office"`
	Remarks    string  `json:"remarks" binding:"max=1000" example:"With distinction"`
}

// UpdateCertificateStatusRequest represents a status change
// @Description REVOKED is only reachable through the revoke endpoint
type UpdateCertificateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"SUSPENDED"`
}

// RevokeCertificateRequest carries the revocation reason
type RevokeCertificateRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500" example:"Issued in error"`
}

// CertificateListQuery represents certificate list query parameters
type CertificateListQuery struct {
	dto.ListRequest
	StudentID string `form:"student_id"`
	CourseID  string `form:"course_id"`
	Status    string `form:"status"`
}

// Issue godoc
// @ID           issueCertificate
// @Summary      Issue a certificate
// @Description  Assigns a certificate ID and verification code. The student is notified by email when mail is configured.
// @Tags         certifications
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string                  false "Center ID"
// @Param        request     body     IssueCertificateRequest true  "Certificate"
// @Success      201         {object} APIResponse[certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Router       /certifications [post]
func (h *CertificateHandler) Issue(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var req IssueCertificateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	appReq := certapp.IssueCertificateRequest{
		StudentID: uuid.MustParse(req.StudentID),
		CourseID:  uuid.MustParse(req.CourseID),
		IssuedBy:  req.IssuedBy,
		Remarks:   req.Remarks,
	}
	if req.IssueDate != "" {
		t, err := parseTime(req.IssueDate)
		if err != nil {
			h.invalidInput(c, "Invalid issue_date")
			return
		}
		appReq.IssueDate = t
	}
	expiry, err := optionalTime(req.ExpiryDate)
	if err != nil {
		h.invalidInput(c, "Invalid expiry_date")
		return
	}
	appReq.ExpiryDate = expiry

	cert, err := h.certService.Issue(c.Request.Context(), centerID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, cert)
}

// GetByID godoc
// @ID           getCertificate
// @Summary      Get a certificate
// @Tags         certifications
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Certificate record ID" format(uuid)
// @Success      200         {object} APIResponse[certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /certifications/{id} [get]
func (h *CertificateHandler) GetByID(c *gin.Context) {
	h.byID(c, h.certService.GetByID)
}

// List godoc
// @ID           listCertificates
// @Summary      List certificates
// @Tags         certifications
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        student_id  query    string false "Student ID" format(uuid)
// @Param        course_id   query    string false "Course ID"  format(uuid)
// @Param        status      query    string false "Certificate status" Enums(ACTIVE, EXPIRED, REVOKED, SUSPENDED)
// @Param        search      query    string false "Search term (certificate ID)"
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /certifications [get]
func (h *CertificateHandler) List(c *gin.Context) {
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	certs, total, err := h.certService.List(c.Request.Context(), centerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, certs, total, filter.Page, filter.PageSize)
}

// ListByStudent godoc
// @ID           listCertificatesByStudent
// @Summary      List a student's certificates
// @Tags         certifications
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        studentId   path     string true  "Student ID" format(uuid)
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /certifications/student/{studentId} [get]
func (h *CertificateHandler) ListByStudent(c *gin.Context) {
	studentID, ok := h.uuidParam(c, "studentId", "student")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	certs, total, err := h.certService.ListByStudent(c.Request.Context(), centerID, studentID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, certs, total, filter.Page, filter.PageSize)
}

// ListByCourse godoc
// @ID           listCertificatesByCourse
// @Summary      List a course's certificates
// @Tags         certifications
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        courseId    path     string true  "Course ID" format(uuid)
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Success      200         {object} APIResponse[[]certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /certifications/course/{courseId} [get]
func (h *CertificateHandler) ListByCourse(c *gin.Context) {
	courseID, ok := h.uuidParam(c, "courseId", "course")
	if !ok {
		return
	}
	centerID, filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	certs, total, err := h.certService.ListByCourse(c.Request.Context(), centerID, courseID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, certs, total, filter.Page, filter.PageSize)
}

func (h *CertificateHandler) listFilter(c *gin.Context) (uuid.UUID, certapp.CertificateListFilter, bool) {
	var filter certapp.CertificateListFilter
	centerID, ok := h.center(c)
	if !ok {
		return centerID, filter, false
	}
	var q CertificateListQuery
	if !h.bindQuery(c, &q) {
		return centerID, filter, false
	}
	q.Normalize()

	filter = certapp.CertificateListFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	var err error
	if filter.StudentID, err = optionalUUID(q.StudentID); err != nil {
		h.invalidInput(c, "Invalid student_id")
		return centerID, filter, false
	}
	if filter.CourseID, err = optionalUUID(q.CourseID); err != nil {
		h.invalidInput(c, "Invalid course_id")
		return centerID, filter, false
	}
	if q.Status != "" {
		if filter.Status, err = certification.ParseCertificateStatus(q.Status); err != nil {
			h.HandleDomainError(c, err)
			return centerID, filter, false
		}
	}
	return centerID, filter, true
}

// Generate godoc
// @ID           generateCertificate
// @Summary      Render and store the certificate PDF
// @Tags         certifications
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Certificate record ID" format(uuid)
// @Success      200         {object} APIResponse[certapp.CertificateResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /certifications/{id}/generate [post]
func (h *CertificateHandler) Generate(c *gin.Context) {
	h.byID(c, h.certService.Generate)
}

// Download godoc
// @ID           downloadCertificate
// @Summary      Get a download link for the certificate PDF
// @Description  Returns a presigned URL valid for a limited time
// @Tags         certifications
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Certificate record ID" format(uuid)
// @Success      200         {object} APIResponse[certapp.DownloadResponse]
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /certifications/{id}/download [get]
func (h *CertificateHandler) Download(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "certificate")
	if !ok {
		return
	}

	link, err := h.certService.Download(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, link)
}

// Verify godoc
// @ID           verifyCertificate
// @Summary      Verify a certificate
// @Description  Public lookup by verification code. Every successful lookup is counted.
// @Tags         certifications
// @Produce      json
// @Param        code path     string true "Verification code"
// @Success      200  {object} APIResponse[certapp.VerificationResponse]
// @Failure      400  {object} ErrorResponse
// @Failure      404  {object} ErrorResponse
// @Router       /certifications/verify/{code} [get]
func (h *CertificateHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.certService.Verify(ctx, c.Param("code"))
	if h.recorder != nil && (err == nil || shared.IsNotFound(err)) {
		h.recorder.RecordVerification(ctx, err == nil)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updateCertificateStatus
// @Summary      Change a certificate's status
// @Description  Accepts ACTIVE (reinstate), SUSPENDED and EXPIRED
// @Tags         certifications
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string                         false "Center ID"
// @Param        id          path     string                         true  "Certificate record ID" format(uuid)
// @Param        request     body     UpdateCertificateStatusRequest true  "Status"
// @Success      200         {object} APIResponse[certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /certifications/{id}/status [put]
func (h *CertificateHandler) UpdateStatus(c *gin.Context) {
	var req UpdateCertificateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	status, err := certification.ParseCertificateStatus(req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.byID(c, func(ctx context.Context, centerID, id uuid.UUID) (*certapp.CertificateResponse, error) {
		return h.certService.UpdateStatus(ctx, centerID, id, status)
	})
}

// Revoke godoc
// @ID           revokeCertificate
// @Summary      Revoke a certificate
// @Description  Terminal. Revoking twice is rejected and keeps the first reason.
// @Tags         certifications
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string                   false "Center ID"
// @Param        id          path     string                   true  "Certificate record ID" format(uuid)
// @Param        request     body     RevokeCertificateRequest true  "Reason"
// @Success      200         {object} APIResponse[certapp.CertificateResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      422         {object} ErrorResponse
// @Router       /certifications/{id}/revoke [post]
func (h *CertificateHandler) Revoke(c *gin.Context) {
	var req RevokeCertificateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.byID(c, func(ctx context.Context, centerID, id uuid.UUID) (*certapp.CertificateResponse, error) {
		return h.certService.Revoke(ctx, centerID, id, req.Reason)
	})
}

func (h *CertificateHandler) byID(c *gin.Context, fn func(ctx context.Context, centerID, id uuid.UUID) (*certapp.CertificateResponse, error)) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "certificate")
	if !ok {
		return
	}

	cert, err := fn(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, cert)
}
