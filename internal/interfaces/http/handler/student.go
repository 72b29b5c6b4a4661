package handler

import (
	"github.com/gin-gonic/gin"

	academicapp "github.com/institute/backend/internal/application/academic"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// StudentHandler handles student API endpoints
type StudentHandler struct {
	BaseHandler
	studentService *academicapp.StudentService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *academicapp.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// StudentRequest represents a request to create or replace a student
// @Description Request body for creating or updating a student
type StudentRequest struct {
	FirstName      string `json:"first_name" binding:"required,min=1,max=100" example:"Meera"`
	LastName       string `json:"last_name" binding:"max=100" example:"Nair"`
	Email          string `json:"email" binding:"required,email,max=200" example:"meera@example.com"`
	Phone          string `json:"phone" binding:"max=50" example:"+919800000000"`
	EnrollmentDate string `json:"enrollment_date" example:"2026-01-15"`
	Status         string `json:"status" example:"ACTIVE"`
}

// StudentListQuery represents student list query parameters
type StudentListQuery struct {
	dto.ListRequest
	Status string `form:"status"`
}

func (h *StudentHandler) toApp(c *gin.Context, req StudentRequest) (academicapp.StudentRequest, bool) {
	out := academicapp.StudentRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.EnrollmentDate != "" {
		t, err := parseTime(req.EnrollmentDate)
		if err != nil {
			h.invalidInput(c, "Invalid enrollment_date")
			return out, false
		}
		out.EnrollmentDate = t
	}
	if req.Status != "" {
		status, err := academic.ParseStudentStatus(req.Status)
		if err != nil {
			h.HandleDomainError(c, err)
			return out, false
		}
		out.Status = status
	}
	return out, true
}

// Create godoc
// @ID           createStudent
// @Summary      Create a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string         false "Center ID"
// @Param        request     body     StudentRequest true  "Student"
// @Success      201         {object} APIResponse[academicapp.StudentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Router       /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var req StudentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	appReq, ok := h.toApp(c, req)
	if !ok {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), centerID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, student)
}

// GetByID godoc
// @ID           getStudent
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Student ID" format(uuid)
// @Success      200         {object} APIResponse[academicapp.StudentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /students/{id} [get]
func (h *StudentHandler) GetByID(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "student")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, student)
}

// List godoc
// @ID           listStudents
// @Summary      List students
// @Tags         students
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        search      query    string false "Search term (name, email)"
// @Param        status      query    string false "Student status" Enums(ACTIVE, INACTIVE, GRADUATED, SUSPENDED)
// @Param        page        query    int    false "Page number" default(1)
// @Param        page_size   query    int    false "Page size"   default(20) maximum(100)
// @Param        order_by    query    string false "Order by field"
// @Param        order_dir   query    string false "Order direction" Enums(asc, desc)
// @Success      200         {object} APIResponse[[]academicapp.StudentResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var q StudentListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	q.Normalize()

	filter := academicapp.StudentListFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	if q.Status != "" {
		status, err := academic.ParseStudentStatus(q.Status)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		filter.Status = status
	}

	students, total, err := h.studentService.List(c.Request.Context(), centerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, students, total, q.Page, q.PageSize)
}

// Update godoc
// @ID           updateStudent
// @Summary      Update a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string         false "Center ID"
// @Param        id          path     string         true  "Student ID" format(uuid)
// @Param        request     body     StudentRequest true  "Student"
// @Success      200         {object} APIResponse[academicapp.StudentResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "student")
	if !ok {
		return
	}
	var req StudentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	appReq, ok := h.toApp(c, req)
	if !ok {
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), centerID, id, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, student)
}

// Delete godoc
// @ID           deleteStudent
// @Summary      Delete a student
// @Tags         students
// @Param        X-Center-ID header string false "Center ID"
// @Param        id          path   string true  "Student ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "student")
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), centerID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
