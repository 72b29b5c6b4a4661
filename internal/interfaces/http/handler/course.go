package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	academicapp "github.com/institute/backend/internal/application/academic"
	"github.com/institute/backend/internal/interfaces/http/dto"
)

// CourseHandler handles course API endpoints
type CourseHandler struct {
	BaseHandler
	courseService *academicapp.CourseService
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService *academicapp.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CourseRequest represents a request to create or replace a course
// @Description Request body for creating or updating a course
type CourseRequest struct {
	Code               string          `json:"code" binding:"required,min=1,max=50" example:"DS-101"`
	Name               string          `json:"name" binding:"required,min=1,max=200" example:"Data Structures"`
	Description        string          `json:"description" binding:"max=2000" example:"Arrays, lists, trees and graphs"`
	DurationHours      int             `json:"duration_hours" binding:"min=0" example:"40"`
	Fees               decimal.Decimal `json:"fees" binding:"dgte=0" swaggertype:"string" example:"15000"`
	DiscountPercentage int             `json:"discount_percentage" binding:"min=0,max=100" example:"10"`
	MaxStudents        int             `json:"max_students" binding:"min=0" example:"30"`
	IsPublished        bool            `json:"is_published" example:"true"`
}

func (r CourseRequest) toApp() academicapp.CourseRequest {
	return academicapp.CourseRequest{
		Code:               r.Code,
		Name:               r.Name,
		Description:        r.Description,
		DurationHours:      r.DurationHours,
		Fees:               r.Fees,
		DiscountPercentage: r.DiscountPercentage,
		MaxStudents:        r.MaxStudents,
		IsPublished:        r.IsPublished,
	}
}

// CourseListQuery represents course list query parameters
type CourseListQuery struct {
	dto.ListRequest
	Published *bool `form:"published"`
}

// Create godoc
// @ID           createCourse
// @Summary      Create a course
// @Description  Create a course in the caller's center. Codes are unique per center.
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string        false "Center ID"
// @Param        request     body     CourseRequest true  "Course"
// @Success      201         {object} APIResponse[academicapp.CourseResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Failure      500         {object} ErrorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var req CourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), centerID, req.toApp())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, course)
}

// GetByID godoc
// @ID           getCourse
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        X-Center-ID header   string false "Center ID"
// @Param        id          path     string true  "Course ID" format(uuid)
// @Success      200         {object} APIResponse[academicapp.CourseResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Router       /courses/{id} [get]
func (h *CourseHandler) GetByID(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "course")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), centerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, course)
}

// List godoc
// @ID           listCourses
// @Summary      List courses
// @Description  Paginated course list with optional search and published filter
// @Tags         courses
// @Produce      json
// @Param        X-Center-ID header   string  false "Center ID"
// @Param        search      query    string  false "Search term (code, name)"
// @Param        published   query    boolean false "Published flag"
// @Param        page        query    int     false "Page number" default(1)
// @Param        page_size   query    int     false "Page size"   default(20) maximum(100)
// @Param        order_by    query    string  false "Order by field"
// @Param        order_dir   query    string  false "Order direction" Enums(asc, desc)
// @Success      200         {object} APIResponse[[]academicapp.CourseResponse]
// @Failure      400         {object} ErrorResponse
// @Router       /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	var q CourseListQuery
	if !h.bindQuery(c, &q) {
		return
	}
	q.Normalize()

	courses, total, err := h.courseService.List(c.Request.Context(), centerID, academicapp.CourseListFilter{
		Search:    q.Search,
		Published: q.Published,
		Page:      q.Page,
		PageSize:  q.PageSize,
		OrderBy:   q.OrderBy,
		OrderDir:  q.OrderDir,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, courses, total, q.Page, q.PageSize)
}

// Update godoc
// @ID           updateCourse
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        X-Center-ID header   string        false "Center ID"
// @Param        id          path     string        true  "Course ID" format(uuid)
// @Param        request     body     CourseRequest true  "Course"
// @Success      200         {object} APIResponse[academicapp.CourseResponse]
// @Failure      400         {object} ErrorResponse
// @Failure      404         {object} ErrorResponse
// @Failure      409         {object} ErrorResponse
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "course")
	if !ok {
		return
	}
	var req CourseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), centerID, id, req.toApp())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, course)
}

// Delete godoc
// @ID           deleteCourse
// @Summary      Delete a course
// @Tags         courses
// @Param        X-Center-ID header string false "Center ID"
// @Param        id          path   string true  "Course ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	centerID, ok := h.center(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id", "course")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), centerID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
