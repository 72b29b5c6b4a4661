package router

import (
	"github.com/institute/backend/internal/interfaces/http/handler"
)

// Handlers are the resource handlers mounted by DomainGroups
type Handlers struct {
	Courses      *handler.CourseHandler
	Students     *handler.StudentHandler
	Fees         *handler.FeeHandler
	Payments     *handler.PaymentHandler
	Exams        *handler.ExamHandler
	Results      *handler.ResultHandler
	Certificates *handler.CertificateHandler
}

// DomainGroups builds the route groups of the institute API.
// Path parameter names are shared per position: gin rejects siblings
// that name the same segment differently.
func DomainGroups(h Handlers) []*DomainGroup {
	courses := NewDomainGroup("courses", "/courses").
		POST("", h.Courses.Create).
		GET("", h.Courses.List).
		GET("/:id", h.Courses.GetByID).
		PUT("/:id", h.Courses.Update).
		DELETE("/:id", h.Courses.Delete)

	students := NewDomainGroup("students", "/students").
		POST("", h.Students.Create).
		GET("", h.Students.List).
		GET("/:id", h.Students.GetByID).
		PUT("/:id", h.Students.Update).
		DELETE("/:id", h.Students.Delete)

	fees := NewDomainGroup("fees", "/fees").
		POST("", h.Fees.Create).
		GET("", h.Fees.List).
		POST("/overdue/refresh", h.Fees.RefreshOverdue).
		GET("/student/:studentId", h.Fees.ListByStudent).
		GET("/course/:courseId", h.Fees.ListByCourse).
		GET("/:id", h.Fees.GetByID).
		PUT("/:id", h.Fees.Update).
		DELETE("/:id", h.Fees.Delete).
		POST("/:id/cancel", h.Fees.Cancel).
		POST("/:id/discount", h.Fees.ApplyDiscount).
		POST("/:id/late-fee", h.Fees.ApplyLateFee).
		GET("/:id/payments", h.Payments.ListByFee).
		GET("/receipt/:paymentId", h.Payments.Receipt)
	fees.Group("payments", "/payments").
		POST("", h.Payments.Create).
		GET("", h.Payments.List).
		POST("/gateway/notification", h.Payments.GatewayNotification).
		GET("/student/:studentId", h.Payments.ListByStudent).
		GET("/:id", h.Payments.GetByID).
		POST("/:id/process", h.Payments.Process).
		POST("/:id/retry", h.Payments.Retry).
		POST("/:id/cancel", h.Payments.Cancel)

	exams := NewDomainGroup("exams", "/exams").
		POST("", h.Exams.Create).
		GET("", h.Exams.List).
		GET("/course/:courseId", h.Exams.ListByCourse).
		GET("/:id", h.Exams.GetByID).
		PUT("/:id", h.Exams.Update).
		DELETE("/:id", h.Exams.Delete).
		POST("/:id/start", h.Exams.Start).
		POST("/:id/complete", h.Exams.Complete).
		POST("/:id/cancel", h.Exams.Cancel).
		POST("/:id/postpone", h.Exams.Postpone).
		POST("/:id/submit", h.Results.Submit).
		GET("/:id/results", h.Results.ListByExam).
		POST("/:id/evaluate", h.Results.Evaluate).
		POST("/:id/results/publish", h.Results.PublishAll)
	exams.Group("results", "/results").
		GET("/student/:studentId", h.Results.ListByStudent).
		GET("/:resultId", h.Results.GetByID).
		POST("/:resultId/publish", h.Results.Publish).
		POST("/:resultId/absent", h.Results.MarkAbsent).
		POST("/:resultId/disqualify", h.Results.Disqualify)

	certifications := NewDomainGroup("certifications", "/certifications").
		POST("", h.Certificates.Issue).
		GET("", h.Certificates.List).
		GET("/verify/:code", h.Certificates.Verify).
		GET("/student/:studentId", h.Certificates.ListByStudent).
		GET("/course/:courseId", h.Certificates.ListByCourse).
		GET("/:id", h.Certificates.GetByID).
		POST("/:id/generate", h.Certificates.Generate).
		GET("/:id/download", h.Certificates.Download).
		PUT("/:id/status", h.Certificates.UpdateStatus).
		POST("/:id/revoke", h.Certificates.Revoke)

	return []*DomainGroup{courses, students, fees, exams, certifications}
}

// Registrars adapts groups for Router.Register
func Registrars(groups []*DomainGroup) []RouteRegistrar {
	out := make([]RouteRegistrar, len(groups))
	for i, g := range groups {
		out[i] = g
	}
	return out
}
