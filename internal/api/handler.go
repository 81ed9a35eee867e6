package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"perpus-server/internal/models"
	"perpus-server/internal/service"
)

// Handler wires the HTTP routes to the service layer.
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/auth/login", h.Login)

	auth := api.Group("")
	auth.Use(AuthMiddleware())

	auth.PUT("/settings/credentials", h.UpdateCredentials)

	// Master data
	auth.GET("/students", h.ListStudents)
	auth.POST("/students", h.AddStudent)
	auth.DELETE("/students/:id", h.DeleteStudent)
	auth.GET("/teachers", h.ListTeachers)
	auth.POST("/teachers", h.AddTeacher)
	auth.DELETE("/teachers/:id", h.DeleteTeacher)
	auth.GET("/subjects", h.ListSubjects)
	auth.POST("/subjects", h.AddSubject)
	auth.DELETE("/subjects/:id", h.DeleteSubject)
	auth.GET("/lesson-hours", h.ListLessonHours)
	auth.POST("/lesson-hours", h.AddLessonHour)
	auth.DELETE("/lesson-hours/:id", h.DeleteLessonHour)
	auth.GET("/books", h.ListBooks)
	auth.POST("/books", h.AddBook)
	auth.PUT("/books/:id", h.UpdateBook)
	auth.DELETE("/books/:id", h.DeleteBook)

	// Loan lifecycle
	auth.POST("/loans", h.RecordLoan)
	auth.POST("/returns", h.ReturnTransactions)
	auth.GET("/transactions", h.ListTransactions)
	auth.DELETE("/transactions/:id", h.DeleteTransaction)

	// Visit logs
	auth.GET("/class-visits", h.ListClassVisits)
	auth.POST("/class-visits", h.RecordClassVisit)
	auth.DELETE("/class-visits/:id", h.DeleteClassVisit)
	auth.GET("/student-visits", h.ListStudentVisits)
	auth.POST("/student-visits", h.RecordStudentVisit)
	auth.PUT("/student-visits/:id", h.UpdateStudentVisit)
	auth.DELETE("/student-visits/:id", h.DeleteStudentVisit)

	// Derived views
	auth.GET("/reports/dashboard", h.Dashboard)
	auth.GET("/reports/overdue", h.Overdue)
	auth.GET("/reports/top-borrowers", h.TopBorrowers)
	auth.GET("/reports/student-history", h.StudentHistory)

	// Spreadsheet boundary
	auth.POST("/imports/students", h.ImportStudents)
	auth.POST("/imports/teachers", h.ImportTeachers)
	auth.POST("/imports/subjects", h.ImportSubjects)
	auth.GET("/exports/top-borrowers", h.ExportTopBorrowers)
	auth.GET("/exports/overdue", h.ExportOverdue)
	auth.GET("/exports/loans", h.ExportActiveLoans)
	auth.GET("/exports/returns", h.ExportReturns)
	auth.GET("/exports/student-history", h.ExportStudentHistory)
	auth.GET("/exports/class-visits", h.ExportClassVisits)
	auth.GET("/exports/student-visits", h.ExportStudentVisits)

	// Backup
	auth.GET("/backup", h.ExportBackup)
	auth.POST("/restore", h.RestoreBackup)
}

// Login handles the single-pair login and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	resp, err := h.svc.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:  "error",
				Code:    "INVALID_CREDENTIALS",
				Message: "Invalid username or password",
			})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateCredentials replaces the stored login pair.
func (h *Handler) UpdateCredentials(c *gin.Context) {
	var req models.UpdateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	if err := h.svc.UpdateCredentials(c.Request.Context(), req); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Response helpers

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "VALIDATION_ERROR",
		Message: message,
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Status:  "error",
		Code:    "NOT_FOUND",
		Message: message,
	})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:  "error",
		Code:    "INTERNAL_ERROR",
		Message: "Something went wrong",
	})
}

// serviceError maps known business errors to client responses.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyBookSelection),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrMixedBookKinds),
		errors.Is(err, service.ErrGeneralSingleBook),
		errors.Is(err, service.ErrNoReturnIDs),
		errors.Is(err, service.ErrInvalidBackup),
		errors.Is(err, service.ErrInvalidImport):
		badRequest(c, err.Error())
	case errors.Is(err, service.ErrNoExportData):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "NO_DATA",
			Message: err.Error(),
		})
	default:
		internalError(c, err)
	}
}
