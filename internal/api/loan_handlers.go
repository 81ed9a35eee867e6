package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perpus-server/internal/models"
)

// RecordLoan creates one borrowed transaction per selected book.
func (h *Handler) RecordLoan(c *gin.Context) {
	var req models.RecordLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Student, class, books, loan date and due date are required")
		return
	}

	created, err := h.svc.RecordLoan(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.RecordLoanResponse{
		Status:       "success",
		Transactions: created,
	})
}

// ReturnTransactions transitions the selected transactions to returned and
// reports how many actually changed.
func (h *Handler) ReturnTransactions(c *gin.Context) {
	var req models.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Transaction ids and return date are required")
		return
	}

	returned, err := h.svc.ReturnTransactions(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ReturnResponse{
		Status:   "success",
		Returned: returned,
	})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	transactions := h.svc.ListTransactions(c.Query("status"), c.Query("student"))
	c.JSON(http.StatusOK, gin.H{"status": "success", "transactions": transactions})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Visit log handlers

func (h *Handler) ListClassVisits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "classVisits": h.svc.ListClassVisits()})
}

func (h *Handler) RecordClassVisit(c *gin.Context) {
	var req models.ClassVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Date, class, teacher, subject and at least one lesson hour are required")
		return
	}

	visit, err := h.svc.RecordClassVisit(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "classVisit": visit})
}

func (h *Handler) DeleteClassVisit(c *gin.Context) {
	if err := h.svc.DeleteClassVisit(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListStudentVisits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "studentVisits": h.svc.ListStudentVisits()})
}

func (h *Handler) RecordStudentVisit(c *gin.Context) {
	var req models.StudentVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Date, time, class, student and purpose are required")
		return
	}

	visit, err := h.svc.RecordStudentVisit(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "studentVisit": visit})
}

func (h *Handler) UpdateStudentVisit(c *gin.Context) {
	var req models.StudentVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Date, time, class, student and purpose are required")
		return
	}

	visit, err := h.svc.UpdateStudentVisit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		internalError(c, err)
		return
	}
	if visit == nil {
		notFound(c, "Student visit not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "studentVisit": visit})
}

func (h *Handler) DeleteStudentVisit(c *gin.Context) {
	if err := h.svc.DeleteStudentVisit(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
