package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Derived view handlers

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

func (h *Handler) Overdue(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Overdue())
}

func (h *Handler) TopBorrowers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		badRequest(c, "Limit must be a positive number")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "topBorrowers": h.svc.RankTopBorrowers(limit)})
}

func (h *Handler) StudentHistory(c *gin.Context) {
	student := c.Query("student")
	if student == "" {
		badRequest(c, "Student name is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "history": h.svc.HistoryForStudent(student)})
}

// Spreadsheet export handlers

func (h *Handler) ExportTopBorrowers(c *gin.Context) {
	buf, filename, err := h.svc.ExportTopBorrowers()
	sendWorkbook(c, buf, filename, err)
}

func (h *Handler) ExportOverdue(c *gin.Context) {
	buf, filename, err := h.svc.ExportOverdue()
	sendWorkbook(c, buf, filename, err)
}

func (h *Handler) ExportActiveLoans(c *gin.Context) {
	buf, filename, err := h.svc.ExportActiveLoans()
	sendWorkbook(c, buf, filename, err)
}

func (h *Handler) ExportReturns(c *gin.Context) {
	buf, filename, err := h.svc.ExportReturns()
	sendWorkbook(c, buf, filename, err)
}

func (h *Handler) ExportStudentHistory(c *gin.Context) {
	student := c.Query("student")
	if student == "" {
		badRequest(c, "Student name is required")
		return
	}
	buf, filename, err := h.svc.ExportStudentHistory(student)
	sendWorkbook(c, buf, filename, err)
}

func (h *Handler) ExportClassVisits(c *gin.Context) {
	buf, filename, err := h.svc.ExportClassVisits()
	sendWorkbook(c, buf, filename, err)
}

func (h *Handler) ExportStudentVisits(c *gin.Context) {
	buf, filename, err := h.svc.ExportStudentVisits()
	sendWorkbook(c, buf, filename, err)
}

func sendWorkbook(c *gin.Context, buf *bytes.Buffer, filename string, err error) {
	if err != nil {
		serviceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
