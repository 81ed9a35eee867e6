package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"perpus-server/internal/models"
)

// Spreadsheet import handlers. Each expects a multipart form with a
// single "file" field holding an xlsx workbook.

func (h *Handler) ImportStudents(c *gin.Context) {
	h.importSheet(c, h.svc.ImportStudents)
}

func (h *Handler) ImportTeachers(c *gin.Context) {
	h.importSheet(c, h.svc.ImportTeachers)
}

func (h *Handler) ImportSubjects(c *gin.Context) {
	h.importSheet(c, h.svc.ImportSubjects)
}

func (h *Handler) importSheet(c *gin.Context, importFn func(ctx context.Context, r io.Reader) (int, error)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "A spreadsheet file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		internalError(c, err)
		return
	}
	defer f.Close()

	imported, err := importFn(c.Request.Context(), f)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ImportResponse{
		Status:   "success",
		Imported: imported,
	})
}

// ExportBackup streams the full dataset as a JSON attachment.
func (h *Handler) ExportBackup(c *gin.Context) {
	data, filename, err := h.svc.ExportBackup()
	if err != nil {
		internalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// RestoreBackup replaces the full dataset from a JSON backup document.
func (h *Handler) RestoreBackup(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		internalError(c, err)
		return
	}

	if err := h.svc.RestoreBackup(c.Request.Context(), body); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
