package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"perpus-server/internal/models"
	"perpus-server/internal/service"
)

func (h *Handler) ListStudents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "students": h.svc.ListStudents()})
}

func (h *Handler) AddStudent(c *gin.Context) {
	var req models.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name and class are required")
		return
	}

	student, err := h.svc.AddStudent(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "student": student})
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.svc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListTeachers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "teachers": h.svc.ListTeachers()})
}

func (h *Handler) AddTeacher(c *gin.Context) {
	var req models.AddTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name is required")
		return
	}

	teacher, err := h.svc.AddTeacher(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "teacher": teacher})
}

func (h *Handler) DeleteTeacher(c *gin.Context) {
	if err := h.svc.DeleteTeacher(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListSubjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "subjects": h.svc.ListSubjects()})
}

func (h *Handler) AddSubject(c *gin.Context) {
	var req models.AddSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name is required")
		return
	}

	subject, err := h.svc.AddSubject(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "subject": subject})
}

func (h *Handler) DeleteSubject(c *gin.Context) {
	if err := h.svc.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListLessonHours(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "lessonHours": h.svc.ListLessonHours()})
}

func (h *Handler) AddLessonHour(c *gin.Context) {
	var req models.AddLessonHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Label is required")
		return
	}

	hour, err := h.svc.AddLessonHour(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "lessonHour": hour})
}

func (h *Handler) DeleteLessonHour(c *gin.Context) {
	if err := h.svc.DeleteLessonHour(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "books": h.svc.ListBooks()})
}

func (h *Handler) AddBook(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Kind, title, author and publisher are required")
		return
	}

	book, err := h.svc.AddBook(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "book": book})
}

func (h *Handler) UpdateBook(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Kind, title, author and publisher are required")
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			notFound(c, "Book not found")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "book": book})
}

func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.svc.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
