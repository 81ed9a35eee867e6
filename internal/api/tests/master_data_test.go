package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perpus-server/internal/api/testutils"
	"perpus-server/internal/models"
)

func TestStudentCRUD(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Test case 1: The seed data holds three students
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Students, 3)

	// Test case 2: Add a student
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/students",
		models.AddStudentRequest{Name: "Dewi Lestari", Class: "7B"},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var addResp struct {
		Student models.Student `json:"student"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	assert.NotEmpty(t, addResp.Student.ID)
	assert.Equal(t, "Dewi Lestari", addResp.Student.Name)
	assert.Equal(t, "7B", addResp.Student.Class)

	// Test case 3: Missing class is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/students",
		map[string]string{"name": "No Class"},
		headers,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Delete the new student
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/students/"+addResp.Student.ID,
		nil,
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Students, 3)

	// Test case 5: Deleting an unknown id is a no-op
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/students/does-not-exist",
		nil,
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookLifecycle(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Test case 1: Add a general book
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/books",
		models.BookRequest{
			Kind:      models.BookKindGeneral,
			Title:     "Bumi Manusia",
			Author:    "Pramoedya Ananta Toer",
			Publisher: "Hasta Mitra",
		},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var addResp struct {
		Book models.Book `json:"book"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	assert.NotEmpty(t, addResp.Book.ID)

	// Test case 2: An unknown kind is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/books",
		map[string]string{"kind": "fiction", "title": "X", "author": "Y", "publisher": "Z"},
		headers,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Full-field update
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/books/"+addResp.Book.ID,
		models.BookRequest{
			Kind:      models.BookKindMandatory,
			Title:     "Bumi Manusia (Edisi Revisi)",
			Author:    "Pramoedya Ananta Toer",
			Publisher: "Lentera Dipantara",
		},
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updateResp struct {
		Book models.Book `json:"book"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updateResp))
	assert.Equal(t, addResp.Book.ID, updateResp.Book.ID)
	assert.Equal(t, models.BookKindMandatory, updateResp.Book.Kind)
	assert.Equal(t, "Bumi Manusia (Edisi Revisi)", updateResp.Book.Title)

	// Test case 4: Updating a missing book is 404
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/books/missing-id",
		models.BookRequest{
			Kind:      models.BookKindGeneral,
			Title:     "X",
			Author:    "Y",
			Publisher: "Z",
		},
		headers,
	)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 5: Delete
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/books/"+addResp.Book.ID,
		nil,
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTeacherSubjectLessonHourEndpoints(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Teachers
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/teachers",
		models.AddTeacherRequest{Name: "AHMAD SUBARJO, S.Pd"},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/teachers", nil, headers)
	var teacherResp struct {
		Teachers []models.Teacher `json:"teachers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teacherResp))
	assert.Len(t, teacherResp.Teachers, 3)

	// Subjects
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/subjects",
		models.AddSubjectRequest{Name: "IPS"},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/subjects", nil, headers)
	var subjectResp struct {
		Subjects []models.Subject `json:"subjects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subjectResp))
	assert.Len(t, subjectResp.Subjects, 5)

	// Lesson hours
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/lesson-hours",
		models.AddLessonHourRequest{Label: "9. (13.15 - 13.55)"},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var hourResp struct {
		LessonHour models.LessonHour `json:"lessonHour"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hourResp))

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/lesson-hours/"+hourResp.LessonHour.ID,
		nil,
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/lesson-hours", nil, headers)
	var hoursResp struct {
		LessonHours []models.LessonHour `json:"lessonHours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hoursResp))
	assert.Len(t, hoursResp.LessonHours, 9)
}
