package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"perpus-server/internal/api/testutils"
	"perpus-server/internal/models"
)

// buildWorkbook makes an in-memory xlsx file with a header row followed by
// the given data rows.
func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestImportStudents(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	content := buildWorkbook(t, [][]string{
		{"Name", "Class"},
		{"Agus Salim", "7A"},
		{"Rina Wati", "7B"},
		{"", "7C"},   // no name, skipped
		{"Tono", ""}, // no class, skipped
	})

	w := testutils.PerformFileUpload(t, testCtx.Router, "/api/imports/students", "students.xlsx", content, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	var importResp models.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &importResp))
	assert.Equal(t, 2, importResp.Imported)

	// The import replaces the whole collection, seed data included
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	var listResp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Students, 2)
	assert.Equal(t, "Agus Salim", listResp.Students[0].Name)
	assert.Equal(t, "Rina Wati", listResp.Students[1].Name)
	assert.NotEqual(t, listResp.Students[0].ID, listResp.Students[1].ID)
}

func TestImportTeachersAndSubjects(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	teachers := buildWorkbook(t, [][]string{
		{"Name"},
		{"AHMAD SUBARJO, S.Pd"},
	})
	w := testutils.PerformFileUpload(t, testCtx.Router, "/api/imports/teachers", "teachers.xlsx", teachers, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	var importResp models.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &importResp))
	assert.Equal(t, 1, importResp.Imported)

	subjects := buildWorkbook(t, [][]string{
		{"Name"},
		{"IPS"},
		{"PPKN"},
	})
	w = testutils.PerformFileUpload(t, testCtx.Router, "/api/imports/subjects", "subjects.xlsx", subjects, headers)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &importResp))
	assert.Equal(t, 2, importResp.Imported)
}

func TestImportRejectsBadInput(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Test case 1: Not an xlsx file
	w := testutils.PerformFileUpload(t, testCtx.Router, "/api/imports/students", "students.xlsx", []byte("not a workbook"), headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 2: No file field at all
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/imports/students", nil, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A failed import leaves the collection untouched
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	var listResp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Students, 3)
}

func TestBackupRoundTrip(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Capture the seeded state as a backup
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/backup", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=%q",
			fmt.Sprintf("backup_perpus_%s.json", time.Now().Format("2006-01-02"))),
		w.Header().Get("Content-Disposition"))
	backup := w.Body.Bytes()

	var doc models.State
	require.NoError(t, json.Unmarshal(backup, &doc))
	assert.Len(t, doc.Students, 3)
	assert.Equal(t, "admin", doc.Credentials.Username)

	// Mutate the live state
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/students",
		models.AddStudentRequest{Name: "Dewi Lestari", Class: "7B"},
		headers,
	)
	require.Equal(t, http.StatusCreated, w.Code)

	// Restore from the captured document
	w = testutils.PerformRawRequest(testCtx.Router, http.MethodPost, "/api/restore", backup, "application/json", headers)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	var listResp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Students, 3, "restore must roll the collection back")
}

func TestRestoreBackfillsMissingCollections(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// An old-format document holding only students
	doc := []byte(`{"students":[{"id":"s1","name":"Agus Salim","class":"7A"}]}`)

	w := testutils.PerformRawRequest(testCtx.Router, http.MethodPost, "/api/restore", doc, "application/json", headers)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	var studentResp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &studentResp))
	require.Len(t, studentResp.Students, 1)
	assert.Equal(t, "Agus Salim", studentResp.Students[0].Name)

	// Collections absent from the document come back from the defaults
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/books", nil, headers)
	var bookResp struct {
		Books []models.Book `json:"books"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookResp))
	assert.Len(t, bookResp.Books, 2)

	// The default pair still logs in
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Username: "admin", Password: "admin"},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRestoreRejectsMalformedDocument(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	w := testutils.PerformRawRequest(testCtx.Router, http.MethodPost, "/api/restore", []byte("{not json"), "application/json", headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The store is untouched
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/students", nil, headers)
	var listResp struct {
		Students []models.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Students, 3)
}
