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

func TestClassVisits(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Test case 1: Record a visit spanning two lesson hours
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/class-visits",
		models.ClassVisitRequest{
			Date:    "2026-08-21",
			Class:   "7A",
			Teacher: "NUR FADILAH, S.Pd",
			Subject: "BAHASA INDONESIA",
			Hours:   []string{"1. (07.15 - 07.55)", "2. (07.55 - 08.35)"},
		},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var addResp struct {
		ClassVisit models.ClassVisit `json:"classVisit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	assert.Equal(t, "1. (07.15 - 07.55), 2. (07.55 - 08.35)", addResp.ClassVisit.Hours)

	// Test case 2: An empty hours list is rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/class-visits",
		map[string]interface{}{
			"date":    "2026-08-21",
			"class":   "7A",
			"teacher": "NUR FADILAH, S.Pd",
			"subject": "IPA",
			"hours":   []string{},
		},
		headers,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: List, then delete
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/class-visits", nil, headers)
	var listResp struct {
		ClassVisits []models.ClassVisit `json:"classVisits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.ClassVisits, 1)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/class-visits/"+addResp.ClassVisit.ID,
		nil,
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/class-visits", nil, headers)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.ClassVisits)
}

func TestStudentVisits(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.Token)

	// Test case 1: Record a visit
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/student-visits",
		models.StudentVisitRequest{
			Date:    "2026-08-21",
			Time:    "09:30",
			Class:   "8B",
			Student: "Siti Aminah",
			Purpose: "Membaca",
		},
		headers,
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var addResp struct {
		StudentVisit models.StudentVisit `json:"studentVisit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &addResp))
	require.NotEmpty(t, addResp.StudentVisit.ID)

	// Test case 2: Update rewrites every field, keeping the id
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/student-visits/"+addResp.StudentVisit.ID,
		models.StudentVisitRequest{
			Date:    "2026-08-21",
			Time:    "10:00",
			Class:   "8B",
			Student: "Siti Aminah",
			Purpose: "Mengerjakan tugas",
		},
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var updateResp struct {
		StudentVisit models.StudentVisit `json:"studentVisit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updateResp))
	assert.Equal(t, addResp.StudentVisit.ID, updateResp.StudentVisit.ID)
	assert.Equal(t, "10:00", updateResp.StudentVisit.Time)
	assert.Equal(t, "Mengerjakan tugas", updateResp.StudentVisit.Purpose)

	// Test case 3: Updating a missing visit is 404
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/student-visits/missing-id",
		models.StudentVisitRequest{
			Date:    "2026-08-21",
			Time:    "10:00",
			Class:   "8B",
			Student: "Siti Aminah",
			Purpose: "Membaca",
		},
		headers,
	)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 4: Delete
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/student-visits/"+addResp.StudentVisit.ID,
		nil,
		headers,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/student-visits", nil, headers)
	var listResp struct {
		StudentVisits []models.StudentVisit `json:"studentVisits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.StudentVisits)
}
