package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/config"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/middleware"
)

func newTestRouter(t *testing.T) (*gin.Engine, *services.Services) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := docstore.NewMemoryStore(zerolog.Nop())
	svcs := services.New(store, zerolog.Nop())
	ctrl := NewClassroomController(svcs.Classrooms)

	cfg := &config.Config{}
	cfg.Server.Mode = "development"
	am := middleware.NewAuthMiddleware(cfg, zerolog.Nop())

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(am.Principal())
	api.POST("/classrooms", ctrl.CreateClassroom)
	api.GET("/classrooms/:id", ctrl.GetClassroomByID)
	api.PUT("/classrooms/:id", ctrl.UpdateClassroom)
	api.DELETE("/classrooms/:id", ctrl.DeleteClassroom)

	return router, svcs
}

func doJSON(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func responseData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestCreateClassroomRequiresInstructorRole(t *testing.T) {
	router, _ := newTestRouter(t)

	body := map[string]interface{}{"name": "Calculus", "description": "Limits and derivatives"}

	rec := doJSON(router, http.MethodPost, "/api/v1/classrooms", body, map[string]string{
		"X-User-Id": "doc_50", "X-User-Role": "student",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/v1/classrooms", body, map[string]string{
		"X-User-Id": "doc_51", "X-User-Role": "instructor",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeniedUpdateLeavesRecordUnchanged(t *testing.T) {
	router, _ := newTestRouter(t)

	created := responseData(t, doJSON(router, http.MethodPost, "/api/v1/classrooms",
		map[string]interface{}{"name": "Databases", "description": "Relational theory"},
		map[string]string{"X-User-Id": "doc_51", "X-User-Role": "instructor"},
	))
	id := created["id"].(string)

	// a different instructor may not touch it
	rec := doJSON(router, http.MethodPut, "/api/v1/classrooms/"+id,
		map[string]interface{}{"name": "Hijacked"},
		map[string]string{"X-User-Id": "doc_52", "X-User-Role": "instructor"},
	)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	got := responseData(t, doJSON(router, http.MethodGet, "/api/v1/classrooms/"+id, nil, nil))
	assert.Equal(t, "Databases", got["name"])
	assert.Equal(t, created["revision"], got["revision"], "denied mutation must not bump the revision")

	// an admin may
	rec = doJSON(router, http.MethodPut, "/api/v1/classrooms/"+id,
		map[string]interface{}{"name": "Advanced Databases"},
		map[string]string{"X-User-Id": "doc_53", "X-User-Role": "admin"},
	)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Advanced Databases", responseData(t, rec)["name"])
}

func TestGetMissingClassroomIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/v1/classrooms/doc_404", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "RES_001", envelope.Error.Code)
}

func TestDeleteByOwner(t *testing.T) {
	router, _ := newTestRouter(t)

	created := responseData(t, doJSON(router, http.MethodPost, "/api/v1/classrooms",
		map[string]interface{}{"name": "Networks", "description": "Protocols"},
		map[string]string{"X-User-Id": "doc_60", "X-User-Role": "instructor"},
	))
	id := created["id"].(string)

	rec := doJSON(router, http.MethodDelete, "/api/v1/classrooms/"+id, nil,
		map[string]string{"X-User-Id": "doc_60", "X-User-Role": "instructor"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/classrooms/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
