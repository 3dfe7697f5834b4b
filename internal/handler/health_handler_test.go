package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docreview/internal/handler"
	"docreview/internal/port"
	"docreview/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler("orchestrator", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/health", http.NoBody)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "orchestrator", resp["service"])
}

func TestHealthHandler_Readiness(t *testing.T) {
	db := new(mocks.MockHealthChecker)
	db.On("PingContext", mock.Anything).Return(nil)
	h := handler.NewHealthHandler("result-store", map[string]port.HealthChecker{"database": db})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	db.AssertExpectations(t)
}

func TestHealthHandler_Readiness_Unavailable(t *testing.T) {
	db := new(mocks.MockHealthChecker)
	db.On("PingContext", mock.Anything).Return(errors.New("connection refused"))
	h := handler.NewHealthHandler("result-store", map[string]port.HealthChecker{"database": db})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database not reachable")
}
