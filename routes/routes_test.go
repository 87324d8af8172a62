package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sessionsheet/config"
	"sessionsheet/handlers"

	"github.com/gin-gonic/gin"
)

func okHandler(c *gin.Context) { c.Status(http.StatusNoContent) }

func newEngine(authRequired bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		AuthRequired:                      authRequired,
		PreviewScheduleHandler:            okHandler,
		GenerateSpreadsheetHandler:        okHandler,
		GenerateMonthlySpreadsheetHandler: okHandler,
		ActivityLogsHandler:               okHandler,
	})
	return r
}

func TestRoutes(t *testing.T) {
	config.AppConfig.CORSOrigins = "*"
	open, closed := newEngine(false), newEngine(true)

	tests := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/schedule/preview"},
		{http.MethodPost, "/api/spreadsheets"},
		{http.MethodPost, "/api/spreadsheets/monthly"},
		{http.MethodGet, "/api/activity-logs"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != http.StatusNoContent {
			t.Errorf("open %s %s = %d", tt.method, tt.path, w.Code)
		}
		w = httptest.NewRecorder()
		closed.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("closed %s %s = %d", tt.method, tt.path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	closed.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("/health = %d", w.Code)
	}
}
