package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cover-merge/internal/shared/telemetry"
)

func TestErrorWritesErrorObject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusBadRequest, "validation_error", "cover_text is required")
		c.JSON(http.StatusOK, gin.H{"unreachable": true})
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 1 || body["error"] != "cover_text is required" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestErrorLogLevelFollowsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		status int
		level  string
	}{
		{status: http.StatusBadRequest, level: "warn"},
		{status: http.StatusUnprocessableEntity, level: "warn"},
		{status: http.StatusInternalServerError, level: "error"},
	}
	for _, tt := range tests {
		var logs bytes.Buffer
		restore := telemetry.SetOutput(&logs)
		r := gin.New()
		r.GET("/fail", func(c *gin.Context) {
			Error(c, tt.status, "code", "message")
		})
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
		restore()

		var entry map[string]any
		if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
			t.Fatalf("status %d: decode log line %q: %v", tt.status, logs.String(), err)
		}
		if entry["level"] != tt.level || entry["msg"] != "http.error" {
			t.Fatalf("status %d: unexpected log entry %v", tt.status, entry)
		}
	}
}

func TestAttachmentHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/file", func(c *gin.Context) {
		Attachment(c, "application/pdf", "jane-public.pdf", []byte("%PDF-1.4"))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/file", nil))

	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="jane-public.pdf"` {
		t.Fatalf("unexpected content disposition: %s", got)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type: %s", got)
	}
	if got := resp.Header().Get("Content-Length"); got != "8" {
		t.Fatalf("unexpected content length: %s", got)
	}
}
