package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRedact(t *testing.T) {
	in := "invite=123e4567-e89b-42d3-a456-426614174000&to=Friend.One+x@Example.com"
	got := Redact(in)
	want := "invite=[REDACTED:id]&to=[REDACTED:email]"
	if got != want {
		t.Fatalf("Redact = %q; want %q", got, want)
	}
	if Redact("") != "" || Redact("CODE0001") != "CODE0001" {
		t.Fatalf("non-sensitive input must pass through")
	}
}

func TestRedactingLogger_MasksHeadersAndQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Api-Key"}}))
	r.GET("/calendars/:code", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet,
		"/calendars/CODE0001?invite=123e4567-e89b-42d3-a456-426614174000&email=a.b@example.com", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Cookie", "sid=topsecret")
	req.Header.Set("X-User-Email", "me@example.com")
	req.Header.Set("X-Api-Key", "shhh")
	req.Header.Set("X-Custom", "mail a@b.com token 123e4567-e89b-42d3-a456-426614174000")
	req.Header.Set(requestIDHeader, "rid-ok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	logs := buf.String()
	for _, want := range []string{
		`"level":"info"`,
		`"path":"/calendars/:code"`,
		`"request_id":"rid-ok"`,
		`"query":"invite=[REDACTED:id]&email=[REDACTED:email]"`,
		`"Authorization":"[REDACTED]"`,
		`"Cookie":"[REDACTED]"`,
		`"X-User-Email":"[REDACTED]"`,
		`"X-Api-Key":"[REDACTED]"`,
		`"X-Custom":"mail [REDACTED:email] token [REDACTED:id]"`,
	} {
		if !strings.Contains(logs, want) {
			t.Fatalf("missing %s in:\n%s", want, logs)
		}
	}
	for _, leak := range []string{"secret", "topsecret", "me@example.com", "shhh", "426614174000"} {
		if strings.Contains(logs, leak) {
			t.Fatalf("log leaked %q:\n%s", leak, logs)
		}
	}
}

func TestRedactingLogger_LevelsAndUnmatchedPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{}))
	r.GET("/warn", func(c *gin.Context) { c.Status(http.StatusConflict) })
	r.GET("/error", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/gin-error", func(c *gin.Context) {
		_ = c.Error(errSentinel{})
		c.Status(http.StatusBadRequest)
	})

	for _, p := range []string{"/warn", "/error", "/gin-error", "/invitations/123e4567-e89b-42d3-a456-426614174000"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"warn"`) || !strings.Contains(logs, `"level":"error"`) {
		t.Fatalf("expected warn and error lines:\n%s", logs)
	}
	if !strings.Contains(logs, `"errors":"Error #01: boom`) {
		t.Fatalf("expected gin errors on the line:\n%s", logs)
	}
	if !strings.Contains(logs, `"path":"/invitations/[REDACTED:id]"`) {
		t.Fatalf("unmatched raw path must be redacted:\n%s", logs)
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "boom" }
