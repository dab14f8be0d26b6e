package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tl2/clientes-admin/internal/session"
)

// recordingRenderer remembers the last page rendered instead of executing
// templates.
type recordingRenderer struct {
	name string
	data any
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.data = data
	_, err := io.WriteString(w, name)
	return err
}

type testRequest struct {
	method  string
	target  string
	form    url.Values
	session *session.Session
	id      string
}

func newTestContext(tr testRequest) (echo.Context, *httptest.ResponseRecorder, *recordingRenderer) {
	e := echo.New()
	e.Validator = NewValidator()
	rr := &recordingRenderer{}
	e.Renderer = rr

	var body io.Reader
	if tr.form != nil {
		body = strings.NewReader(tr.form.Encode())
	}
	req := httptest.NewRequest(tr.method, tr.target, body)
	if tr.form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "req-test")

	c := e.NewContext(req, rec)
	if tr.id != "" {
		c.SetParamNames("id")
		c.SetParamValues(tr.id)
	}
	s := tr.session
	if s == nil {
		s = session.New("sid-test")
	}
	c.Set(session.ContextKey, s)
	return c, rec, rr
}

func adminSession() *session.Session {
	s := session.New("sid-admin")
	s.SetAuthenticated("ana", "Admin")
	return s
}

func regularSession() *session.Session {
	s := session.New("sid-regular")
	s.SetAuthenticated("rodrigo", "Regular")
	return s
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
