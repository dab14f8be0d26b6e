package view

import (
	"bytes"
	"strings"
	"testing"
)

type formData struct {
	Cliente struct {
		ID        int
		Nombre    string
		Domicilio string
		Telefono  string
		Email     string
	}
	Errors map[string]string
	CSRF   string
}

func TestRenderer_ParsesAllPages(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	for _, name := range []string{
		PageLogin, PageClientesListar, PageClientesIndex, PageClientesCrear,
		PageClientesEditar, PageClientesBorrar, PageError, PageNotFound,
	} {
		if _, ok := r.pages[name]; !ok {
			t.Errorf("page %q not parsed", name)
		}
	}
}

func TestRenderer_FormShowsFieldErrorsAndEscapes(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	var data formData
	data.Cliente.Nombre = `<script>x</script>`
	data.Errors = map[string]string{"telefono": "telefono es obligatorio"}
	data.CSRF = "tok"

	var buf bytes.Buffer
	if err := r.Render(&buf, PageClientesCrear, data, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "telefono es obligatorio") {
		t.Fatalf("expected field error in output")
	}
	if strings.Contains(out, "<script>x</script>") {
		t.Fatalf("submitted data must be escaped")
	}
	if !strings.Contains(out, `value="tok"`) {
		t.Fatalf("expected csrf token in form")
	}
}

func TestRenderer_ErrorPageShowsRequestID(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, PageError, struct{ RequestID string }{"req-123"}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "req-123") {
		t.Fatalf("expected request id in output")
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}
