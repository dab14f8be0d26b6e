package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/api/middleware"
	"github.com/tl2/clientes-admin/internal/api/view"
	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/session"
)

// stubClienteRepo is an in-memory ClienteRepository that counts calls.
type stubClienteRepo struct {
	data   map[int]domain.Cliente
	nextID int
	err    error
	calls  map[string]int
}

func newStubClienteRepo(seed ...domain.Cliente) *stubClienteRepo {
	r := &stubClienteRepo{data: make(map[int]domain.Cliente), calls: make(map[string]int)}
	for _, c := range seed {
		r.data[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *stubClienteRepo) ObtenerClientes(context.Context) ([]domain.Cliente, error) {
	r.calls["ObtenerClientes"]++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Cliente, 0, len(r.data))
	for _, c := range r.data {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubClienteRepo) ObtenerCliente(_ context.Context, id int) (*domain.Cliente, error) {
	r.calls["ObtenerCliente"]++
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.data[id]
	if !ok {
		return nil, domain.ErrClienteNotFound
	}
	return &c, nil
}

func (r *stubClienteRepo) CrearCliente(_ context.Context, c *domain.Cliente) error {
	r.calls["CrearCliente"]++
	if r.err != nil {
		return r.err
	}
	r.nextID++
	c.ID = r.nextID
	r.data[c.ID] = *c
	return nil
}

func (r *stubClienteRepo) ModificarCliente(_ context.Context, id int, c *domain.Cliente) error {
	r.calls["ModificarCliente"]++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.data[id]; !ok {
		return domain.ErrClienteNotFound
	}
	c.ID = id
	r.data[id] = *c
	return nil
}

func (r *stubClienteRepo) EliminarCliente(_ context.Context, id int) error {
	r.calls["EliminarCliente"]++
	if r.err != nil {
		return r.err
	}
	delete(r.data, id)
	return nil
}

var (
	juan  = domain.Cliente{ID: 1, Nombre: "Juan Pérez", Domicilio: "Av. Siempreviva 742", Telefono: "+54 11 5555-1234"}
	maria = domain.Cliente{ID: 2, Nombre: "María Gómez", Domicilio: "Calle 9 123", Telefono: "221 444 0000", Email: "maria@example.com"}
)

func validForm() url.Values {
	return url.Values{
		"nombre":    {"Carla Ruiz"},
		"domicilio": {"San Martín 50"},
		"telefono":  {"0341 456 7890"},
		"email":     {"carla@example.com"},
	}
}

func TestClienteHandler_Index(t *testing.T) {
	tests := []struct {
		name      string
		session   *session.Session
		wantAdmin bool
	}{
		{"admin sees edit links", adminSession(), true},
		{"regular does not", regularSession(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubClienteRepo(juan, maria)
			h := NewClienteHandler(repo, zerolog.Nop())
			c, rec, rr := newTestContext(testRequest{method: http.MethodGet, target: "/clientes/index", session: tt.session})

			if err := h.Index(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK || rr.name != view.PageClientesIndex {
				t.Fatalf("expected index page with 200, got %q/%d", rr.name, rec.Code)
			}
			vm := rr.data.(ClientesViewModel)
			if vm.Admin != tt.wantAdmin {
				t.Fatalf("expected Admin=%v, got %v", tt.wantAdmin, vm.Admin)
			}
			if len(vm.Clientes) != 2 {
				t.Fatalf("expected 2 clientes, got %d", len(vm.Clientes))
			}
		})
	}
}

func TestClienteHandler_Index_ShowsFlashOnce(t *testing.T) {
	repo := newStubClienteRepo(juan)
	h := NewClienteHandler(repo, zerolog.Nop())
	s := regularSession()
	s.AddFlash(middleware.MsgForbidden)

	c, _, rr := newTestContext(testRequest{method: http.MethodGet, target: "/clientes/index", session: s})
	if err := h.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if vm := rr.data.(ClientesViewModel); vm.ErrorMessage != middleware.MsgForbidden {
		t.Fatalf("expected flash message, got %q", vm.ErrorMessage)
	}

	c, _, rr = newTestContext(testRequest{method: http.MethodGet, target: "/clientes/index", session: s})
	if err := h.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if vm := rr.data.(ClientesViewModel); vm.ErrorMessage != "" {
		t.Fatalf("flash must be consumed, got %q", vm.ErrorMessage)
	}
}

func TestClienteHandler_List(t *testing.T) {
	repo := newStubClienteRepo(juan, maria)
	h := NewClienteHandler(repo, zerolog.Nop())
	c, rec, rr := newTestContext(testRequest{method: http.MethodGet, target: "/clientes", session: regularSession()})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rr.name != view.PageClientesListar {
		t.Fatalf("expected listing page with 200, got %q/%d", rr.name, rec.Code)
	}
	if vm := rr.data.(ClientesViewModel); len(vm.Clientes) != 2 || vm.Clientes[0].ID != 1 {
		t.Fatalf("unexpected clientes: %+v", vm.Clientes)
	}
}

func TestClienteHandler_Create_Valid(t *testing.T) {
	repo := newStubClienteRepo(juan)
	h := NewClienteHandler(repo, zerolog.Nop())
	c, rec, _ := newTestContext(testRequest{method: http.MethodPost, target: "/clientes/crear", form: validForm(), session: adminSession()})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/clientes/index")
	if repo.calls["CrearCliente"] != 1 {
		t.Fatalf("expected one create call, got %d", repo.calls["CrearCliente"])
	}
	stored, ok := repo.data[2]
	if !ok || stored.Nombre != "Carla Ruiz" || stored.Email != "carla@example.com" {
		t.Fatalf("unexpected stored cliente: %+v", stored)
	}
}

func TestClienteHandler_Create_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(url.Values)
		wantField string
	}{
		{"missing nombre", func(v url.Values) { v.Set("nombre", "") }, "nombre"},
		{"missing domicilio", func(v url.Values) { v.Del("domicilio") }, "domicilio"},
		{"blank nombre", func(v url.Values) { v.Set("nombre", "   ") }, "nombre"},
		{"blank domicilio", func(v url.Values) { v.Set("domicilio", "\t ") }, "domicilio"},
		{"bad telefono", func(v url.Values) { v.Set("telefono", "llamame") }, "telefono"},
		{"bad email", func(v url.Values) { v.Set("email", "no-es-un-email") }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubClienteRepo()
			h := NewClienteHandler(repo, zerolog.Nop())
			form := validForm()
			tt.mutate(form)
			c, rec, rr := newTestContext(testRequest{method: http.MethodPost, target: "/clientes/crear", form: form, session: adminSession()})

			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			if rr.name != view.PageClientesCrear {
				t.Fatalf("expected create form, got %q", rr.name)
			}
			vm := rr.data.(ClienteFormViewModel)
			if _, ok := vm.Errors[tt.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, vm.Errors)
			}
			if vm.Cliente.Domicilio != strings.TrimSpace(form.Get("domicilio")) || vm.Cliente.Telefono != form.Get("telefono") {
				t.Fatalf("submitted data must be echoed back, got %+v", vm.Cliente)
			}
			if repo.calls["CrearCliente"] != 0 {
				t.Fatalf("repository must not be called for invalid input")
			}
		})
	}
}

func TestClienteHandler_Create_TrimsInput(t *testing.T) {
	repo := newStubClienteRepo()
	h := NewClienteHandler(repo, zerolog.Nop())
	form := validForm()
	form.Set("nombre", "  Carla Ruiz ")
	form.Set("email", " carla@example.com ")
	c, rec, _ := newTestContext(testRequest{method: http.MethodPost, target: "/clientes/crear", form: form, session: adminSession()})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/clientes/index")
	if got := repo.data[1]; got.Nombre != "Carla Ruiz" || got.Email != "carla@example.com" {
		t.Fatalf("expected trimmed values, got %+v", got)
	}
}

func TestClienteHandler_EditForm(t *testing.T) {
	repo := newStubClienteRepo(juan)
	h := NewClienteHandler(repo, zerolog.Nop())

	c, rec, rr := newTestContext(testRequest{method: http.MethodGet, target: "/clientes/modificar/1", id: "1", session: adminSession()})
	if err := h.EditForm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rr.name != view.PageClientesEditar {
		t.Fatalf("expected edit form with 200, got %q/%d", rr.name, rec.Code)
	}
	if vm := rr.data.(ClienteFormViewModel); vm.Cliente != juan {
		t.Fatalf("expected %+v, got %+v", juan, vm.Cliente)
	}
}

func TestClienteHandler_MissingOrMalformedID(t *testing.T) {
	tests := []struct {
		name   string
		method string
		id     string
		call   func(*ClienteHandler, echo.Context) error
	}{
		{"edit missing", http.MethodGet, "99", (*ClienteHandler).EditForm},
		{"edit non-numeric", http.MethodGet, "abc", (*ClienteHandler).EditForm},
		{"delete confirm missing", http.MethodGet, "99", (*ClienteHandler).DeleteConfirm},
		{"update missing", http.MethodPost, "99", (*ClienteHandler).Update},
		{"update non-numeric", http.MethodPost, "x1", (*ClienteHandler).Update},
		{"delete non-numeric", http.MethodPost, "-", (*ClienteHandler).DeleteConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubClienteRepo(juan)
			h := NewClienteHandler(repo, zerolog.Nop())
			var form url.Values
			if tt.method == http.MethodPost {
				form = validForm()
			}
			c, rec, rr := newTestContext(testRequest{method: tt.method, target: "/clientes/x/" + tt.id, id: tt.id, form: form, session: adminSession()})

			if err := tt.call(h, c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusNotFound || rr.name != view.PageNotFound {
				t.Fatalf("expected not found page with 404, got %q/%d", rr.name, rec.Code)
			}
			if repo.data[1] != juan {
				t.Fatalf("stored cliente must be unchanged")
			}
		})
	}
}

func TestClienteHandler_Update_Valid(t *testing.T) {
	repo := newStubClienteRepo(juan)
	h := NewClienteHandler(repo, zerolog.Nop())
	c, rec, _ := newTestContext(testRequest{method: http.MethodPost, target: "/clientes/modificar/1", id: "1", form: validForm(), session: adminSession()})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/clientes/index")
	if repo.calls["ModificarCliente"] != 1 {
		t.Fatalf("expected one update call, got %d", repo.calls["ModificarCliente"])
	}
	if got := repo.data[1]; got.ID != 1 || got.Nombre != "Carla Ruiz" {
		t.Fatalf("unexpected stored cliente: %+v", got)
	}
}

func TestClienteHandler_Update_Invalid(t *testing.T) {
	repo := newStubClienteRepo(juan)
	h := NewClienteHandler(repo, zerolog.Nop())
	form := validForm()
	form.Set("nombre", "")
	c, rec, rr := newTestContext(testRequest{method: http.MethodPost, target: "/clientes/modificar/1", id: "1", form: form, session: adminSession()})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity || rr.name != view.PageClientesEditar {
		t.Fatalf("expected edit form with 422, got %q/%d", rr.name, rec.Code)
	}
	if vm := rr.data.(ClienteFormViewModel); vm.Cliente.ID != 1 {
		t.Fatalf("expected id 1 to be kept in the form, got %d", vm.Cliente.ID)
	}
	if repo.calls["ModificarCliente"] != 0 {
		t.Fatalf("repository must not be called for invalid input")
	}
}

func TestClienteHandler_DeleteConfirmed(t *testing.T) {
	repo := newStubClienteRepo(juan, maria)
	h := NewClienteHandler(repo, zerolog.Nop())
	c, rec, _ := newTestContext(testRequest{method: http.MethodPost, target: "/clientes/eliminarConfirmado/2", id: "2", session: adminSession()})

	if err := h.DeleteConfirmed(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/clientes/index")
	if _, ok := repo.data[2]; ok {
		t.Fatalf("cliente 2 should be deleted")
	}
	if repo.calls["ObtenerCliente"] != 0 {
		t.Fatalf("delete must not re-check existence")
	}
}

func TestClienteHandler_RepositoryFailure(t *testing.T) {
	tests := []struct {
		name   string
		method string
		id     string
		form   url.Values
		call   func(*ClienteHandler, echo.Context) error
	}{
		{"list", http.MethodGet, "", nil, (*ClienteHandler).List},
		{"index", http.MethodGet, "", nil, (*ClienteHandler).Index},
		{"create", http.MethodPost, "", validForm(), (*ClienteHandler).Create},
		{"edit", http.MethodGet, "1", nil, (*ClienteHandler).EditForm},
		{"update", http.MethodPost, "1", validForm(), (*ClienteHandler).Update},
		{"delete", http.MethodPost, "1", nil, (*ClienteHandler).DeleteConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubClienteRepo(juan)
			repo.err = errors.New("connection reset by peer")
			h := NewClienteHandler(repo, zerolog.Nop())
			c, rec, rr := newTestContext(testRequest{method: tt.method, target: "/clientes", id: tt.id, form: tt.form, session: adminSession()})

			if err := tt.call(h, c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusInternalServerError || rr.name != view.PageError {
				t.Fatalf("expected error page with 500, got %q/%d", rr.name, rec.Code)
			}
			if vm := rr.data.(ErrorViewModel); vm.RequestID != "req-test" {
				t.Fatalf("expected correlation id, got %q", vm.RequestID)
			}
		})
	}
}

func TestClienteHandler_Error_NotCached(t *testing.T) {
	h := NewClienteHandler(newStubClienteRepo(), zerolog.Nop())
	c, rec, rr := newTestContext(testRequest{method: http.MethodGet, target: "/clientes/error"})

	if err := h.Error(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rr.name != view.PageError {
		t.Fatalf("expected error page, got %q", rr.name)
	}
	if got := rec.Header().Get(echo.HeaderCacheControl); got == "" || got[:8] != "no-store" {
		t.Fatalf("expected no-store cache control, got %q", got)
	}
}
