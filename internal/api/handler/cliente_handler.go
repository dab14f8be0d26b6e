package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/api/metrics"
	"github.com/tl2/clientes-admin/internal/api/middleware"
	"github.com/tl2/clientes-admin/internal/api/view"
	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/core/ports"
	"github.com/tl2/clientes-admin/internal/session"
)

type ClienteHandler struct {
	repo ports.ClienteRepository
	log  zerolog.Logger
}

func NewClienteHandler(repo ports.ClienteRepository, log zerolog.Logger) *ClienteHandler {
	return &ClienteHandler{repo: repo, log: log}
}

// List renders the read-only customer listing.
//
// @Summary      List customers
// @Tags         clientes
// @Produce      html
// @Success      200
// @Failure      500
// @Router       /clientes [get]
func (h *ClienteHandler) List(c echo.Context) error {
	clientes, err := h.repo.ObtenerClientes(c.Request().Context())
	if err != nil {
		return h.failed(c, "list", 0, err)
	}
	metrics.ClienteOperationsTotal.WithLabelValues("list", "success").Inc()
	return c.Render(http.StatusOK, view.PageClientesListar, ClientesViewModel{Clientes: clientes})
}

// Index renders the main customer page. Admins also get the edit links, and a
// pending flash message is shown once.
//
// @Summary      Customer index
// @Tags         clientes
// @Produce      html
// @Success      200
// @Failure      500
// @Router       /clientes/index [get]
func (h *ClienteHandler) Index(c echo.Context) error {
	s := session.From(c)
	flash := s.Flash()

	clientes, err := h.repo.ObtenerClientes(c.Request().Context())
	if err != nil {
		return h.failed(c, "list", 0, err)
	}
	metrics.ClienteOperationsTotal.WithLabelValues("list", "success").Inc()
	return c.Render(http.StatusOK, view.PageClientesIndex, ClientesViewModel{
		Clientes:     clientes,
		Admin:        s.Rol() == domain.RoleAdmin.String(),
		Username:     s.Username(),
		ErrorMessage: flash,
	})
}

// CreateForm renders an empty customer form.
//
// @Summary      New customer form
// @Tags         clientes
// @Produce      html
// @Success      200
// @Router       /clientes/crear [get]
func (h *ClienteHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageClientesCrear, ClienteFormViewModel{CSRF: csrfToken(c)})
}

// Create validates the submitted form and stores a new customer.
//
// @Summary      Create customer
// @Tags         clientes
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        nombre     formData  string  true   "Name"
// @Param        domicilio  formData  string  true   "Address"
// @Param        telefono   formData  string  true   "Phone"
// @Param        email      formData  string  false  "Email"
// @Success      303
// @Failure      422
// @Failure      500
// @Router       /clientes/crear [post]
func (h *ClienteHandler) Create(c echo.Context) error {
	var form clienteForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form = form.normalized()
	cliente := form.toDomain(0)

	if errs, err := validate(c, form); err != nil {
		return err
	} else if errs != nil {
		metrics.ClienteOperationsTotal.WithLabelValues("create", "invalid").Inc()
		return c.Render(http.StatusUnprocessableEntity, view.PageClientesCrear, ClienteFormViewModel{
			Cliente: cliente,
			Errors:  errs,
			CSRF:    csrfToken(c),
		})
	}

	if err := h.repo.CrearCliente(c.Request().Context(), &cliente); err != nil {
		return h.failed(c, "create", 0, err)
	}

	metrics.ClienteOperationsTotal.WithLabelValues("create", "success").Inc()
	h.log.Info().Int("cliente_id", cliente.ID).Str("username", session.From(c).Username()).Msg("cliente created")
	return c.Redirect(http.StatusSeeOther, middleware.DefaultListPath)
}

// EditForm renders the form for an existing customer.
//
// @Summary      Edit customer form
// @Tags         clientes
// @Produce      html
// @Param        id   path  int  true  "Cliente ID"
// @Success      200
// @Failure      404
// @Failure      500
// @Router       /clientes/modificar/{id} [get]
func (h *ClienteHandler) EditForm(c echo.Context) error {
	return h.renderExisting(c, "get", view.PageClientesEditar)
}

// Update validates the submitted form and replaces the stored customer.
//
// @Summary      Update customer
// @Tags         clientes
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        id         path      int     true   "Cliente ID"
// @Param        nombre     formData  string  true   "Name"
// @Param        domicilio  formData  string  true   "Address"
// @Param        telefono   formData  string  true   "Phone"
// @Param        email      formData  string  false  "Email"
// @Success      303
// @Failure      404
// @Failure      422
// @Failure      500
// @Router       /clientes/modificar/{id} [post]
func (h *ClienteHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return RenderNotFound(c)
	}

	var form clienteForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form = form.normalized()
	cliente := form.toDomain(id)

	if errs, err := validate(c, form); err != nil {
		return err
	} else if errs != nil {
		metrics.ClienteOperationsTotal.WithLabelValues("update", "invalid").Inc()
		return c.Render(http.StatusUnprocessableEntity, view.PageClientesEditar, ClienteFormViewModel{
			Cliente: cliente,
			Errors:  errs,
			CSRF:    csrfToken(c),
		})
	}

	if err := h.repo.ModificarCliente(c.Request().Context(), id, &cliente); err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			metrics.ClienteOperationsTotal.WithLabelValues("update", "not_found").Inc()
			return RenderNotFound(c)
		}
		return h.failed(c, "update", id, err)
	}

	metrics.ClienteOperationsTotal.WithLabelValues("update", "success").Inc()
	h.log.Info().Int("cliente_id", id).Str("username", session.From(c).Username()).Msg("cliente updated")
	return c.Redirect(http.StatusSeeOther, middleware.DefaultListPath)
}

// DeleteConfirm renders the delete confirmation page.
//
// @Summary      Delete confirmation
// @Tags         clientes
// @Produce      html
// @Param        id   path  int  true  "Cliente ID"
// @Success      200
// @Failure      404
// @Failure      500
// @Router       /clientes/eliminar/{id} [get]
func (h *ClienteHandler) DeleteConfirm(c echo.Context) error {
	return h.renderExisting(c, "get", view.PageClientesBorrar)
}

// DeleteConfirmed removes the customer. The id is not looked up first.
//
// @Summary      Delete customer
// @Tags         clientes
// @Produce      html
// @Param        id   path  int  true  "Cliente ID"
// @Success      303
// @Failure      404
// @Failure      500
// @Router       /clientes/eliminarConfirmado/{id} [post]
func (h *ClienteHandler) DeleteConfirmed(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return RenderNotFound(c)
	}

	if err := h.repo.EliminarCliente(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			metrics.ClienteOperationsTotal.WithLabelValues("delete", "not_found").Inc()
			return RenderNotFound(c)
		}
		return h.failed(c, "delete", id, err)
	}

	metrics.ClienteOperationsTotal.WithLabelValues("delete", "success").Inc()
	h.log.Info().Int("cliente_id", id).Str("username", session.From(c).Username()).Msg("cliente deleted")
	return c.Redirect(http.StatusSeeOther, middleware.DefaultListPath)
}

// Error renders the generic error page. It is never cached.
//
// @Summary      Error page
// @Tags         clientes
// @Produce      html
// @Success      200
// @Router       /clientes/error [get]
func (h *ClienteHandler) Error(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	return RenderError(c, http.StatusOK)
}

// renderExisting loads the :id customer and renders page with it.
func (h *ClienteHandler) renderExisting(c echo.Context, op, page string) error {
	id, ok := pathID(c)
	if !ok {
		return RenderNotFound(c)
	}

	cliente, err := h.repo.ObtenerCliente(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			metrics.ClienteOperationsTotal.WithLabelValues(op, "not_found").Inc()
			return RenderNotFound(c)
		}
		return h.failed(c, op, id, err)
	}

	metrics.ClienteOperationsTotal.WithLabelValues(op, "success").Inc()
	return c.Render(http.StatusOK, page, ClienteFormViewModel{Cliente: *cliente, CSRF: csrfToken(c)})
}

// failed logs a repository failure and answers with the generic error page.
func (h *ClienteHandler) failed(c echo.Context, op string, id int, err error) error {
	metrics.ClienteOperationsTotal.WithLabelValues(op, "error").Inc()

	evt := h.log.Error().Err(err).Str("operation", op).Str("request_id", requestID(c))
	if id != 0 {
		evt = evt.Int("cliente_id", id)
	}
	evt.Msg("cliente repository failure")

	return RenderError(c, http.StatusInternalServerError)
}

// validate runs the echo validator over form. Field violations come back as
// FieldErrors; the second return is set only when validation itself broke.
func validate(c echo.Context, form clienteForm) (FieldErrors, error) {
	err := c.Validate(form)
	if err == nil {
		return nil, nil
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, nil
	}
	return nil, err
}
