package handler

import "github.com/tl2/clientes-admin/internal/core/domain"

// LoginViewModel backs the login page.
type LoginViewModel struct {
	Username        string
	IsAuthenticated bool
	ErrorMessage    string
	CSRF            string
}

// ClientesViewModel backs both listing pages.
type ClientesViewModel struct {
	Clientes     []domain.Cliente
	Admin        bool
	Username     string
	ErrorMessage string
}

// ClienteFormViewModel backs the create, edit and delete pages. On a failed
// submission Cliente holds exactly what the user sent.
type ClienteFormViewModel struct {
	Cliente domain.Cliente
	Errors  FieldErrors
	CSRF    string
}

// ErrorViewModel carries the correlation id shown on the error pages.
type ErrorViewModel struct {
	RequestID string
}
