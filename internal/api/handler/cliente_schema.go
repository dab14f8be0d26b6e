package handler

import (
	"strings"

	"github.com/tl2/clientes-admin/internal/core/domain"
)

// clienteForm is the body of the create and update forms.
type clienteForm struct {
	Nombre    string `form:"nombre"    validate:"required,max=100"`
	Domicilio string `form:"domicilio" validate:"required,max=200"`
	Telefono  string `form:"telefono"  validate:"required,phone"`
	Email     string `form:"email"     validate:"omitempty,email,max=120"`
}

// normalized trims surrounding whitespace so a blank field fails "required".
func (f clienteForm) normalized() clienteForm {
	return clienteForm{
		Nombre:    strings.TrimSpace(f.Nombre),
		Domicilio: strings.TrimSpace(f.Domicilio),
		Telefono:  strings.TrimSpace(f.Telefono),
		Email:     strings.TrimSpace(f.Email),
	}
}

func (f clienteForm) toDomain(id int) domain.Cliente {
	return domain.Cliente{
		ID:        id,
		Nombre:    f.Nombre,
		Domicilio: f.Domicilio,
		Telefono:  f.Telefono,
		Email:     f.Email,
	}
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
