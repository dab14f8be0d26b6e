package mysql

import "github.com/tl2/clientes-admin/internal/core/domain"

type clienteRecord struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Nombre    string `gorm:"size:100;not null;index"`
	Domicilio string `gorm:"size:200;not null"`
	Telefono  string `gorm:"size:30;not null"`
	Email     string `gorm:"size:120"`
}

func (clienteRecord) TableName() string {
	return "clientes"
}

func newClienteRecord(c *domain.Cliente) clienteRecord {
	return clienteRecord{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Domicilio: c.Domicilio,
		Telefono:  c.Telefono,
		Email:     c.Email,
	}
}

func (r clienteRecord) toDomain() domain.Cliente {
	return domain.Cliente{
		ID:        r.ID,
		Nombre:    r.Nombre,
		Domicilio: r.Domicilio,
		Telefono:  r.Telefono,
		Email:     r.Email,
	}
}

type usuarioRecord struct {
	Username     string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"size:100;not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'Regular'"`
}

func (usuarioRecord) TableName() string {
	return "usuarios"
}

func (r usuarioRecord) toDomain() *domain.User {
	return &domain.User{
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Rol:          domain.ParseRole(r.Rol),
	}
}
