package domain

import "errors"

var ErrClienteNotFound = errors.New("cliente not found")

// Cliente is a customer record. ID is assigned by storage on creation.
type Cliente struct {
	ID        int    `json:"id"        bson:"_id"`
	Nombre    string `json:"nombre"    bson:"nombre"`
	Domicilio string `json:"domicilio" bson:"domicilio"`
	Telefono  string `json:"telefono"  bson:"telefono"`
	Email     string `json:"email"     bson:"email,omitempty"`
}
