// Package docs holds the Swagger 2.0 document served under /swagger/*. It is
// maintained by hand alongside the handler annotations and registered with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/clientes": {
            "get": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "List customers",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/clientes/crear": {
            "get": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "New customer form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Create customer",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "nombre", "in": "formData", "required": true},
                    {"type": "string", "description": "Address", "name": "domicilio", "in": "formData", "required": true},
                    {"type": "string", "description": "Phone", "name": "telefono", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData"}
                ],
                "responses": {"303": {"description": "See Other"}, "422": {"description": "Unprocessable Entity"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/clientes/eliminar/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Delete confirmation",
                "parameters": [{"type": "integer", "description": "Cliente ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/clientes/eliminarConfirmado/{id}": {
            "post": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Delete customer",
                "parameters": [{"type": "integer", "description": "Cliente ID", "name": "id", "in": "path", "required": true}],
                "responses": {"303": {"description": "See Other"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/clientes/error": {
            "get": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Error page",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/clientes/index": {
            "get": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Customer index",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/clientes/modificar/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Edit customer form",
                "parameters": [{"type": "integer", "description": "Cliente ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["clientes"],
                "summary": "Update customer",
                "parameters": [
                    {"type": "integer", "description": "Cliente ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Name", "name": "nombre", "in": "formData", "required": true},
                    {"type": "string", "description": "Address", "name": "domicilio", "in": "formData", "required": true},
                    {"type": "string", "description": "Phone", "name": "telefono", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData"}
                ],
                "responses": {"303": {"description": "See Other"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "User name", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "form re-rendered with an error message", "schema": {"type": "string"}}, "303": {"description": "See Other"}}
            }
        },
        "/login/logout": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"303": {"description": "See Other"}, "500": {"description": "Internal Server Error"}}
            }
        }
    },
    "definitions": {
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Clientes Admin",
	Description:      "Server-rendered administration site for customers, with session login and Admin/Regular roles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
