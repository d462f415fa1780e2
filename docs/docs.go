// Package docs registra la especificación Swagger que sirve /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "tags": [
        {"name": "pets", "description": "Registro, listados y ciclo de vida de mascotas"},
        {"name": "timeline", "description": "Historial de cambios de status"},
        {"name": "reunions", "description": "Pedidos de reencuentro entre finder y dueño"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"summary": "Health check", "responses": {"200": {"description": "ok"}}}
        },
        "/pets": {
            "get": {
                "tags": ["pets"],
                "summary": "Listado público por status",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["lost", "found", "found_by_community", "reunited"]},
                    {"name": "breed", "in": "query", "type": "string"},
                    {"name": "location", "in": "query", "type": "string"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}},
                    "400": {"description": "validation", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["pets"],
                "summary": "Registrar mascota",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Profile"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "validation", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "unauthenticated", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/pets/found": {
            "post": {
                "tags": ["pets"],
                "summary": "Reportar mascota encontrada",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "validation", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "tags": ["pets"],
                "summary": "Ver mascota",
                "parameters": [{"name": "petID", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "404": {"description": "not_found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "patch": {
                "tags": ["pets"],
                "summary": "Editar perfil",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "petID", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "403": {"description": "authorization", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Borrar mascota",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "petID", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "authorization", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/pets/{petID}/status": {
            "post": {
                "tags": ["pets"],
                "summary": "Cambiar status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "petID", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
                    "400": {"description": "validation", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "unauthenticated", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "403": {"description": "authorization", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "503": {"description": "storage", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/pets/{petID}/timeline": {
            "get": {
                "tags": ["timeline"],
                "summary": "Historial de status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "petID", "in": "path", "required": true, "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "until", "in": "query", "type": "string", "format": "date-time"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets/{petID}/reunion-requests": {
            "get": {
                "tags": ["reunions"],
                "summary": "Pedidos de reencuentro de una mascota",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "petID", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReunionRequest"}}}}
            }
        },
        "/me/pets": {
            "get": {
                "tags": ["pets"],
                "summary": "Mis mascotas",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}}}
            }
        },
        "/me/reunion-requests": {
            "get": {
                "tags": ["reunions"],
                "summary": "Mis pedidos de reencuentro",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "role", "in": "query", "type": "string", "enum": ["owner", "finder"]}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReunionRequest"}}}}
            }
        },
        "/reunion-requests/{requestID}": {
            "get": {
                "tags": ["reunions"],
                "summary": "Ver pedido",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "requestID", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ReunionRequest"}}}
            }
        },
        "/reunion-requests/{requestID}/approve": {
            "post": {
                "tags": ["reunions"],
                "summary": "Aprobar pedido",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "requestID", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReunionRequest"}},
                    "409": {"description": "conflict", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/reunion-requests/{requestID}/reject": {
            "post": {
                "tags": ["reunions"],
                "summary": "Rechazar pedido",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "requestID", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReunionRequest"}},
                    "409": {"description": "conflict", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Profile": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "type": {"type": "string"},
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "string"},
                "gender": {"type": "string"},
                "color": {"type": "string"},
                "size": {"type": "string"},
                "microchipId": {"type": "string"},
                "collar": {"type": "string"},
                "description": {"type": "string"},
                "specialFeatures": {"type": "string"},
                "imageUrl": {"type": "string"}
            }
        },
        "Pet": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string", "enum": ["registered", "lost", "found", "found_by_community", "reunited"]},
                "ownerId": {"type": "string"},
                "ownerName": {"type": "string"},
                "name": {"type": "string"},
                "lostReport": {"type": "object"},
                "foundReport": {"type": "object"},
                "allowedTransitions": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "TransitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"},
                "lostReport": {"type": "object"},
                "foundReport": {"type": "object"},
                "note": {"type": "string"}
            }
        },
        "ReunionRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "petId": {"type": "string"},
                "originalOwnerId": {"type": "string"},
                "finderId": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "message": {"type": "string"},
                "requestedAt": {"type": "string", "format": "date-time"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "kind": {"type": "string"},
                        "field": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
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
	Title:            "PetPals API",
	Description:      "Ciclo de vida de mascotas perdidas/encontradas y reencuentros.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
