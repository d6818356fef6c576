// Package docs holds the OpenAPI 2.0 document for the routes under the API
// base path and registers it with swag for gin-swagger. It follows the swag
// output layout and mirrors the general info in cmd/portfolio/main.go and
// the handler annotations; `swag init -g cmd/portfolio/main.go
// --parseInternal` rebuilds it when those change.
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
        "/contact": {
            "post": {
                "description": "Stores a message for the site owner and returns its id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Contact"],
                "summary": "Send a contact message",
                "operationId": "sendContactMessage",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Idempotency key for safe retries",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Message",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ContactRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ContactResponse"}},
                    "400": {"description": "Validation failed or malformed body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/guestbook": {
            "get": {
                "description": "Returns every entry, newest first. Responses carry a weak ETag;\nsend it back in If-None-Match to get 304 when nothing changed.",
                "produces": ["application/json"],
                "tags": ["Guestbook"],
                "summary": "List guestbook entries",
                "operationId": "listGuestbookEntries",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ETag from a previous response",
                        "name": "If-None-Match",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.GuestbookEntry"}}},
                    "304": {"description": "Not modified"},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores a public guestbook entry and returns it with its id and timestamp.\nSupports idempotency via the Idempotency-Key header (same key → same entry).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Guestbook"],
                "summary": "Sign the guestbook",
                "operationId": "createGuestbookEntry",
                "parameters": [
                    {
                        "type": "string",
                        "example": "7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab",
                        "description": "Idempotency key for safe retries",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Entry",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.CreateGuestbookRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.GuestbookEntry"}},
                    "400": {"description": "Validation failed or malformed body", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Body too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "description": "Returns project cards in catalog order. category and tag filter\ncase-insensitively; empty values match everything.",
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "List project summaries",
                "operationId": "listProjects",
                "parameters": [
                    {"type": "string", "example": "Brand Identity", "description": "Category", "name": "category", "in": "query"},
                    {"type": "string", "example": "Packaging", "description": "Tag", "name": "tag", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Summary"}}}
                }
            }
        },
        "/projects/slugs": {
            "get": {
                "description": "Returns every slug in catalog order, for static path generation.",
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "List project slugs",
                "operationId": "listProjectSlugs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/projects/{slug}": {
            "get": {
                "description": "Returns the full project record with previous/next navigation.",
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Get a project",
                "operationId": "getProject",
                "parameters": [
                    {"type": "string", "example": "urban-roots-coffee", "description": "Project slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectResponse"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.Metric": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "catalog.Outcome": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "metrics": {"type": "array", "items": {"$ref": "#/definitions/catalog.Metric"}}
            }
        },
        "catalog.Overview": {
            "type": "object",
            "properties": {
                "client": {"type": "string"},
                "deliverables": {"type": "array", "items": {"type": "string"}},
                "duration": {"type": "string"},
                "problem": {"type": "string"},
                "role": {"type": "string"},
                "solution": {"type": "string"}
            }
        },
        "catalog.ProcessStep": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"}
            }
        },
        "catalog.Project": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "gallery": {"type": "array", "items": {"type": "string"}},
                "heroImage": {"type": "string"},
                "id": {"type": "integer"},
                "nextProjectSlug": {"type": "string"},
                "outcome": {"$ref": "#/definitions/catalog.Outcome"},
                "overview": {"$ref": "#/definitions/catalog.Overview"},
                "prevProjectSlug": {"type": "string"},
                "process": {"type": "array", "items": {"$ref": "#/definitions/catalog.ProcessStep"}},
                "slug": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "thumbnailImage": {"type": "string"},
                "title": {"type": "string"},
                "year": {"type": "string"}
            }
        },
        "catalog.Summary": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "color": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "thumbnailImage": {"type": "string"},
                "title": {"type": "string"},
                "year": {"type": "string"}
            }
        },
        "domain.GuestbookEntry": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "message": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handlers.ContactRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ada@example.com"},
                "message": {"type": "string", "example": "I'd like to talk about a new brand identity."},
                "name": {"type": "string", "example": "Ada Lovelace"}
            }
        },
        "handlers.ContactResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "0b7e5d3c-2f1a-4c59-9f0e-1d2c3b4a5e6f"},
                "message": {"type": "string", "example": "Message sent successfully"}
            }
        },
        "handlers.CreateGuestbookRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Lovely work on the coffee rebrand!"},
                "name": {"type": "string", "example": "Ada Lovelace"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"description": "Stable, machine-readable code (see errors.go)", "type": "string", "example": "missing_field"},
                "error": {"description": "Human-readable message, safe to show to visitors", "type": "string", "example": "Name and message are required"},
                "request_id": {"description": "Correlates server logs and client errors", "type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"}
            }
        },
        "handlers.ProjectResponse": {
            "type": "object",
            "properties": {
                "next": {"$ref": "#/definitions/catalog.Summary"},
                "prev": {"$ref": "#/definitions/catalog.Summary"},
                "project": {"$ref": "#/definitions/catalog.Project"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Portfolio API",
	Description:      "Guestbook, contact form and project catalog for the portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
