// Package docs holds the Swagger 2.0 document served under /swagger. It is
// kept in the layout `swag init -g cmd/api/main.go` writes, so regenerating
// from the handler annotations replaces it cleanly.
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
        "/api/apply": {
            "post": {
                "description": "Validates an IUL application and forwards it to the advisor inbox",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Submit an application",
                "parameters": [
                    {
                        "description": "Application",
                        "name": "data",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ApplicationSubmission"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/contact": {
            "post": {
                "description": "Validates a contact message and forwards it to the advisor inbox",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Send a contact inquiry",
                "parameters": [
                    {
                        "description": "Contact inquiry",
                        "name": "data",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ContactSubmission"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/schema/{form}": {
            "get": {
                "description": "Returns the JSON Schema, the field rules and, for apply, the wizard steps",
                "produces": ["application/json"],
                "tags": ["intake"],
                "summary": "Get form schema",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Form name (apply or contact)",
                        "name": "form",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SchemaResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handlers.SchemaResponse": {
            "type": "object",
            "properties": {
                "form": {"type": "string"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/schema.Rule"}},
                "schema": {"type": "object", "additionalProperties": true},
                "steps": {"type": "array", "items": {"$ref": "#/definitions/schema.Step"}}
            }
        },
        "models.ApplicationSubmission": {
            "type": "object",
            "properties": {
                "bestTimeToCall": {"type": "string"},
                "deathBenefitTarget": {"type": "string"},
                "dob": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "gender": {"type": "string"},
                "majorConditions": {"type": "string"},
                "monthlyContribution": {"type": "string"},
                "phone": {"type": "string"},
                "primaryGoal": {"type": "string"},
                "smokerStatus": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "models.ContactSubmission": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "message": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "schema.Rule": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "kind": {"type": "string"},
                "message": {"type": "string"},
                "minLength": {"type": "integer"},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "schema.Step": {
            "type": "object",
            "properties": {
                "fields": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"}
            }
        }
    },
    "tags": [
        {"description": "Application and contact submissions", "name": "intake"},
        {"description": "Health check operations", "name": "health"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lead Intake API",
	Description:      "Accepts IUL application and contact submissions from the advisor site, validates them against the shared field rules and forwards them to the advisor by email.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
