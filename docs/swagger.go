package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Service health",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "description": "Returns an access/refresh token pair. totp_code is required once 2FA is enabled.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/laptops": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["laptops"],
                "summary": "List laptops",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "available, assigned, maintenance or retired", "name": "status", "in": "query"},
                    {"type": "string", "description": "Exact brand, case insensitive", "name": "brand", "in": "query"},
                    {"type": "string", "description": "Matches brand, model or serial number", "name": "search", "in": "query"},
                    {"type": "integer", "description": "Page, 1-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, max 100", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.PaginatedResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["laptops"],
                "summary": "Create a laptop",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateLaptopRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/laptops/{id}/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["laptops"],
                "summary": "Laptop history",
                "description": "Assignments, maintenance records and issues of one laptop.",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Laptop id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/employees/{id}/assignments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["employees"],
                "summary": "Assignments of an employee",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Employee id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "active or returned", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.PaginatedResponse"}}
                }
            }
        },
        "/api/assignments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assignments"],
                "summary": "Assign a laptop",
                "description": "The laptop must be available and the employee active.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateAssignmentRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/assignments/{id}/return": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assignments"],
                "summary": "Return an assigned laptop",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Assignment id", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/models.ReturnAssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/responses.StandardResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "trace_id": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/errors.ValidationError"}}
            }
        },
        "errors.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "responses.StandardResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "trace_id": {"type": "string"}
            }
        },
        "responses.PaginatedResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "pagination": {"$ref": "#/definitions/responses.PaginationMeta"},
                "timestamp": {"type": "string"},
                "trace_id": {"type": "string"}
            }
        },
        "responses.PaginationMeta": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "total_records": {"type": "integer"},
                "has_next": {"type": "boolean"},
                "has_prev": {"type": "boolean"}
            }
        },
        "models.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string", "minLength": 8}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "totp_code": {"type": "string"}
            }
        },
        "models.CreateLaptopRequest": {
            "type": "object",
            "required": ["brand", "model", "serial_number"],
            "properties": {
                "brand": {"type": "string"},
                "model": {"type": "string"},
                "serial_number": {"type": "string"},
                "specs": {"type": "object"},
                "purchase_date": {"type": "string"},
                "purchase_price": {"type": "string"},
                "warranty_expiry": {"type": "string"},
                "status": {"type": "string", "enum": ["available", "maintenance", "retired"]},
                "location": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "models.CreateAssignmentRequest": {
            "type": "object",
            "required": ["laptop_id", "employee_id"],
            "properties": {
                "laptop_id": {"type": "string"},
                "employee_id": {"type": "string"},
                "assigned_date": {"type": "string"},
                "expected_return": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "models.ReturnAssignmentRequest": {
            "type": "object",
            "properties": {
                "return_date": {"type": "string"},
                "condition": {"type": "string"},
                "notes": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "laptrack API",
	Description:      "Laptop inventory, assignment, maintenance and issue tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
