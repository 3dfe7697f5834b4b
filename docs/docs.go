// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
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
        "/review": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["review"],
                "summary": "Review a document",
                "parameters": [
                    {
                        "description": "File id and extracted pages",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.ReviewRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Model output with review metadata merged in", "schema": {"$ref": "#/definitions/handler.ReviewEnvelopeDoc"}},
                    "400": {"description": "No pages, blank page or missing file_id", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Model collaborator failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/compare": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["compare"],
                "summary": "Compare two contracts",
                "parameters": [
                    {"type": "file", "description": "First contract", "name": "contractA", "in": "formData", "required": true},
                    {"type": "file", "description": "Second contract", "name": "contractB", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Model output with comparison metadata merged in", "schema": {"$ref": "#/definitions/handler.CompareEnvelopeDoc"}},
                    "400": {"description": "Missing identity, missing file, or no text extracted", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Scanner or model collaborator failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.ReviewRequest": {
            "type": "object",
            "properties": {
                "file_id": {"type": "string"},
                "pages": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.ReviewEnvelopeDoc": {
            "type": "object",
            "properties": {
                "analysis_result_id": {"type": "string"},
                "document_id": {"type": "string"},
                "file_id": {"type": "string"},
                "save_error": {"type": "string"},
                "saved_to_database": {"type": "boolean"}
            }
        },
        "handler.CompareEnvelopeDoc": {
            "type": "object",
            "properties": {
                "comparison_timestamp": {"type": "string", "example": "2026-05-01T07:00:00Z"},
                "contractA_filename": {"type": "string"},
                "contractB_filename": {"type": "string"},
                "user_uuid": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "ApiKeyAuth": {"type": "apiKey", "name": "apikey", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Document Review API",
	Description:      "Orchestrates document scanning, model analysis and result storage for contract review and comparison.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
