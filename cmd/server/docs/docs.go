// Package docs registers the OpenAPI document for the server with swag so
// http-swagger can serve it at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "http://github.com/icco/gamecrm"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Renders every Games record (first page of 100). Upstream failures render an empty list.",
                "produces": ["text/html"],
                "tags": ["games"],
                "summary": "List games",
                "responses": {
                    "200": {"description": "HTML list page", "schema": {"type": "string"}}
                }
            }
        },
        "/update-cobj": {
            "get": {
                "description": "Renders the form with option catalogs and the existing games. ` + "`selected`" + ` pre-fills the form from that record.",
                "produces": ["text/html"],
                "tags": ["games"],
                "summary": "Create / update form",
                "parameters": [
                    {"type": "string", "description": "Game id to edit", "name": "selected", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML form page", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "With no existing_id a record is created, otherwise that record is updated. Accepts form or JSON bodies.",
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "tags": ["games"],
                "summary": "Create or update a game",
                "parameters": [
                    {"type": "string", "description": "Id of the record to update", "name": "existing_id", "in": "formData"},
                    {"type": "string", "description": "Game name", "name": "game_name", "in": "formData", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Platforms", "name": "platform_availability", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Redirect to / on success, /update-cobj on failure", "schema": {"type": "string"}}
                }
            }
        },
        "/delete-cobj/{id}": {
            "delete": {
                "description": "Deletes the record. Upstream errors are passed through with their status.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Delete a game",
                "parameters": [
                    {"type": "string", "description": "Game id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No content", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns service health status",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "main.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "missing game id"}
            }
        },
        "main.HealthResponse": {
            "type": "object",
            "properties": {
                "branch": {"type": "string"},
                "healthy": {"type": "string"},
                "revision": {"type": "string"},
                "tag": {"type": "string"}
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
	Title:            "Games CRM",
	Description:      "Lists, creates, updates and deletes Games records stored in a HubSpot custom object.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
