// Package docs holds the swagger document served at /swagger.
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
        "/health": {
            "get": {
                "description": "Fixed liveness payload",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpserver.HealthResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {"200": {"description": "API is ready", "schema": {"type": "object"}}}
            }
        },
        "/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive", "schema": {"type": "object"}}}
            }
        },
        "/webhook": {
            "post": {
                "description": "Receives GitHub webhook deliveries. Only pull_request events are processed; the response is always {\"status\":\"accepted\"}.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Webhook"],
                "summary": "GitHub webhook",
                "parameters": [
                    {"type": "string", "description": "GitHub event type", "name": "X-GitHub-Event", "in": "header", "required": true},
                    {"type": "string", "description": "Delivery id", "name": "X-GitHub-Delivery", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Ack"}}
                }
            }
        },
        "/tracker/sync": {
            "post": {
                "description": "Moves tasks whose key matches a branch recently merged into the target branch to \"Ready For QA\".",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tracker"],
                "summary": "Run the Ready For QA sync",
                "parameters": [
                    {"description": "Overrides of the configured sync input", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/api.SyncRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/tracker/tasks/{key}/status": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tracker"],
                "summary": "Update one task's status",
                "parameters": [
                    {"type": "string", "description": "Task key, e.g. PRJ-T12", "name": "key", "in": "path", "required": true},
                    {"description": "Target status and optional comment", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/api.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        }
    },
    "definitions": {
        "api.SyncRequest": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"},
                "lookback_days": {"type": "integer"},
                "repository": {"type": "string"},
                "target_branch": {"type": "string"}
            }
        },
        "api.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "httpserver.HealthResponse": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "response.Ack": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "data": {},
                "error_code": {"type": "integer"},
                "errors": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "GitHub PR Watcher API",
	Description:      "Posts GitHub pull request activity to Slack and syncs merged branches to Zoho Projects.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
