// Package docs holds the Swagger document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "security": [{"BearerAuth": []}],
    "paths": {
        "/dashboard": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard overview",
                "description": "Overdue, today and upcoming sections in one response; a failing section reports its own error",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 7, "name": "days_ahead", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OverviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/dashboard/tasks": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Dashboard section",
                "description": "Tasks of one due-date window measured from the start of today",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "default": "all", "enum": ["overdue", "today", "upcoming", "all"], "name": "section", "in": "query"},
                    {"type": "integer", "default": 7, "name": "days_ahead", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "maximum": 100, "name": "limit", "in": "query"},
                    {"type": "string", "default": "due_date.asc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TaskPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["tasks"],
                "summary": "List tasks",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "format": "uuid", "name": "space_id", "in": "query"},
                    {"type": "string", "enum": ["pending", "postponed"], "name": "status", "in": "query"},
                    {"type": "string", "format": "date-time", "name": "due_before", "in": "query"},
                    {"type": "string", "format": "date-time", "name": "due_after", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "string", "default": "recurrence.asc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TaskPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Page out of range", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["tasks"],
                "summary": "Create a custom task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Task"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Space not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["tasks"],
                "summary": "Get task by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "patch": {
                "tags": ["tasks"],
                "summary": "Change a task's recurrence",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/EditRecurrenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Invalid recurrence", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/tasks/{id}/complete": {
            "post": {
                "tags": ["tasks"],
                "summary": "Complete a task",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/CompleteTaskRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/postpone": {
            "post": {
                "tags": ["tasks"],
                "summary": "Postpone a task by one day",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Postponement limit reached", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/motivational-messages/generate": {
            "post": {
                "tags": ["motivation"],
                "summary": "Generate a motivational message for a task",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/GenerateMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MotivationalMessage"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Generator unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/motivational-messages/latest": {
            "get": {
                "tags": ["motivation"],
                "summary": "Latest motivational message of a task",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MotivationalMessage"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/spaces": {
            "get": {
                "tags": ["spaces"],
                "summary": "List spaces",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "string", "default": "created_at.desc", "name": "sort", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["spaces"],
                "summary": "Create a space",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateSpaceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Space"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/spaces/{id}": {
            "get": {
                "tags": ["spaces"],
                "summary": "Get space by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Space"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "patch": {
                "tags": ["spaces"],
                "summary": "Rename a space or change its icon",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateSpaceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Space"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["spaces"],
                "summary": "Delete a space and its tasks",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/spaces/{id}/tasks/bulk-from-templates": {
            "post": {
                "tags": ["spaces"],
                "summary": "Create tasks from templates",
                "description": "Each item succeeds or fails on its own; results keep the order of the request",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/BulkProvisionRequest"}}
                ],
                "responses": {
                    "207": {"description": "Multi-Status", "schema": {"$ref": "#/definitions/BulkResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Space not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/space-types": {
            "get": {
                "tags": ["catalog"],
                "summary": "List space types",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/task-templates": {
            "get": {
                "tags": ["catalog"],
                "summary": "List task templates",
                "parameters": [{"type": "string", "name": "space_type", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "example": "task_not_found"},
                        "message": {"type": "string"},
                        "details": {"type": "array", "items": {"type": "object"}}
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "Space": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "user_id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "space_type": {"type": "string"},
                "icon": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "space_id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "recurrence_value": {"type": "integer"},
                "recurrence_unit": {"type": "string", "enum": ["days", "months"]},
                "due_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["pending", "postponed"]},
                "postponement_count": {"type": "integer", "maximum": 3},
                "last_completed_at": {"type": "string", "format": "date-time"},
                "space": {
                    "type": "object",
                    "properties": {
                        "id": {"type": "string", "format": "uuid"},
                        "name": {"type": "string"},
                        "space_type": {"type": "string"},
                        "icon": {"type": "string"}
                    }
                }
            }
        },
        "TaskPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Task"}},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        },
        "OverviewResponse": {
            "type": "object",
            "properties": {
                "generated_at": {"type": "string", "format": "date-time"},
                "overdue": {"$ref": "#/definitions/SectionPayload"},
                "today": {"$ref": "#/definitions/SectionPayload"},
                "upcoming": {"$ref": "#/definitions/SectionPayload"}
            }
        },
        "SectionPayload": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Task"}},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "error": {"$ref": "#/definitions/ErrorResponse/properties/error"}
            }
        },
        "CreateSpaceRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "space_type": {"type": "string"},
                "icon": {"type": "string"}
            }
        },
        "UpdateSpaceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "icon": {"type": "string"}
            }
        },
        "CreateTaskRequest": {
            "type": "object",
            "required": ["space_id", "name", "recurrence_value", "recurrence_unit"],
            "properties": {
                "space_id": {"type": "string", "format": "uuid"},
                "name": {"type": "string", "maxLength": 200},
                "recurrence_value": {"type": "integer", "minimum": 1},
                "recurrence_unit": {"type": "string", "enum": ["days", "months"]}
            }
        },
        "EditRecurrenceRequest": {
            "type": "object",
            "required": ["recurrence_value", "recurrence_unit"],
            "properties": {
                "recurrence_value": {"type": "integer", "minimum": 1},
                "recurrence_unit": {"type": "string", "enum": ["days", "months"]}
            }
        },
        "CompleteTaskRequest": {
            "type": "object",
            "properties": {
                "completed_at": {"type": "string", "format": "date-time"}
            }
        },
        "BulkProvisionRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {
                    "type": "array",
                    "maxItems": 50,
                    "items": {
                        "type": "object",
                        "required": ["template_id"],
                        "properties": {
                            "template_id": {"type": "string", "format": "uuid"},
                            "override_recurrence_value": {"type": "integer", "minimum": 1},
                            "override_recurrence_unit": {"type": "string", "enum": ["days", "months"]}
                        }
                    }
                }
            }
        },
        "BulkResponse": {
            "type": "object",
            "properties": {
                "results": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "status": {"type": "integer", "enum": [201, 404, 409, 500]},
                            "task": {"$ref": "#/definitions/Task"},
                            "error": {
                                "type": "object",
                                "properties": {
                                    "code": {"type": "string"},
                                    "message": {"type": "string"},
                                    "template_id": {"type": "string", "format": "uuid"}
                                }
                            }
                        }
                    }
                }
            }
        },
        "GenerateMessageRequest": {
            "type": "object",
            "required": ["task_name", "tone"],
            "properties": {
                "task_name": {"type": "string", "maxLength": 200},
                "tone": {"type": "string", "enum": ["encouraging", "playful", "neutral"]},
                "max_length": {"type": "integer", "minimum": 10, "maximum": 150}
            }
        },
        "MotivationalMessage": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "task_id": {"type": "string", "format": "uuid"},
                "message_text": {"type": "string"},
                "generated_at": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Housekeep API",
	Description:      "Recurring household chores organised by space, with a due-date dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
