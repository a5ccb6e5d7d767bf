package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Shoot Scheduler API",
        "description": "Weekly shoot-day scheduling for Abu Dhabi campaign filming",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Scheduling runs, filming date advice and plan exports"},
        {"name": "Campaigns", "description": "Campaign intake and lookup"},
        {"name": "Holidays", "description": "Public holiday administration"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/schedule/runs": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Execute a scheduling run over the pending campaign pool",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/ScheduleRunRequest"}}
                ],
                "responses": {
                    "200": {"description": "Run outcome", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/filming-date": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Advise a filming date for a campaign being created",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FilmingDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Advised date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/plan": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Preview the schedule a run would produce, without persisting",
                "responses": {
                    "200": {"description": "Plan preview", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/plan/export": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Render the current plan preview as a downloadable file",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Signed download reference", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/export/{token}": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Download a previously rendered plan export",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "404": {"description": "Export not found or expired"}
                }
            }
        },
        "/campaigns": {
            "get": {
                "tags": ["Campaigns"],
                "summary": "List campaigns",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "location", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Campaign page", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Campaigns"],
                "summary": "Create a campaign in the pending pool",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCampaignRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate task id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/campaigns/{taskId}": {
            "get": {
                "tags": ["Campaigns"],
                "summary": "Get a campaign by task id",
                "parameters": [
                    {"name": "taskId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Campaign", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays": {
            "get": {
                "tags": ["Holidays"],
                "summary": "List public holidays",
                "responses": {
                    "200": {"description": "Holidays", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Holidays"],
                "summary": "Register a public holiday",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateHolidayRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays/{id}": {
            "delete": {
                "tags": ["Holidays"],
                "summary": "Remove a public holiday",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        }
    },
    "definitions": {
        "ScheduleRunRequest": {
            "type": "object",
            "properties": {
                "dry_run": {"type": "boolean"}
            }
        },
        "FilmingDateRequest": {
            "type": "object",
            "required": ["location", "campaign_start_date"],
            "properties": {
                "location": {"type": "string"},
                "campaign_start_date": {"type": "string", "example": "17-03-2026"},
                "campaign_end_date": {"type": "string", "example": "16-04-2026"},
                "task_type": {"type": "string"},
                "time_block": {"type": "string", "enum": ["day", "night", "both"]}
            }
        },
        "CreateCampaignRequest": {
            "type": "object",
            "required": ["task_id", "brand", "location", "campaign_start_date"],
            "properties": {
                "task_id": {"type": "string"},
                "brand": {"type": "string"},
                "location": {"type": "string"},
                "sales_person": {"type": "string"},
                "task_type": {"type": "string"},
                "campaign_start_date": {"type": "string", "example": "17-03-2026"},
                "campaign_end_date": {"type": "string", "example": "16-04-2026"},
                "time_block": {"type": "string", "enum": ["day", "night", "both"]}
            }
        },
        "CreateHolidayRequest": {
            "type": "object",
            "required": ["date", "name"],
            "properties": {
                "date": {"type": "string", "example": "02-12-2026"},
                "name": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
