// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Site statistics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DashboardStats"}}
                }
            }
        },
        "/api/players": {
            "get": {
                "tags": ["Players"],
                "summary": "List players",
                "produces": ["application/json"],
                "responses": {"200": {"description": "players", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Players"],
                "summary": "Create a player",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "player", "required": true, "schema": {"$ref": "#/definitions/services.PlayerInput"}}
                ],
                "responses": {
                    "201": {"description": "player", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/players/top": {
            "get": {
                "tags": ["Players"],
                "summary": "Top player",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "player", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/players/{id}": {
            "get": {
                "tags": ["Players"],
                "summary": "Get a player",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "player", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Players"],
                "summary": "Update a player",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "player", "required": true, "schema": {"$ref": "#/definitions/services.PlayerInput"}}
                ],
                "responses": {"200": {"description": "player", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Players"],
                "summary": "Delete a player",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/players/{id}/avatar": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Players"],
                "summary": "Upload a player avatar",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "avatar", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "player", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Avatar storage not configured", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/matches": {
            "get": {
                "tags": ["Matches"],
                "summary": "List matches",
                "produces": ["application/json"],
                "responses": {"200": {"description": "matches", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Matches"],
                "summary": "Create a match",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "match", "required": true, "schema": {"$ref": "#/definitions/services.MatchInput"}}
                ],
                "responses": {
                    "201": {"description": "match", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/matches/next": {
            "get": {
                "tags": ["Matches"],
                "summary": "Next upcoming match",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "match", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/matches/{id}": {
            "get": {
                "tags": ["Matches"],
                "summary": "Get a match",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "match", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Matches"],
                "summary": "Update a match",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "match", "required": true, "schema": {"$ref": "#/definitions/services.MatchInput"}}
                ],
                "responses": {"200": {"description": "match", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Matches"],
                "summary": "Delete a match",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/matches/{id}/players": {
            "post": {
                "tags": ["Matches"],
                "summary": "Join a match",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.joinMatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "match", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "match already played", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/matches/{id}/players/{playerID}": {
            "delete": {
                "tags": ["Matches"],
                "summary": "Leave a match",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "match", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "match already played", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/matches/{id}/guests": {
            "get": {
                "tags": ["Guests"],
                "summary": "List the guests of a match",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "guests", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "tags": ["Guests"],
                "summary": "Invite a guest",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "guest", "required": true, "schema": {"$ref": "#/definitions/services.GuestInput"}}
                ],
                "responses": {
                    "201": {"description": "guest", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/guests/{id}": {
            "delete": {
                "tags": ["Guests"],
                "summary": "Remove a guest",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/schedules": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Schedules"],
                "summary": "List weekly schedules",
                "produces": ["application/json"],
                "responses": {"200": {"description": "schedules", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Schedules"],
                "summary": "Create a weekly schedule",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "schedule", "required": true, "schema": {"$ref": "#/definitions/services.ScheduleInput"}}
                ],
                "responses": {
                    "201": {"description": "schedule", "schema": {"type": "object", "additionalProperties": true}},
                    "403": {"description": "schedules are read-only", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.errorEnvelope"}}
                }
            }
        },
        "/api/schedules/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Schedules"],
                "summary": "Get a weekly schedule",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "schedule", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Schedules"],
                "summary": "Update a weekly schedule",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "schedule", "required": true, "schema": {"$ref": "#/definitions/services.ScheduleInput"}}
                ],
                "responses": {"200": {"description": "schedule", "schema": {"type": "object", "additionalProperties": true}}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Schedules"],
                "summary": "Delete a weekly schedule",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/trigger": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["Trigger"],
                "summary": "Run the daily scheduling decision (admin)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.triggerRequest"}}
                ],
                "responses": {
                    "200": {"description": "status sent for an existing match"},
                    "201": {"description": "match created and invitations sent"},
                    "204": {"description": "nothing to do"}
                }
            }
        },
        "/sendmail/": {
            "post": {
                "tags": ["Trigger"],
                "summary": "Run the daily scheduling decision",
                "responses": {
                    "200": {"description": "status sent for an existing match"},
                    "201": {"description": "match created and invitations sent"},
                    "204": {"description": "nothing to do"}
                }
            }
        }
    },
    "definitions": {
        "handlers.errorEnvelope": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handlers.joinMatchRequest": {
            "type": "object",
            "properties": {"player_id": {"type": "integer"}}
        },
        "handlers.triggerRequest": {
            "type": "object",
            "properties": {"date": {"type": "string", "example": "2015-03-23"}}
        },
        "services.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "services.PlayerInput": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string", "maxLength": 50}}
        },
        "services.MatchInput": {
            "type": "object",
            "required": ["date", "place"],
            "properties": {"date": {"type": "string", "format": "date-time"}, "place": {"type": "string", "maxLength": 50}}
        },
        "services.GuestInput": {
            "type": "object",
            "required": ["inviting_player_id", "name"],
            "properties": {"inviting_player_id": {"type": "integer"}, "name": {"type": "string", "maxLength": 50}}
        },
        "services.ScheduleInput": {
            "type": "object",
            "required": ["weekday", "time", "place", "invite_weekday"],
            "properties": {
                "weekday": {"type": "integer", "minimum": 0, "maximum": 6},
                "time": {"type": "string", "example": "19:00"},
                "place": {"type": "string", "maxLength": 50},
                "invite_weekday": {"type": "integer", "minimum": 0, "maximum": 6}
            }
        },
        "models.DashboardStats": {
            "type": "object",
            "properties": {
                "match_count": {"type": "integer"},
                "player_count": {"type": "integer"},
                "top_player": {"type": "object"},
                "next_match": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fobal API",
	Description:      "Weekly 5-a-side soccer organizer: players, matches, guests and schedules.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
