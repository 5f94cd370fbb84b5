// Package docs registers the OpenAPI description served under /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "events"},
        {"name": "speakers"},
        {"name": "proposals"},
        {"name": "auth"},
        {"name": "functions"}
    ],
    "paths": {
        "/events/published": {"get": {"tags": ["events"], "summary": "List published events", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/events": {
            "get": {"tags": ["events"], "summary": "List all events", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}, "403": {"description": "forbidden"}}},
            "post": {"tags": ["events"], "summary": "Create a draft event", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "parameters": [{"in": "body", "name": "event", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}}}
        },
        "/events/{eventID}": {
            "get": {"tags": ["events"], "summary": "Get an event by ID", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "eventID", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not_found"}}},
            "patch": {"tags": ["events"], "summary": "Update an event", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "eventID", "type": "string", "required": true}, {"in": "body", "name": "patch", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "404": {"description": "not_found"}}},
            "delete": {"tags": ["events"], "summary": "Delete an event", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "eventID", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "not_found"}}}
        },
        "/speakers": {
            "get": {"tags": ["speakers"], "summary": "List speakers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["speakers"], "summary": "Create a speaker", "security": [{"BearerAuth": []}], "consumes": ["application/json", "multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}, "413": {"description": "payload_too_large"}}}
        },
        "/speakers/{speakerID}": {
            "get": {"tags": ["speakers"], "summary": "Get a speaker by ID", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "speakerID", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not_found"}}},
            "patch": {"tags": ["speakers"], "summary": "Update a speaker", "security": [{"BearerAuth": []}], "consumes": ["application/json", "multipart/form-data"], "parameters": [{"in": "path", "name": "speakerID", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "not_found"}, "413": {"description": "payload_too_large"}}}
        },
        "/proposals": {
            "get": {"tags": ["proposals"], "summary": "List talk proposals", "security": [{"BearerAuth": []}], "parameters": [{"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["proposals"], "summary": "Submit a talk proposal", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "bad_request"}}}
        },
        "/proposals/{proposalID}/status": {"patch": {"tags": ["proposals"], "summary": "Set a proposal's status", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "proposalID", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "bad_request"}, "404": {"description": "not_found"}}}},
        "/proposals/{proposalID}/accept": {"post": {"tags": ["proposals"], "summary": "Accept a proposal into an event agenda", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "proposalID", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "404": {"description": "not_found"}}}},
        "/proposals/{proposalID}/reject": {"post": {"tags": ["proposals"], "summary": "Reject a proposal", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "proposalID", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "not_found"}}}},
        "/auth/session": {"get": {"tags": ["auth"], "summary": "Current operator session", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "unauthorized"}}}},
        "/auth/sign-in": {"post": {"tags": ["auth"], "summary": "Sign in", "consumes": ["application/json"], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "401": {"description": "unauthorized"}}}},
        "/auth/sign-out": {"post": {"tags": ["auth"], "summary": "Sign out", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "unauthorized"}}}},
        "/functions/notify-new-proposal": {"post": {"tags": ["functions"], "summary": "Notify organizers about a new proposal", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "bad_request"}, "401": {"description": "unauthorized"}, "403": {"description": "forbidden"}}}}
    },
    "definitions": {
        "CreateEventRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "date": {"type": "string", "example": "2024-07-20"},
                "time": {"type": "string", "example": "19:00"},
                "format": {"type": "string", "enum": ["in-person", "remote", "hybrid"]}
            }
        },
        "SignInRequest": {
            "type": "object",
            "required": ["accessToken"],
            "properties": {
                "accessToken": {"type": "string"}
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
	Title:            "Community Hub API",
	Description:      "Events, speakers and talk proposals of the community site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
