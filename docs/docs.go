// Package docs registers the OpenAPI description served at /swagger.
//
// The template is maintained by hand. Every route under the API base path
// must have an entry here; the routes package tests enforce it.
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
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events by date",
                "parameters": [{"type": "string", "name": "category", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events/featured": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Featured events, padded with other events",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/events/{eventId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Event detail with related events",
                "parameters": [{"type": "string", "name": "eventId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found, carries a redirect to /events"}}
            }
        },
        "/events/{eventId}/related": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Related events",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Distinct event categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start a purchase session for an event",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"event_id": {"type": "string"}}}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}
            }
        },
        "/sessions/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Current session view",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Abandon the session",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/sessions/{sessionId}/pay": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start payment for the session's current selection",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/sessions/{sessionId}/tier": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Select a ticket tier",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"tier": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/sessions/{sessionId}/quantity": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Change the ticket quantity by a delta",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"delta": {"type": "integer"}}}}],
                "responses": {"200": {"description": "OK, accepted reports whether the change applied"}, "409": {"description": "Conflict"}}
            }
        },
        "/sessions/{sessionId}/book": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Move on to contact collection",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/sessions/{sessionId}/contact": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Set the buyer email",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {"email": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/sessions/{sessionId}/contact/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Return to ticket selection",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/sessions/{sessionId}/another": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Start another booking after a purchase",
                "parameters": [{"type": "string", "name": "sessionId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/payments/callback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Gateway redirect after checkout",
                "parameters": [{"type": "string", "name": "reference", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/payments/cancel": {
            "get": {
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Checkout closed by the viewer; cancels only unpaid charges",
                "parameters": [{"type": "string", "name": "reference", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/payments/webhooks/paystack": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Paystack webhook",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid signature"}, "404": {"description": "Provider not enabled"}}
            }
        },
        "/payments/webhooks/stripe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Stripe webhook",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid signature"}, "404": {"description": "Provider not enabled"}}
            }
        },
        "/receipts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["receipts"],
                "summary": "Receipts recorded for an email",
                "parameters": [{"type": "string", "name": "email", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/appointments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Request an appointment with the events team",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Plug Events API",
	Description:      "Event catalog, ticket purchase flow and payment callbacks for Plug Events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
