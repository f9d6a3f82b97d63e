// Package docs registers the OpenAPI description of the insights API with swag.
// Keep it in sync with the @ annotations in cmd/api and internal/handler/http/insight.
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
        "/insights": {
            "get": {
                "description": "Fetches one batch of articles, enriches them and returns the aggregates",
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Refresh insights",
                "parameters": [
                    {"type": "string", "description": "Search query", "name": "q", "in": "query"},
                    {"type": "string", "description": "Two-letter language code (default: en)", "name": "language", "in": "query"},
                    {"type": "integer", "description": "Number of articles, 1-100 (default: 20)", "name": "count", "in": "query"},
                    {"type": "integer", "description": "Countries in the ranking, negative for all (default: 10)", "name": "top", "in": "query"},
                    {"type": "integer", "description": "Cross-tab mention threshold (default: 2)", "name": "min_mentions", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/insight.DTO"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "502": {"description": "No data: the upstream fetch failed", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["probes"],
                "summary": "Upstream circuit breaker status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.HealthResponse"}}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["probes"],
                "summary": "Readiness probe, 503 while any upstream breaker is open",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/live": {
            "get": {
                "tags": ["probes"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "insight.DTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "6f1c1c4e-8d1e-4f4e-9a57-0f7c3b7b2a10"},
                "provider": {"type": "string", "example": "newsapi"},
                "query": {"$ref": "#/definitions/insight.QueryDTO"},
                "fetched_at": {"type": "string", "example": "2024-03-15T09:30:00Z"},
                "articles": {"type": "array", "items": {"$ref": "#/definitions/insight.ArticleDTO"}},
                "summary": {"$ref": "#/definitions/aggregate.View"}
            }
        },
        "insight.QueryDTO": {
            "type": "object",
            "properties": {
                "q": {"type": "string", "example": "semiconductors"},
                "language": {"type": "string", "example": "en"},
                "count": {"type": "integer", "example": 20}
            }
        },
        "insight.ArticleDTO": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "India and China expand chip output"},
                "url": {"type": "string", "example": "https://example.com/article/1"},
                "timestamp": {"type": "string", "example": "2024-03-15 09:30"},
                "country": {"type": "string", "example": "India, China"},
                "countries": {"type": "array", "items": {"type": "string"}},
                "sentiment": {"type": "string", "example": "Positive"}
            }
        },
        "aggregate.View": {
            "type": "object",
            "properties": {
                "total_articles": {"type": "integer"},
                "sentiment_counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "country_counts": {"type": "array", "items": {"type": "object", "properties": {"country": {"type": "string"}, "count": {"type": "integer"}}}},
                "country_sentiment": {"type": "array", "items": {"type": "object", "properties": {"country": {"type": "string"}, "sentiment": {"type": "string"}, "count": {"type": "integer"}}}},
                "min_mentions": {"type": "integer"},
                "insufficient_country_data": {"type": "boolean"}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "object", "properties": {"status": {"type": "string"}, "message": {"type": "string"}}}}
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
	Title:            "Newspulse Insights API",
	Description:      "Fetches news articles, tags them with countries and sentiment, and serves the aggregates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
