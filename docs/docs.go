// Package docs holds the OpenAPI description served under /swagger when the
// server is built with -tags=swagger. Regenerate with `swag init -g cmd/bidpredict/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "federal-bid-prediction maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Form option catalogue",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.OptionsResponse"}}
                }
            }
        },
        "/api/v1/predict": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Placeholder winning-bid estimate",
                "parameters": [
                    {"description": "Selection", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/v1/artifacts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "Fitted model files found on disk",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ArtifactsResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {"produces": ["text/plain"], "tags": ["ops"], "summary": "Liveness probe", "responses": {"200": {"description": "ok"}}}
        },
        "/readyz": {
            "get": {"produces": ["text/plain"], "tags": ["ops"], "summary": "Readiness probe", "responses": {"200": {"description": "ready"}, "503": {"description": "not ready"}}}
        }
    },
    "definitions": {
        "types.PredictRequest": {
            "type": "object",
            "required": ["agency", "naics", "set_aside"],
            "properties": {
                "agency": {"type": "string", "example": "HHS"},
                "naics": {"type": "string", "example": "541511"},
                "set_aside": {"type": "string", "example": "None"},
                "num_bidders": {"type": "integer", "minimum": 1, "maximum": 10, "example": 3}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "amount": {"type": "number", "example": 1234567.89},
                "display": {"type": "string", "example": "$1,234,567.89"},
                "disclaimer": {"type": "string"},
                "input": {"$ref": "#/definitions/types.PredictRequest"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "types.BidderBounds": {
            "type": "object",
            "properties": {
                "min": {"type": "integer", "example": 1},
                "max": {"type": "integer", "example": 10},
                "default": {"type": "integer", "example": 3}
            }
        },
        "types.OptionsResponse": {
            "type": "object",
            "properties": {
                "agencies": {"type": "array", "items": {"type": "string"}},
                "naics": {"type": "array", "items": {"type": "string"}},
                "set_asides": {"type": "array", "items": {"type": "string"}},
                "num_bidders": {"$ref": "#/definitions/types.BidderBounds"}
            }
        },
        "types.Artifact": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "xgb_model.gob"},
                "path": {"type": "string"},
                "size_bytes": {"type": "integer"},
                "mod_time": {"type": "string", "format": "date-time"},
                "run_id": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "features": {"type": "integer"},
                "log_rmse": {"type": "number"},
                "log_r2": {"type": "number"},
                "error": {"type": "string"}
            }
        },
        "types.ArtifactsResponse": {
            "type": "object",
            "properties": {
                "artifacts": {"type": "array", "items": {"$ref": "#/definitions/types.Artifact"}}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "bidpredict API",
	Description:      "Placeholder winning-bid estimates for federal Health IT contracts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
