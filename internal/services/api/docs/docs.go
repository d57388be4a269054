// Package docs registers the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "tags": [
        {"name": "spam-detection", "description": "Score forum questions and answers"},
        {"name": "meta", "description": "Service health and build information"}
    ],
    "paths": {
        "/spam-detection": {
            "post": {
                "tags": ["spam-detection"],
                "summary": "Check one post",
                "description": "Scores a question (title and content) or an answer (content only). Questions require a title.",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CheckRequest"}}}
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CheckEnvelope"}}}
                    }
                }
            }
        },
        "/spam-detection/batch": {
            "post": {
                "tags": ["spam-detection"],
                "summary": "Check a batch of posts",
                "description": "Scores every item and returns the results in input order.",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BatchRequest"}}}
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BatchEnvelope"}}}
                    }
                }
            }
        },
        "/spam-detection/rules": {
            "get": {
                "tags": ["spam-detection"],
                "summary": "Effective rule pack",
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RulesEnvelope"}}}
                    }
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": ["meta"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthEnvelope"}}}
                    }
                }
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["meta"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyEnvelope"}}}
                    }
                }
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["meta"],
                "summary": "Service info and uptime",
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ServiceEnvelope"}}}
                    }
                }
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["meta"],
                "summary": "Build information",
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/VersionEnvelope"}}}
                    }
                }
            }
        },
        "/meta/detector": {
            "get": {
                "tags": ["meta"],
                "summary": "Loaded rule pack identity",
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DetectorEnvelope"}}}
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "CheckRequest": {
                "type": "object",
                "required": ["content"],
                "properties": {
                    "title": {"type": "string", "example": "Best way to buy cheap followers?"},
                    "content": {"type": "string", "example": "Click here for a limited time offer"},
                    "type": {"type": "string", "enum": ["question", "answer"], "example": "question"},
                    "format": {"type": "string", "enum": ["text", "html"], "example": "text"}
                }
            },
            "BatchRequest": {
                "type": "object",
                "required": ["items"],
                "properties": {
                    "items": {"type": "array", "minItems": 1, "items": {"$ref": "#/components/schemas/CheckRequest"}}
                }
            },
            "Trigger": {
                "type": "object",
                "properties": {
                    "rule": {"type": "string", "example": "spam_keyword"},
                    "weight": {"type": "integer", "example": 15},
                    "reason": {"type": "string", "example": "Contains spam keyword: \"click here\""}
                }
            },
            "CheckResult": {
                "type": "object",
                "properties": {
                    "checkId": {"type": "string", "format": "uuid"},
                    "type": {"type": "string", "example": "question"},
                    "isSpam": {"type": "boolean", "example": true},
                    "spamScore": {"type": "integer", "example": 110},
                    "threshold": {"type": "integer", "example": 50},
                    "reason": {"type": "array", "items": {"type": "string"}},
                    "triggers": {"type": "array", "items": {"$ref": "#/components/schemas/Trigger"}}
                }
            },
            "BatchResult": {
                "type": "object",
                "properties": {
                    "results": {"type": "array", "items": {"$ref": "#/components/schemas/CheckResult"}},
                    "total": {"type": "integer", "example": 2},
                    "spam": {"type": "integer", "example": 1}
                }
            },
            "Rules": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "forum-default"},
                    "version": {"type": "integer", "example": 1},
                    "threshold": {"type": "integer", "example": 50},
                    "rules": {"type": "array", "items": {"type": "string"}},
                    "table": {"type": "object"}
                }
            },
            "Health": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean", "example": true},
                    "service": {"type": "string", "example": "spamguard-api"},
                    "started": {"type": "string", "format": "date-time"},
                    "now": {"type": "string", "format": "date-time"}
                }
            },
            "ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "detector"},
                    "status": {"type": "string", "example": "ok"},
                    "detail": {"type": "string", "example": "forum-default v1"}
                }
            },
            "Ready": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "ok"},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/ReadyCheck"}},
                    "now": {"type": "string", "format": "date-time"}
                }
            },
            "Service": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "example": "spamguard-api"},
                    "started": {"type": "string", "format": "date-time"},
                    "uptime": {"type": "integer", "example": 300}
                }
            },
            "Version": {
                "type": "object",
                "properties": {
                    "service": {"type": "string", "example": "spamguard-api"},
                    "version": {"type": "string", "example": "v0.1.0"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"}
                }
            },
            "Detector": {
                "type": "object",
                "properties": {
                    "detector_version": {"type": "integer", "example": 1},
                    "pack": {"type": "string", "example": "forum-default"},
                    "threshold": {"type": "integer", "example": 50},
                    "keywords": {"type": "integer", "example": 16},
                    "rules": {"type": "array", "items": {"type": "string"}},
                    "build": {"$ref": "#/components/schemas/Version"}
                }
            },
            "Envelope": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer", "example": 200},
                    "status": {"type": "string", "example": "OK"},
                    "request_id": {"type": "string"}
                }
            },
            "CheckEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/CheckResult"}}}]
            },
            "BatchEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/BatchResult"}}}]
            },
            "RulesEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Rules"}}}]
            },
            "HealthEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Health"}}}]
            },
            "ReadyEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Ready"}}}]
            },
            "ServiceEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Service"}}}]
            },
            "VersionEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Version"}}}]
            },
            "DetectorEnvelope": {
                "allOf": [{"$ref": "#/components/schemas/Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Detector"}}}]
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "spamguard API",
	Description:      "Rule based spam scoring for forum questions and answers",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
