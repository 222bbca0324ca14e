package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the notes API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
// prefix is the mount point of the note routes ("" or e.g. "/api/v1").
func RegisterSwagger(rg *gin.Engine, prefix string) {
	doc := strings.ReplaceAll(swaggerJSON, "{prefix}", prefix)
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>notes-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "notes-api", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Created": { "type": "object", "properties": { "note_id": {"type":"string","format":"uuid"}, "s3_key": {"type":"string","nullable":true} } },
      "Note": { "type": "object", "properties": { "note_id": {"type":"string","format":"uuid"}, "title": {"type":"string"}, "content": {"type":"string"}, "s3_key": {"type":"string","nullable":true} } },
      "Detail": { "type": "object", "properties": { "detail": {"type":"string"} } }
    }
  },
  "paths": {
    "{prefix}/notes": {
      "post": {
        "summary": "Create a note with an optional attachment",
        "parameters": [ { "name": "X-API-Key", "in": "header", "required": false, "schema": {"type":"string"} } ],
        "requestBody": { "content": { "multipart/form-data": { "schema": { "type": "object", "required": ["note"], "properties": { "note": {"type":"string","description":"JSON {title (1-200 chars), content (non-empty)}"}, "file": {"type":"string","format":"binary"} } } } } },
        "responses": {
          "200": { "description": "created", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Created"} } } },
          "403": { "description": "missing or wrong API key" },
          "422": { "description": "invalid payload", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Detail"} } } },
          "429": { "description": "rate limit exceeded" }
        }
      }
    },
    "{prefix}/notes/{note_id}": {
      "get": {
        "summary": "Get a note",
        "parameters": [ { "name": "note_id", "in": "path", "required": true, "schema": {"type":"string"} } ],
        "responses": {
          "200": { "description": "note", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Note"} } } },
          "404": { "description": "Note not found", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Detail"} } } }
        }
      }
    },
    "{prefix}/ping": { "get": { "summary": "Liveness ping", "responses": { "200": { "description": "pong" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
