// Package docs registers this service's own API description with swag. It is
// the document served when DOCS_SOURCE is "swag" and no other package has
// registered one.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "docsmount",
    "description": "Serves the API specification document and the Swagger UI page",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {
        "tags": ["system"],
        "summary": "Health check",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "OK"},
          "503": {"description": "Docs cache unavailable"}
        }
      }
    },
    "/docs.json": {
      "get": {
        "tags": ["docs"],
        "summary": "API specification",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "OK"},
          "500": {"description": "Specification unavailable"}
        }
      }
    },
    "/docs": {
      "get": {
        "tags": ["docs"],
        "summary": "Swagger UI",
        "produces": ["text/html"],
        "responses": {
          "200": {"description": "OK"}
        }
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
