package docs

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apidocs/docsmount/internal/spec"
)

// DefaultAssetsURL serves Swagger UI from the public CDN when no local
// assets are mounted.
const DefaultAssetsURL = "https://unpkg.com/swagger-ui-dist@5"

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("docs").Parse(pageHTML))

type UIOptions struct {
	Title     string
	AssetsURL string
}

type pageData struct {
	Title     string
	SpecURL   string
	AssetsURL string
}

// Handlers serves the spec document and the UI page. It holds no mutable
// state, so a single value can serve concurrent requests.
type Handlers struct {
	source spec.Source
	page   []byte
}

func NewHandlers(cfg Config, source spec.Source, ui UIOptions) (*Handlers, error) {
	h := &Handlers{source: source}
	if cfg.SpecPath == "" || cfg.UIPath == "" {
		return h, nil
	}
	data := pageData{
		Title:     ui.Title,
		SpecURL:   cfg.SpecURL(),
		AssetsURL: ui.AssetsURL,
	}
	if data.Title == "" {
		data.Title = "API Documentation"
	}
	if data.AssetsURL == "" {
		data.AssetsURL = DefaultAssetsURL
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	h.page = buf.Bytes()
	return h, nil
}

// ServeSpec godoc
// @Summary API specification
// @Tags docs
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /docs.json [get]
func (h *Handlers) ServeSpec(c *gin.Context) {
	doc, err := h.source.Document(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "SPEC_UNAVAILABLE", "API specification unavailable", err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}

// ServeUI godoc
// @Summary Swagger UI
// @Tags docs
// @Produce html
// @Success 200 {string} string
// @Router /docs [get]
func (h *Handlers) ServeUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.page)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
