package http

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-health-assistant/internal/domain/assistant"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexPage struct {
	Title  string
	Panels []assistant.Panel
}

// Index renders the tabbed browser UI from the panel registry.
func (h *Handler) Index(c *gin.Context) {
	var buf bytes.Buffer
	page := indexPage{Title: assistant.AppTitle, Panels: assistant.Panels()}
	if err := indexTemplate.Execute(&buf, page); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "render_failed", "could not render page", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
