package renderer

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/nouhaa3/invisithreat/internal/app/observability/metrics"
)

// HTMLTemplRenderer lets gin's c.HTML render templ components while falling
// back to the stock renderer for anything else.
type HTMLTemplRenderer struct {
	FallbackHTMLRenderer render.HTMLRender
}

func (t *HTMLTemplRenderer) Instance(name string, data any) render.Render {
	component, ok := data.(templ.Component)
	if !ok {
		if t.FallbackHTMLRenderer != nil {
			return t.FallbackHTMLRenderer.Instance(name, data)
		}
		return &Renderer{Ctx: context.Background(), Status: -1}
	}
	return &Renderer{Ctx: context.Background(), Status: -1, Component: component}
}

func New(c *gin.Context, status int, component templ.Component) *Renderer {
	return &Renderer{Ctx: c.Request.Context(), Status: status, Component: component}
}

type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Status != -1 {
		w.WriteHeader(t.Status)
	}
	if t.Component == nil {
		return nil
	}

	start := time.Now()
	err := t.Component.Render(t.Ctx, w)
	metrics.Get().TemplateRenderDuration.Record(t.Ctx, time.Since(start).Seconds())
	return err
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
