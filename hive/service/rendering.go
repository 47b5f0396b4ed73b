// Package service defines the application services over the rendering
// pipeline and the draft store.
package service

import (
	"github.com/hiveblocks/hiverender/hive"
	"github.com/hiveblocks/hiverender/render"
)

// RenderingService defines the interface for rendering markdown content.
type RenderingService interface {
	// Render converts markdown to sanitized HTML.
	Render(markdown string, ctx ...hive.RenderContext) (string, error)

	// PreviewMarkdown renders markdown for preview purposes.
	PreviewMarkdown(markdown string, ctx ...hive.RenderContext) (string, error)
}

// renderingService is the default implementation of RenderingService.
type renderingService struct {
	renderer *render.Renderer
}

// NewRenderingService creates a new RenderingService.
func NewRenderingService(renderer *render.Renderer) RenderingService {
	return &renderingService{renderer: renderer}
}

func (s *renderingService) Render(markdown string, ctx ...hive.RenderContext) (string, error) {
	return s.renderer.Render(markdown, ctx...)
}

func (s *renderingService) PreviewMarkdown(markdown string, ctx ...hive.RenderContext) (string, error) {
	return s.Render(markdown, ctx...)
}
