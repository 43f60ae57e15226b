// Package render implements the Renderer port: pull requests become HTML
// fragments and fragments become one printable document.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer renders pull requests with the package's templ components.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderPullRequest renders one pull request as a self-contained fragment.
func (r *Renderer) RenderPullRequest(ctx context.Context, pr *model.PullRequest) (string, error) {
	var sb strings.Builder
	if err := PullRequestFragment(toPullRequestViewModel(pr)).Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("rendering %s: %w", pr.Ref, err)
	}
	return sb.String(), nil
}

// RenderDocument collates fragments, in order, into one HTML document.
func (r *Renderer) RenderDocument(ctx context.Context, title string, fragments []string) (string, error) {
	var sb strings.Builder
	if err := Document(title, fragments).Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return sb.String(), nil
}
