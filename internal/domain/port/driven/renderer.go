package driven

import (
	"context"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
)

// Renderer turns pull requests into HTML. RenderPullRequest produces a
// self-contained fragment; RenderDocument wraps fragments into one complete
// UTF-8 HTML document, in the order given.
type Renderer interface {
	RenderPullRequest(ctx context.Context, pr *model.PullRequest) (string, error)
	RenderDocument(ctx context.Context, title string, fragments []string) (string, error)
}
