package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// ResolveToken picks the GitHub token in priority order: the explicit flag
// value, then the environment value, then the credential helper. helper may
// be nil, in which case a missing token is a *model.CredentialError.
func ResolveToken(ctx context.Context, flagToken, envToken string, helper driven.CredentialHelper) (string, error) {
	if token := strings.TrimSpace(flagToken); token != "" {
		slog.Debug("using token from --token")
		return token, nil
	}

	if token := strings.TrimSpace(envToken); token != "" {
		slog.Debug("using token from environment")
		return token, nil
	}

	if helper == nil {
		return "", &model.CredentialError{Reason: "no token given; pass --token or set GHP_TOKEN"}
	}

	return helper.Token(ctx)
}
