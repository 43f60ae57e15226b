package driven

import "context"

// CredentialHelper obtains a GitHub token from an external tool when neither
// the command line nor the environment supplies one.
type CredentialHelper interface {
	// Token returns a non-empty token or a *model.CredentialError.
	Token(ctx context.Context) (string, error)
}
