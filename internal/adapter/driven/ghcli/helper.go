// Package ghcli implements the CredentialHelper port on top of the GitHub CLI.
package ghcli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gh "github.com/cli/go-gh/v2"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/safeexec"
	"github.com/manifoldco/promptui"

	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialHelper = (*Helper)(nil)

// DefaultHost is the host tokens are resolved for.
const DefaultHost = "github.com"

// Helper resolves a token the way the gh CLI stores it. An interactive
// `gh auth login` is only started when allowLogin is set and the operator
// confirms the prompt.
type Helper struct {
	host       string
	allowLogin bool

	tokenForHost func(host string) (string, string)
	lookPath     func(file string) (string, error)
	confirm      func(label string) (bool, error)
	login        func(ctx context.Context, host string) error
	readToken    func(ctx context.Context, host string) (string, error)
}

// NewHelper creates a Helper for github.com.
func NewHelper(allowLogin bool) *Helper {
	return &Helper{
		host:         DefaultHost,
		allowLogin:   allowLogin,
		tokenForHost: auth.TokenForHost,
		lookPath:     safeexec.LookPath,
		confirm:      confirmPrompt,
		login:        interactiveLogin,
		readToken:    ghAuthToken,
	}
}

// Token returns the stored gh token, running the opt-in login flow if none is stored.
func (h *Helper) Token(ctx context.Context) (string, error) {
	if token, source := h.tokenForHost(h.host); token != "" {
		slog.Debug("using gh credentials", "host", h.host, "source", source)
		return token, nil
	}

	if _, err := h.lookPath("gh"); err != nil {
		return "", &model.CredentialError{
			Reason: "GitHub CLI (gh) not found; install it from https://cli.github.com or pass --token",
			Err:    err,
		}
	}

	if !h.allowLogin {
		return "", &model.CredentialError{
			Reason: fmt.Sprintf("not logged in to %s; run `gh auth login`, set GHP_TOKEN, or pass --gh-login", h.host),
		}
	}

	ok, err := h.confirm(fmt.Sprintf("No GitHub token found. Run `gh auth login` for %s now", h.host))
	if err != nil {
		return "", &model.CredentialError{Reason: "login confirmation failed", Err: err}
	}
	if !ok {
		return "", &model.CredentialError{Reason: "login declined"}
	}

	if err := h.login(ctx, h.host); err != nil {
		return "", &model.CredentialError{Reason: "gh auth login failed", Err: err}
	}

	token, err := h.readToken(ctx, h.host)
	if err != nil {
		return "", &model.CredentialError{Reason: "gh auth token failed", Err: err}
	}
	if token == "" {
		return "", &model.CredentialError{Reason: "gh auth token returned an empty token"}
	}

	return token, nil
}

func confirmPrompt(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

func interactiveLogin(ctx context.Context, host string) error {
	return gh.ExecInteractive(ctx, "auth", "login", "--hostname", host)
}

func ghAuthToken(ctx context.Context, host string) (string, error) {
	stdout, stderr, err := gh.ExecContext(ctx, "auth", "token", "--hostname", host)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
