// Package cli implements the command-line driving adapter.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gregjones/httpcache"
	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/pr2pdf/internal/adapter/driven/github"
	"github.com/ericfisherdev/pr2pdf/internal/adapter/driven/document"
	"github.com/ericfisherdev/pr2pdf/internal/adapter/driven/ghcli"
	"github.com/ericfisherdev/pr2pdf/internal/adapter/driven/render"
	sqliteadapter "github.com/ericfisherdev/pr2pdf/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/pr2pdf/internal/application"
	"github.com/ericfisherdev/pr2pdf/internal/config"
	"github.com/ericfisherdev/pr2pdf/internal/domain/port/driven"
)

// options holds flag values that are not part of config.Config.
type options struct {
	token  string
	output string
}

// NewRootCommand builds the pr2pdf command. cfg carries environment defaults
// and receives flag overrides; level is lowered to Debug by --debug.
func NewRootCommand(cfg *config.Config, level *slog.LevelVar) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "pr2pdf [flags] <pull-request-url>...",
		Short: "Export GitHub pull requests to a single PDF document",
		Long: "pr2pdf fetches each pull request (details, changed files, reviewers, commits),\n" +
			"renders it to HTML and writes all of them, in order, to one document.\n" +
			"A pull request that fails is reported and skipped.",
		Example: "  pr2pdf https://github.com/acme/widget/pull/42\n" +
			"  pr2pdf -o weekly https://github.com/acme/widget/pull/42 https://github.com/acme/widget/pull/43",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Debug && level != nil {
				level.Set(slog.LevelDebug)
			}
			return runExport(cmd.Context(), cmd.OutOrStdout(), cfg, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.token, "token", "", "GitHub token (overrides GHP_TOKEN and gh credentials)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file name (default: today's date, YYYY-MM-DD)")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "output format: pdf or html")
	flags.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "SQLite file for a persistent HTTP cache")
	flags.BoolVar(&cfg.GHLogin, "gh-login", cfg.GHLogin, "allow an interactive `gh auth login` when no token is found")
	flags.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	flags.IntVar(&cfg.MaxFilePages, "max-file-pages", cfg.MaxFilePages, "maximum pages of changed files fetched per pull request")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	return cmd
}

func runExport(ctx context.Context, out io.Writer, cfg *config.Config, opts options, urls []string) error {
	token, err := application.ResolveToken(ctx, opts.token, cfg.GitHubToken, ghcli.NewHelper(cfg.GHLogin))
	if err != nil {
		return err
	}

	cache, closeCache := openCache(ctx, cfg, token)
	defer closeCache()

	ghClient, err := githubadapter.NewClient(token, cfg.APIURL, cache, cfg.RequestTimeout)
	if err != nil {
		return err
	}

	exporter := application.NewExportService(
		application.NewFetchService(ghClient, cfg.MaxFilePages),
		render.NewRenderer(),
		newWriter(cfg.Format),
	)

	report, err := exporter.Export(ctx, urls, opts.output)
	printSummary(out, report)
	if err != nil {
		if errors.Is(err, application.ErrNothingExported) {
			return fmt.Errorf("%w: all %d pull request(s) failed", err, len(urls))
		}
		return err
	}

	fmt.Fprintf(out, "%s successfully generated: %s%s\n", strings.ToUpper(cfg.Format), report.Path, sizeSuffix(report.Path))
	return nil
}

// openCache returns the persistent cache when configured, scoped to token. A
// cache that cannot be opened is logged and replaced by the in-memory default.
func openCache(ctx context.Context, cfg *config.Config, token string) (httpcache.Cache, func()) {
	if cfg.CachePath == "" {
		return nil, func() {}
	}

	db, err := sqliteadapter.Open(ctx, cfg.CachePath)
	if err != nil {
		slog.Warn("http cache unavailable, using memory cache", "path", cfg.CachePath, "error", err)
		return nil, func() {}
	}

	repo := sqliteadapter.NewCacheRepo(db, sqliteadapter.TokenScope(token))
	if cfg.CacheMaxAge > 0 {
		pruned, err := repo.Prune(ctx, time.Now().Add(-cfg.CacheMaxAge))
		if err != nil {
			slog.Warn("http cache prune failed", "error", err)
		} else if pruned > 0 {
			slog.Debug("http cache pruned", "entries", pruned)
		}
	}

	return repo, func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing http cache", "error", err)
		}
	}
}

func newWriter(format string) driven.DocumentWriter {
	if format == config.FormatHTML {
		return document.NewHTMLWriter()
	}
	return document.NewPDFWriter()
}

func sizeSuffix(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return " (" + humanize.Bytes(uint64(info.Size())) + ")"
}
