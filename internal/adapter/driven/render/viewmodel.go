package render

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	vm "github.com/ericfisherdev/pr2pdf/internal/adapter/driven/render/viewmodel"
	"github.com/ericfisherdev/pr2pdf/internal/domain/model"
)

// keyChangesMarker separates the free-form description from its change list.
const keyChangesMarker = "Key Changes:"

// noReviewers is shown in the info box when nobody reviewed the pull request.
const noReviewers = "No reviewers"

// CSS classes applied to diff rows.
const (
	classDiffHeader    = "diff-header"
	classDiffAdd       = "diff-add"
	classDiffDel       = "diff-del"
	classDiffCtx       = "diff-ctx"
	classDiffNoNewline = "diff-nonewline"
)

// toPullRequestViewModel converts the domain aggregate into its view model.
// The description takes precedence; commits are only carried when it is blank.
func toPullRequestViewModel(pr *model.PullRequest) vm.PullRequestViewModel {
	v := vm.PullRequestViewModel{
		Title:     pr.Details.Title,
		Ref:       pr.Ref.String(),
		URL:       pr.URL,
		Author:    toUserViewModel(pr.Details.Author),
		CreatedAt: pr.Details.CreatedAt.Display(),
		TimeZone:  model.DisplayZone,
		Reviewers: lo.Map(pr.Reviewers.Sorted(), func(login string, _ int) vm.UserViewModel {
			return vm.UserViewModel{Login: login, URL: model.ProfileURLFor(login)}
		}),
		Files: lo.Map(pr.Files, func(f model.FileDiff, _ int) vm.FileViewModel {
			return toFileViewModel(f)
		}),
	}

	if pr.Details.HasBody() {
		description, changes := splitKeyChanges(pr.Details.Body)
		v.OverviewHTML = RenderMarkdown(description)
		v.KeyChanges = changes
	}
	if v.OverviewHTML == "" && len(v.KeyChanges) == 0 {
		v.Commits = lo.Map(pr.Commits, func(c model.Commit, _ int) vm.CommitViewModel {
			return toCommitViewModel(c)
		})
	}

	return v
}

// splitKeyChanges cuts a description at the first "Key Changes:" marker. The
// lines after it become list items with a leading "*" or "- " bullet removed;
// blank lines are dropped.
func splitKeyChanges(body string) (string, []string) {
	description, rest, found := strings.Cut(body, keyChangesMarker)
	if !found {
		return body, nil
	}

	var changes []string
	for _, line := range strings.Split(rest, "\n") {
		item := strings.TrimSpace(line)
		if strings.HasPrefix(item, "*") || strings.HasPrefix(item, "- ") {
			item = strings.TrimSpace(item[1:])
		}
		if item != "" {
			changes = append(changes, item)
		}
	}
	return description, changes
}

func toUserViewModel(u model.User) vm.UserViewModel {
	return vm.UserViewModel{Login: u.Login, URL: u.ProfileURL}
}

func toCommitViewModel(c model.Commit) vm.CommitViewModel {
	return vm.CommitViewModel{
		ShortSHA: c.ShortSHA(),
		Subject:  c.Subject(),
		Body:     c.Body(),
		Author:   toUserViewModel(c.Author),
		Date:     c.Timestamp.Display(),
	}
}

func toFileViewModel(f model.FileDiff) vm.FileViewModel {
	rows := f.Rows()
	return vm.FileViewModel{
		Filename: f.Filename,
		Status:   string(f.Status),
		Rows: lo.Map(rows, func(r model.DiffRow, _ int) vm.DiffRowViewModel {
			return toDiffRowViewModel(r)
		}),
	}
}

// toDiffRowViewModel assigns the CSS class and the line-number columns that
// apply to the row's kind.
func toDiffRowViewModel(r model.DiffRow) vm.DiffRowViewModel {
	row := vm.DiffRowViewModel{Text: r.Text}

	switch r.Kind {
	case model.DiffRowHunkHeader:
		row.Class = classDiffHeader
	case model.DiffRowAddition:
		row.Class = classDiffAdd
		row.NewLine = strconv.Itoa(r.NewLine)
	case model.DiffRowDeletion:
		row.Class = classDiffDel
		row.OldLine = strconv.Itoa(r.OldLine)
	case model.DiffRowContext:
		row.Class = classDiffCtx
		row.OldLine = strconv.Itoa(r.OldLine)
		row.NewLine = strconv.Itoa(r.NewLine)
	case model.DiffRowNoNewline:
		row.Class = classDiffNoNewline
	}

	return row
}
