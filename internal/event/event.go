// Package event loads pull request metadata from a GitHub event payload file.
package event

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/trm-labs/notionsync/internal/faults"
)

// PullRequest captures the pull request fields the sync pipeline consumes.
// It is built once per run from the event payload and read-only afterwards.
type PullRequest struct {
	// Title is the pull request title.
	Title string
	// Body is the pull request description, possibly empty.
	Body string
	// URL is the canonical pull request URL, used as the tracking key.
	URL string
	// Number is the pull request number within the repository.
	Number int
	// Repo is the repository full name, e.g. "trm-labs/notionsync".
	Repo string
	// Author is the GitHub login of the pull request author.
	Author string
	// Branch is the head branch name the routing prefix derives from.
	Branch string
	// CreatedAt is the ISO timestamp of pull request creation.
	CreatedAt string
	// UpdatedAt is the ISO timestamp of the last pull request update.
	UpdatedAt string
}

// payload mirrors the subset of the GitHub pull_request event we read.
type payload struct {
	PullRequest *struct {
		Title     string `json:"title"`
		Body      string `json:"body"`
		HTMLURL   string `json:"html_url"`
		Number    int    `json:"number"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
		User      struct {
			Login string `json:"login"`
		} `json:"user"`
		Head struct {
			Ref string `json:"ref"`
		} `json:"head"`
	} `json:"pull_request"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// Load reads and validates the GitHub event payload at path.
func Load(path string) (PullRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PullRequest{}, fmt.Errorf("read event payload %q: %w", path, err)
	}

	var ev payload
	if err := json.Unmarshal(raw, &ev); err != nil {
		return PullRequest{}, &faults.DataError{
			Reason: fmt.Sprintf("event payload %q is not valid JSON: %v", path, err),
		}
	}
	if ev.PullRequest == nil {
		return PullRequest{}, &faults.DataError{
			Reason: fmt.Sprintf("event payload %q has no pull_request object", path),
		}
	}

	pr := PullRequest{
		Title:     strings.TrimSpace(ev.PullRequest.Title),
		Body:      ev.PullRequest.Body,
		URL:       strings.TrimSpace(ev.PullRequest.HTMLURL),
		Number:    ev.PullRequest.Number,
		Repo:      strings.TrimSpace(ev.Repository.FullName),
		Author:    strings.TrimSpace(ev.PullRequest.User.Login),
		Branch:    strings.TrimSpace(ev.PullRequest.Head.Ref),
		CreatedAt: strings.TrimSpace(ev.PullRequest.CreatedAt),
		UpdatedAt: strings.TrimSpace(ev.PullRequest.UpdatedAt),
	}

	var missing []string
	if pr.Title == "" {
		missing = append(missing, "title")
	}
	if pr.URL == "" {
		missing = append(missing, "html_url")
	}
	if pr.Number <= 0 {
		missing = append(missing, "number")
	}
	if pr.Branch == "" {
		missing = append(missing, "head.ref")
	}
	if len(missing) > 0 {
		return PullRequest{}, &faults.DataError{
			Reason: "pull_request is missing required fields: " + strings.Join(missing, ", "),
		}
	}
	return pr, nil
}

// CreatedDate returns the date-only (YYYY-MM-DD) part of CreatedAt.
func (p PullRequest) CreatedDate() string {
	if idx := strings.IndexByte(p.CreatedAt, 'T'); idx > 0 {
		return p.CreatedAt[:idx]
	}
	return p.CreatedAt
}
