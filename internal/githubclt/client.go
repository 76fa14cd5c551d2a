// Package githubclt provides a GitHub client that is backed by the gh
// command-line tool.
// All repository information is retrieved by running gh commands via a
// CommandRunner and decoding their JSON output, the gh tool resolves the
// repository and authentication from its own environment.
package githubclt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/simplesurance/automerger/internal/logfields"
)

const loggerName = "github_client"

// CommandRunner executes one external command and returns its captured
// standard output.
type CommandRunner interface {
	Run(ctx context.Context, dryRun bool, name string, args ...string) (string, error)
}

// Client runs gh commands against the repository of the current working
// directory.
// When dryRun is enabled, commands that would change state on GitHub are
// only logged. Read-only commands always run.
type Client struct {
	runner CommandRunner
	dryRun bool
	logger *zap.Logger
}

func New(runner CommandRunner, dryRun bool) *Client {
	return &Client{
		runner: runner,
		dryRun: dryRun,
		logger: zap.L().Named(loggerName),
	}
}

type listedPullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

type pullRequestDetails struct {
	Mergeable   string            `json:"mergeable"`
	BaseRefName string            `json:"baseRefName"`
	Author      PullRequestAuthor `json:"author"`
}

// PRIterator yields pull requests one at a time.
type PRIterator interface {
	Next() (*PullRequest, error)
}

type PRIter struct {
	clt *Client
	ctx context.Context

	unseen []listedPullRequest
	listed bool
}

// Next returns the next pull request, in ascending pull request number
// order.
// The listing query runs on the first call, the per-pull-request detail
// fetch runs lazily per returned pull request.
// When the last result was returned a nil PullRequest is returned.
func (it *PRIter) Next() (*PullRequest, error) {
	if !it.listed {
		if err := it.list(); err != nil {
			return nil, err
		}

		it.listed = true
	}

	if len(it.unseen) == 0 {
		return nil, nil
	}

	head := it.unseen[0]
	it.unseen = it.unseen[1:]

	return it.clt.enrichPullRequest(it.ctx, &head)
}

func (it *PRIter) list() error {
	out, err := it.clt.runner.Run(it.ctx, false,
		"gh", "pr", "list", "--state", "open", "--json", "number,labels,title",
	)
	if err != nil {
		return fmt.Errorf("listing open pull requests failed: %w", err)
	}

	var listed []listedPullRequest
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		return fmt.Errorf("decoding pull request list failed: %w", err)
	}

	sort.Slice(listed, func(i, j int) bool {
		return listed[i].Number < listed[j].Number
	})

	it.unseen = listed

	return nil
}

func (clt *Client) enrichPullRequest(ctx context.Context, listed *listedPullRequest) (*PullRequest, error) {
	out, err := clt.runner.Run(ctx, false,
		"gh", "pr", "view", strconv.Itoa(listed.Number),
		"--json", "mergeable,baseRefName,author",
	)
	if err != nil {
		return nil, fmt.Errorf("fetching details of pull request %d failed: %w", listed.Number, err)
	}

	var details pullRequestDetails
	if err := json.Unmarshal([]byte(out), &details); err != nil {
		return nil, fmt.Errorf("decoding details of pull request %d failed: %w", listed.Number, err)
	}

	labels := make([]string, 0, len(listed.Labels))
	for _, label := range listed.Labels {
		labels = append(labels, label.Name)
	}

	pr := PullRequest{
		Number:      listed.Number,
		Title:       listed.Title,
		Labels:      labels,
		Author:      details.Author,
		Mergeable:   details.Mergeable,
		BaseRefName: details.BaseRefName,
	}

	clt.logger.Info(
		"pull request retrieved",
		logfields.PullRequest(pr.Number),
		logfields.Title(pr.Title),
		logfields.Author(pr.Author.Login),
		logfields.Event("pull_request_retrieved"),
	)

	return &pr, nil
}

// ListOpenPullRequests returns an iterator over the open pull requests of
// the repository. (An interface is returned to make the method mockable.)
func (clt *Client) ListOpenPullRequests(ctx context.Context) PRIterator {
	return &PRIter{clt: clt, ctx: ctx}
}

// FetchChecks returns the raw status check results of a pull request.
func (clt *Client) FetchChecks(ctx context.Context, prNumber int) ([]*Check, error) {
	out, err := clt.runner.Run(ctx, false,
		"gh", "pr", "checks", strconv.Itoa(prNumber), "--json", "bucket,name",
	)
	if err != nil {
		return nil, fmt.Errorf("listing checks of pull request %d failed: %w", prNumber, err)
	}

	var checks []*Check
	if err := json.Unmarshal([]byte(out), &checks); err != nil {
		return nil, fmt.Errorf("decoding checks of pull request %d failed: %w", prNumber, err)
	}

	return checks, nil
}

// CreateReviewComment posts a review comment on a pull request.
func (clt *Client) CreateReviewComment(ctx context.Context, prNumber int, comment string) error {
	_, err := clt.runner.Run(ctx, clt.dryRun,
		"gh", "pr", "review", strconv.Itoa(prNumber), "--comment", "-b", comment,
	)

	return err
}

// Merge merges a pull request into its base branch as a squash merge,
// bypassing branch protection via admin privileges.
func (clt *Client) Merge(ctx context.Context, prNumber int) error {
	_, err := clt.runner.Run(ctx, clt.dryRun,
		"gh", "pr", "merge", strconv.Itoa(prNumber), "--admin", "--squash",
	)

	return err
}

// UpdateBranch rebases the pull request branch on its base branch.
func (clt *Client) UpdateBranch(ctx context.Context, prNumber int) error {
	_, err := clt.runner.Run(ctx, clt.dryRun,
		"gh", "pr", "update-branch", strconv.Itoa(prNumber), "--rebase",
	)

	return err
}
