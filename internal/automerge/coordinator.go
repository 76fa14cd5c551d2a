package automerge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/automerger/internal/githubclt"
	"github.com/simplesurance/automerger/internal/logfields"
)

// Coordinator merges or rebases the pull requests that passed all
// eligibility stages.
// Per base branch, the first ready pull request of a run is approved and
// merged, every following one targeting the same base branch is rebased
// instead, even if it is independently eligible.
type Coordinator struct {
	clt        GithubClient
	approveMsg string

	// merged maps a base branch name to the pull request that was merged
	// into it during this run.
	merged map[string]*githubclt.PullRequest

	logger *zap.Logger
}

func NewCoordinator(clt GithubClient, approveMsg string) *Coordinator {
	return &Coordinator{
		clt:        clt,
		approveMsg: approveMsg,
		merged:     map[string]*githubclt.PullRequest{},
		logger:     zap.L().Named("coordinator"),
	}
}

// Process consumes ready until it is exhausted and applies the merge or
// rebase decision per pull request, in iteration order.
// The first failing operation aborts processing.
func (c *Coordinator) Process(ctx context.Context, ready githubclt.PRIterator) error {
	for {
		pr, err := ready.Next()
		if err != nil {
			return err
		}

		if pr == nil {
			return nil
		}

		if _, taken := c.merged[pr.BaseRefName]; taken {
			if err := c.rebase(ctx, pr); err != nil {
				return err
			}

			continue
		}

		if err := c.approveAndMerge(ctx, pr); err != nil {
			return err
		}
	}
}

func (c *Coordinator) approveAndMerge(ctx context.Context, pr *githubclt.PullRequest) error {
	logger := c.logger.With(
		logfields.PullRequest(pr.Number),
		logfields.BaseBranch(pr.BaseRefName),
	)

	logger.Info(
		"pull request is ready, approving and merging",
		logfields.Event("pull_request_merging"),
	)

	comment := strings.Replace(c.approveMsg, "{}", strconv.Itoa(pr.Number), 1)
	if err := c.clt.CreateReviewComment(ctx, pr.Number, comment); err != nil {
		return fmt.Errorf("posting approval comment on pull request %d failed: %w", pr.Number, err)
	}

	if err := c.clt.Merge(ctx, pr.Number); err != nil {
		return fmt.Errorf("merging pull request %d failed: %w", pr.Number, err)
	}

	c.merged[pr.BaseRefName] = pr

	logger.Info(
		"pull request merged",
		logfields.Event("pull_request_merged"),
	)

	return nil
}

func (c *Coordinator) rebase(ctx context.Context, pr *githubclt.PullRequest) error {
	c.logger.Info(
		"base branch already received a merge during this run, rebasing pull request",
		logfields.PullRequest(pr.Number),
		logfields.BaseBranch(pr.BaseRefName),
		logfields.Event("pull_request_rebasing"),
	)

	if err := c.clt.UpdateBranch(ctx, pr.Number); err != nil {
		return fmt.Errorf("rebasing pull request %d failed: %w", pr.Number, err)
	}

	return nil
}
