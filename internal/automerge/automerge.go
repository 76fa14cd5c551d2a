package automerge

import (
	"context"
	"fmt"

	"github.com/itchyny/gojq"
	"go.uber.org/zap"

	"github.com/simplesurance/automerger/internal/cfg"
	"github.com/simplesurance/automerger/internal/githubclt"
)

const loggerName = "automerge"

// GithubClient is the interface to GitHub that the automerger uses.
type GithubClient interface {
	ListOpenPullRequests(ctx context.Context) githubclt.PRIterator
	FetchChecks(ctx context.Context, prNumber int) ([]*githubclt.Check, error)
	CreateReviewComment(ctx context.Context, prNumber int, comment string) error
	Merge(ctx context.Context, prNumber int) error
	UpdateBranch(ctx context.Context, prNumber int) error
}

// Automerger runs one merge pass over the open pull requests of a
// repository.
type Automerger struct {
	clt GithubClient

	requiredLabels   []string
	botAuthors       []string
	minPassingChecks int
	approveMsg       string
	filterQuery      *gojq.Query

	logger *zap.Logger
}

func New(clt GithubClient, config *cfg.Config) (*Automerger, error) {
	var query *gojq.Query

	if config.FilterQuery != "" {
		var err error

		query, err = gojq.Parse(config.FilterQuery)
		if err != nil {
			return nil, fmt.Errorf("parsing filter query %q failed: %w", config.FilterQuery, err)
		}
	}

	return &Automerger{
		clt:              clt,
		requiredLabels:   config.Labels,
		botAuthors:       config.BotAuthors,
		minPassingChecks: config.MinPassingChecks,
		approveMsg:       config.ApproveMsg,
		filterQuery:      query,
		logger:           zap.L().Named(loggerName),
	}, nil
}

// Run performs a single pass and returns when all open pull requests were
// processed.
// The first error of a stage or of an external command aborts the pass,
// already merged or rebased pull requests are left as-is.
func (a *Automerger) Run(ctx context.Context) error {
	a.logger.Info(
		"starting pass over open pull requests",
		zap.Strings("required_labels", a.requiredLabels),
	)

	ready := a.pipeline(ctx, a.clt.ListOpenPullRequests(ctx))

	return NewCoordinator(a.clt, a.approveMsg).Process(ctx, ready)
}

// pipeline chains the eligibility stages, ordered cheapest first.
// Every stage preserves the relative order of the pull requests it passes
// through.
func (a *Automerger) pipeline(ctx context.Context, it githubclt.PRIterator) githubclt.PRIterator {
	if a.filterQuery != nil {
		it = &filterQueryStage{
			src:    it,
			ctx:    ctx,
			query:  a.filterQuery,
			logger: a.logger,
		}
	}

	it = &labelStage{
		src:            it,
		requiredLabels: a.requiredLabels,
		botAuthors:     a.botAuthors,
		logger:         a.logger,
	}

	it = &mergeableStage{
		src:    it,
		logger: a.logger,
	}

	return &checkReadinessStage{
		src:              it,
		ctx:              ctx,
		clt:              a.clt,
		minPassingChecks: a.minPassingChecks,
		logger:           a.logger,
	}
}

func contains(haystack []string, needle string) bool {
	for _, elem := range haystack {
		if elem == needle {
			return true
		}
	}

	return false
}
