package automerge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/automerger/internal/githubclt"
	"github.com/simplesurance/automerger/internal/logfields"
)

// labelStage passes pull requests that carry all required labels.
// Pull requests of allowed bot authors pass regardless of their labels, an
// empty required-label set lets every pull request pass.
type labelStage struct {
	src            githubclt.PRIterator
	requiredLabels []string
	botAuthors     []string
	logger         *zap.Logger
}

func (s *labelStage) Next() (*githubclt.PullRequest, error) {
	for {
		pr, err := s.src.Next()
		if err != nil || pr == nil {
			return pr, err
		}

		logger := s.logger.With(logfields.PullRequest(pr.Number))

		if pr.Author.IsBot && contains(s.botAuthors, pr.Author.Login) {
			logger.Debug(
				"pull request is from an allowed bot author",
				logfields.Author(pr.Author.Login),
				logfields.Event("label_filter_passed"),
			)

			return pr, nil
		}

		var missing []string
		for _, required := range s.requiredLabels {
			if !contains(pr.Labels, required) {
				missing = append(missing, required)
			}
		}

		if len(missing) == 0 {
			logger.Debug(
				"pull request has all required labels",
				logfields.Event("label_filter_passed"),
			)

			return pr, nil
		}

		logger.Info(
			"skipped, pull request is missing required labels",
			zap.Strings("missing_labels", missing),
			logfields.Event("pull_request_skipped"),
		)
	}
}

// mergeableStage passes pull requests whose mergeability status is
// MERGEABLE, conflicting and unknown statuses are excluded.
type mergeableStage struct {
	src    githubclt.PRIterator
	logger *zap.Logger
}

func (s *mergeableStage) Next() (*githubclt.PullRequest, error) {
	for {
		pr, err := s.src.Next()
		if err != nil || pr == nil {
			return pr, err
		}

		if pr.Mergeable == githubclt.MergeableStatusMergeable {
			s.logger.Debug(
				"pull request is mergeable",
				logfields.PullRequest(pr.Number),
				logfields.Event("mergeable_filter_passed"),
			)

			return pr, nil
		}

		s.logger.Info(
			"skipped, pull request is not mergeable",
			logfields.PullRequest(pr.Number),
			zap.String("mergeable", pr.Mergeable),
			logfields.Event("pull_request_skipped"),
		)
	}
}

// checkReadinessStage fetches and classifies the status checks of a pull
// request and passes it when no check failed, is pending or was cancelled
// and at least minPassingChecks checks passed.
// It is the first point where checks are fetched, only pull requests that
// survived the cheaper stages cause check queries.
type checkReadinessStage struct {
	src              githubclt.PRIterator
	ctx              context.Context
	clt              GithubClient
	minPassingChecks int
	logger           *zap.Logger
}

func (s *checkReadinessStage) Next() (*githubclt.PullRequest, error) {
	for {
		pr, err := s.src.Next()
		if err != nil || pr == nil {
			return pr, err
		}

		rawChecks, err := s.clt.FetchChecks(s.ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("fetching checks of pull request %d failed: %w", pr.Number, err)
		}

		pr.Checks = githubclt.ClassifyChecks(rawChecks)

		logger := s.logger.With(logfields.PullRequest(pr.Number))

		if len(pr.Checks.Failed) > 0 || len(pr.Checks.Pending) > 0 || len(pr.Checks.Cancel) > 0 {
			logger.Info(
				"skipped, not all status checks are green",
				zap.Int("failed_checks", len(pr.Checks.Failed)),
				zap.Int("pending_checks", len(pr.Checks.Pending)),
				zap.Int("cancelled_checks", len(pr.Checks.Cancel)),
				logfields.Event("pull_request_skipped"),
			)

			continue
		}

		if passed := len(pr.Checks.Passed); passed < s.minPassingChecks {
			logger.Info(
				"skipped, all status checks green but too few passed",
				zap.Int("passed_checks", passed),
				zap.Int("min_passing_checks", s.minPassingChecks),
				logfields.Event("pull_request_skipped"),
			)

			continue
		}

		logger.Debug(
			"pull request status checks are green",
			zap.Int("passed_checks", len(pr.Checks.Passed)),
			logfields.Event("check_filter_passed"),
		)

		return pr, nil
	}
}
