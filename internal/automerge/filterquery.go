package automerge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	"go.uber.org/zap"

	"github.com/simplesurance/automerger/internal/githubclt"
	"github.com/simplesurance/automerger/internal/logfields"
)

// filterQueryStage passes pull requests for that the configured jq query
// evaluates to true on their JSON representation.
// The query must return exactly one boolean result, everything else is an
// error and aborts the run.
type filterQueryStage struct {
	src    githubclt.PRIterator
	ctx    context.Context
	query  *gojq.Query
	logger *zap.Logger
}

func (s *filterQueryStage) Next() (*githubclt.PullRequest, error) {
	for {
		pr, err := s.src.Next()
		if err != nil || pr == nil {
			return pr, err
		}

		match, err := s.match(pr)
		if err != nil {
			return nil, err
		}

		if match {
			s.logger.Debug(
				"pull request matches filter query",
				logfields.PullRequest(pr.Number),
				logfields.Event("filter_query_passed"),
			)

			return pr, nil
		}

		s.logger.Info(
			"skipped, pull request does not match filter query",
			logfields.PullRequest(pr.Number),
			logfields.Event("pull_request_skipped"),
		)
	}
}

func (s *filterQueryStage) match(pr *githubclt.PullRequest) (bool, error) {
	data, err := json.Marshal(pr)
	if err != nil {
		return false, fmt.Errorf("marshalling pull request %d to json failed: %w", pr.Number, err)
	}

	var unmarshalled any
	if err := json.Unmarshal(data, &unmarshalled); err != nil {
		return false, fmt.Errorf("unmarshalling pull request %d json failed: %w", pr.Number, err)
	}

	results, errs := goJQIterToSlice(s.query.RunWithContext(s.ctx, unmarshalled))
	if len(errs) != 0 {
		return false, fmt.Errorf("filter query returned errors, query: %q, errors: %s",
			s.query.String(), errString(errs))
	}

	if len(results) != 1 {
		return false, fmt.Errorf("filter query returned %d results, expected 1, query: %q",
			len(results), s.query.String())
	}

	match, ok := results[0].(bool)
	if !ok {
		return false, fmt.Errorf("filter query evaluated to %T, expected a boolean, query: %q",
			results[0], s.query.String())
	}

	return match, nil
}

func goJQIterToSlice(iter gojq.Iter) ([]any, []error) {
	var result []any
	var errors []error

	for {
		res, ok := iter.Next()
		if !ok {
			return result, errors
		}

		if err, isErr := res.(error); isErr {
			errors = append(errors, err)
			continue
		}

		result = append(result, res)
	}
}

func errString(errs []error) string {
	var result strings.Builder

	for i, err := range errs {
		if i > 0 {
			result.WriteString("; ")
		}

		result.WriteString(fmt.Sprintf("error %d: %s", i, err))
	}

	return result.String()
}
