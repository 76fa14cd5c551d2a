package automerge

import (
	"context"
	"testing"

	"github.com/itchyny/gojq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/automerger/internal/githubclt"
)

func mustParseQuery(t *testing.T, query string) *gojq.Query {
	t.Helper()

	q, err := gojq.Parse(query)
	require.NoError(t, err)

	return q
}

func TestFilterQueryStagePassesMatchingPRs(t *testing.T) {
	stage := filterQueryStage{
		src:    &sliceIter{prs: []*githubclt.PullRequest{newPR(5), newPR(7)}},
		ctx:    context.Background(),
		query:  mustParseQuery(t, ".number == 5"),
		logger: zaptest.NewLogger(t),
	}

	assert.Equal(t, []int{5}, drain(t, &stage))
}

func TestFilterQueryStageCanMatchLabels(t *testing.T) {
	stage := filterQueryStage{
		src: &sliceIter{prs: []*githubclt.PullRequest{
			newPR(1, "automerge"),
			newPR(2, "bug"),
		}},
		ctx:    context.Background(),
		query:  mustParseQuery(t, `.labels | contains(["automerge"])`),
		logger: zaptest.NewLogger(t),
	}

	assert.Equal(t, []int{1}, drain(t, &stage))
}

func TestFilterQueryStageNonBooleanResultIsAnError(t *testing.T) {
	stage := filterQueryStage{
		src:    &sliceIter{prs: []*githubclt.PullRequest{newPR(5)}},
		ctx:    context.Background(),
		query:  mustParseQuery(t, ".number"),
		logger: zaptest.NewLogger(t),
	}

	_, err := stage.Next()
	require.Error(t, err)
}
