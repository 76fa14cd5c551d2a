package automerge

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/automerger/internal/automerge/mocks"
	"github.com/simplesurance/automerger/internal/githubclt"
)

const approveMsg = "All status checks passed for PR #{}."

func TestCoordinatorMergesOnlyFirstPRPerBaseBranch(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockctrl := gomock.NewController(t)
	ghClient := mocks.NewMockGithubClient(mockctrl)

	comment := ghClient.EXPECT().
		CreateReviewComment(gomock.Any(), gomock.Eq(1), gomock.Eq("All status checks passed for PR #1.")).
		Return(nil)
	merge := ghClient.EXPECT().
		Merge(gomock.Any(), gomock.Eq(1)).
		Return(nil).
		After(comment)
	ghClient.EXPECT().
		UpdateBranch(gomock.Any(), gomock.Eq(2)).
		Return(nil).
		After(merge)

	coordinator := NewCoordinator(ghClient, approveMsg)
	err := coordinator.Process(context.Background(), &sliceIter{
		prs: []*githubclt.PullRequest{newPR(1), newPR(2)},
	})
	require.NoError(t, err)

	require.Contains(t, coordinator.merged, "main")
	assert.Equal(t, 1, coordinator.merged["main"].Number)
}

func TestCoordinatorMergesOncePerDistinctBaseBranch(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockctrl := gomock.NewController(t)
	ghClient := mocks.NewMockGithubClient(mockctrl)

	release := newPR(2)
	release.BaseRefName = "release"

	ghClient.EXPECT().CreateReviewComment(gomock.Any(), gomock.Eq(1), gomock.Any()).Return(nil)
	ghClient.EXPECT().Merge(gomock.Any(), gomock.Eq(1)).Return(nil)
	ghClient.EXPECT().CreateReviewComment(gomock.Any(), gomock.Eq(2), gomock.Any()).Return(nil)
	ghClient.EXPECT().Merge(gomock.Any(), gomock.Eq(2)).Return(nil)
	ghClient.EXPECT().UpdateBranch(gomock.Any(), gomock.Eq(3)).Return(nil)

	coordinator := NewCoordinator(ghClient, approveMsg)
	err := coordinator.Process(context.Background(), &sliceIter{
		prs: []*githubclt.PullRequest{newPR(1), release, newPR(3)},
	})
	require.NoError(t, err)

	assert.Len(t, coordinator.merged, 2)
}

func TestCoordinatorRebaseFailureAbortsRun(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockctrl := gomock.NewController(t)
	ghClient := mocks.NewMockGithubClient(mockctrl)

	wantErr := errors.New("update-branch failed")

	ghClient.EXPECT().CreateReviewComment(gomock.Any(), gomock.Eq(1), gomock.Any()).Return(nil)
	ghClient.EXPECT().Merge(gomock.Any(), gomock.Eq(1)).Return(nil)
	ghClient.EXPECT().UpdateBranch(gomock.Any(), gomock.Eq(2)).Return(wantErr)

	coordinator := NewCoordinator(ghClient, approveMsg)
	err := coordinator.Process(context.Background(), &sliceIter{
		prs: []*githubclt.PullRequest{newPR(1), newPR(2), newPR(3)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wantErr))
}

func TestCoordinatorMergeFailureAbortsRun(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockctrl := gomock.NewController(t)
	ghClient := mocks.NewMockGithubClient(mockctrl)

	wantErr := errors.New("merge failed")

	ghClient.EXPECT().CreateReviewComment(gomock.Any(), gomock.Eq(1), gomock.Any()).Return(nil)
	ghClient.EXPECT().Merge(gomock.Any(), gomock.Eq(1)).Return(wantErr)

	coordinator := NewCoordinator(ghClient, approveMsg)
	err := coordinator.Process(context.Background(), &sliceIter{
		prs: []*githubclt.PullRequest{newPR(1), newPR(2)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, wantErr))

	// the failed merge did not claim the base branch
	assert.Empty(t, coordinator.merged)
}
