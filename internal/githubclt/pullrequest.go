package githubclt

// Mergeability values gh reports for a pull request.
const (
	MergeableStatusMergeable   = "MERGEABLE"
	MergeableStatusConflicting = "CONFLICTING"
	MergeableStatusUnknown     = "UNKNOWN"
)

// PullRequestAuthor identifies the account that created a pull request.
type PullRequestAuthor struct {
	IsBot bool   `json:"is_bot"`
	Login string `json:"login"`
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
}

// PullRequest is an open pull request of the current repository.
// Checks is nil until check classification ran for the pull request, it is
// populated at most once.
type PullRequest struct {
	Number      int               `json:"number"`
	Title       string            `json:"title"`
	Labels      []string          `json:"labels"`
	Author      PullRequestAuthor `json:"author"`
	Mergeable   string            `json:"mergeable"`
	BaseRefName string            `json:"baseRefName"`
	Checks      *Checks           `json:"checks,omitempty"`
}
