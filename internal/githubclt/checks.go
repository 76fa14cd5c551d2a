package githubclt

// Buckets gh classifies check results into.
const (
	BucketPass     = "pass"
	BucketFail     = "fail"
	BucketPending  = "pending"
	BucketSkipping = "skipping"
	BucketCancel   = "cancel"
)

// Check is a single status check result of a pull request.
type Check struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`
}

// Checks partitions the status checks of one pull request by their result
// bucket.
type Checks struct {
	Passed   []*Check `json:"passed"`
	Failed   []*Check `json:"failed"`
	Pending  []*Check `json:"pending"`
	Skipping []*Check `json:"skipping"`
	Cancel   []*Check `json:"cancel"`
}

// ClassifyChecks partitions checks by their bucket value, the input order is
// preserved per bucket.
// Checks with an unrecognized bucket are dropped, they count neither as
// passing nor as failing.
func ClassifyChecks(checks []*Check) *Checks {
	var result Checks

	for _, check := range checks {
		switch check.Bucket {
		case BucketPass:
			result.Passed = append(result.Passed, check)
		case BucketFail:
			result.Failed = append(result.Failed, check)
		case BucketPending:
			result.Pending = append(result.Pending, check)
		case BucketSkipping:
			result.Skipping = append(result.Skipping, check)
		case BucketCancel:
			result.Cancel = append(result.Cancel, check)
		}
	}

	return &result
}
