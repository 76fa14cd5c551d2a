package logfields

import "go.uber.org/zap"

func PullRequest(val int) zap.Field {
	return zap.Int("github.pull_request", val)
}

func BaseBranch(val string) zap.Field {
	return zap.String("git.base_branch", val)
}

func Author(val string) zap.Field {
	return zap.String("github.author", val)
}

func Title(val string) zap.Field {
	return zap.String("github.title", val)
}
