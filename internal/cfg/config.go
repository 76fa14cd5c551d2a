// Package cfg loads the automerger configuration.
// Values are read from an optional TOML file, environment variables take
// precedence over file values.
package cfg

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml"

	"github.com/simplesurance/automerger/internal/stringutils"
)

// Environment variables that override configuration file values.
const (
	EnvApproveMsg       = "APPROVE_MSG"
	EnvBotAuthors       = "BOT_AUTHORS"
	EnvDryRun           = "DRY_RUN"
	EnvLabels           = "LABELS"
	EnvMinPassingChecks = "MIN_PASSING_CHECKS"
	EnvFilterQuery      = "FILTER_QUERY"
)

type Config struct {
	// ApproveMsg is the review comment posted before a pull request is
	// merged, "{}" is substituted with the pull request number.
	ApproveMsg string `toml:"approve_msg"`
	// BotAuthors are logins of automation accounts whose pull requests
	// are eligible without carrying the required labels.
	BotAuthors []string `toml:"bot_authors"`
	DryRun     bool     `toml:"dry_run"`
	// Labels must all be present on a pull request to make it eligible.
	Labels           []string `toml:"labels"`
	MinPassingChecks int      `toml:"min_passing_checks"`
	// FilterQuery is an optional jq expression that must evaluate to true
	// for a pull request to be eligible. Empty disables the filter.
	FilterQuery string `toml:"filter_query"`
	LogFormat   string `toml:"log_format"`
	LogTimeKey  string `toml:"log_time_key"`
	LogLevel    string `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		ApproveMsg:       "All status checks passed for PR #{}.",
		DryRun:           true,
		Labels:           []string{"automerge"},
		MinPassingChecks: 1,
		LogFormat:        "logfmt",
		LogTimeKey:       "time",
		LogLevel:         "info",
	}
}

// Load reads a TOML configuration. Keys that are not set in the document
// keep their default values.
func Load(reader io.Reader) (*Config, error) {
	result := Default()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(c)
}

// ApplyEnv overrides configuration values with the values of set
// environment variables.
// List-valued variables are comma-separated, empty elements are dropped.
// DRY_RUN is true only when set to exactly "true".
func (c *Config) ApplyEnv() error {
	if val, set := os.LookupEnv(EnvApproveMsg); set {
		c.ApproveMsg = val
	}

	if val, set := os.LookupEnv(EnvBotAuthors); set {
		c.BotAuthors = stringutils.SplitNonEmpty(val, ",")
	}

	if val, set := os.LookupEnv(EnvDryRun); set {
		c.DryRun = val == "true"
	}

	if val, set := os.LookupEnv(EnvLabels); set {
		c.Labels = stringutils.SplitNonEmpty(val, ",")
	}

	if val, set := os.LookupEnv(EnvMinPassingChecks); set {
		min, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("value of %s environment variable is not an integer: %w", EnvMinPassingChecks, err)
		}

		c.MinPassingChecks = min
	}

	if val, set := os.LookupEnv(EnvFilterQuery); set {
		c.FilterQuery = val
	}

	return nil
}
