package config

import (
	"strings"
	"time"

	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/models"
	"github.com/rohankatakam/gitclock/internal/temporal"
)

// OutputFormat selects the result renderer
type OutputFormat string

const (
	OutputStdout OutputFormat = "stdout"
	OutputJSON   OutputFormat = "json"
	OutputYAML   OutputFormat = "yaml"
)

// OutputFormats lists the accepted --format values
var OutputFormats = []string{string(OutputStdout), string(OutputJSON), string(OutputYAML)}

// ParseOutputFormat accepts stdout, json or yaml in any case
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputStdout:
		return OutputStdout, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputYAML:
		return OutputYAML, nil
	default:
		return "", errors.ParseErrorf("invalid output format '%s' (expected one of %s)", s, strings.Join(OutputFormats, ", "))
	}
}

// StatsSettings is the validated, typed form of StatsConfig for one run
type StatsSettings struct {
	RepoPath            string
	MaxCommitDiff       time.Duration
	FirstCommitAddition time.Duration
	Since               temporal.TimeBound
	Until               temporal.TimeBound
	IncludeMerges       bool
	EmailAliases        map[string]string
	Branch              string
	BranchKind          models.BranchKind
	Format              OutputFormat
}

// ParseStats validates raw statistics configuration
func ParseStats(repoPath string, raw StatsConfig) (*StatsSettings, error) {
	if raw.MaxCommitDiff < 0 {
		return nil, errors.ParseErrorf("max commit diff must not be negative, got %d", raw.MaxCommitDiff)
	}
	if raw.FirstCommitAdd < 0 {
		return nil, errors.ParseErrorf("first commit add must not be negative, got %d", raw.FirstCommitAdd)
	}

	since, err := temporal.ParseTimeBound(defaultString(raw.Since, "always"))
	if err != nil {
		return nil, err
	}
	until, err := temporal.ParseTimeBound(defaultString(raw.Until, "always"))
	if err != nil {
		return nil, err
	}

	aliases, err := ParseEmailAliases(raw.Emails)
	if err != nil {
		return nil, err
	}

	kind, ok := models.ParseBranchKind(raw.BranchType)
	if !ok {
		return nil, errors.ParseErrorf("invalid branch type '%s'", raw.BranchType)
	}

	format, err := ParseOutputFormat(defaultString(raw.Format, string(OutputStdout)))
	if err != nil {
		return nil, err
	}

	return &StatsSettings{
		RepoPath:            defaultString(repoPath, "."),
		MaxCommitDiff:       time.Duration(raw.MaxCommitDiff) * time.Minute,
		FirstCommitAddition: time.Duration(raw.FirstCommitAdd) * time.Minute,
		Since:               since,
		Until:               until,
		IncludeMerges:       raw.MergeRequests,
		EmailAliases:        aliases,
		Branch:              raw.Branch,
		BranchKind:          kind,
		Format:              format,
	}, nil
}

// ParseEmailAlias splits OTHER_EMAIL=MAIN_EMAIL at the first '='
func ParseEmailAlias(s string) (secondary, primary string, err error) {
	secondary, primary, found := strings.Cut(s, "=")
	if !found {
		return "", "", errors.ParseErrorf("could not parse email alias '%s'", s)
	}
	return secondary, primary, nil
}

// ParseEmailAliases builds the alias table; later pairs win on duplicate keys
func ParseEmailAliases(pairs []string) (map[string]string, error) {
	aliases := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		secondary, primary, err := ParseEmailAlias(pair)
		if err != nil {
			return nil, err
		}
		aliases[secondary] = primary
	}
	return aliases, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
