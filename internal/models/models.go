package models

import (
	"strings"
	"time"
)

// BranchKind selects which reference namespace a branch name refers to
type BranchKind string

const (
	BranchKindLocal  BranchKind = "local"
	BranchKindRemote BranchKind = "remote"
)

// RefPrefix returns the namespace below refs/ that holds branches of this kind
func (k BranchKind) RefPrefix() string {
	switch k {
	case BranchKindRemote:
		return "remotes"
	default:
		return "heads"
	}
}

// ParseBranchKind accepts "local" or "remote"
func ParseBranchKind(s string) (BranchKind, bool) {
	switch strings.ToLower(s) {
	case "", "local":
		return BranchKindLocal, true
	case "remote":
		return BranchKindRemote, true
	default:
		return "", false
	}
}

// Commit represents a git commit as read from the backend.
// An empty AuthorEmail means the commit carries no email.
type Commit struct {
	SHA         string    `json:"sha" db:"sha"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email" db:"author_email"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	Summary     string    `json:"summary" db:"summary"`
	ParentSHAs  []string  `json:"parent_shas"`
}

// IsMerge reports whether the summary line marks an auto-generated merge commit.
// The match is case sensitive.
func (c Commit) IsMerge() bool {
	return strings.HasPrefix(c.Summary, "Merge ")
}

// Reference is a named pointer to a commit
type Reference struct {
	Name   string `json:"name"`   // fully qualified, e.g. refs/heads/main
	Target string `json:"target"` // commit SHA
}

// AuthorTimeEstimate is the estimated working time of one canonical identity.
// Empty Email marks the shared bucket of commits without an email.
type AuthorTimeEstimate struct {
	AuthorName  string        `json:"author_name" db:"author_name"`
	Email       string        `json:"email" db:"email"`
	Duration    time.Duration `json:"duration" db:"duration"`
	CommitCount int           `json:"commit_count" db:"commit_count"`
}

// Hours converts the duration to hours using whole minutes only
func (e AuthorTimeEstimate) Hours() float32 {
	return float32(int64(e.Duration/time.Minute)) / 60.0
}

// Report is one persisted statistics run
type Report struct {
	ID             string               `json:"id" db:"id"`
	RepoPath       string               `json:"repo_path" db:"repo_path"`
	Branch         string               `json:"branch" db:"branch"`
	BranchKind     BranchKind           `json:"branch_kind" db:"branch_kind"`
	Since          string               `json:"since" db:"since_bound"`
	Until          string               `json:"until" db:"until_bound"`
	IncludeMerges  bool                 `json:"include_merges" db:"include_merges"`
	MaxCommitDiff  time.Duration        `json:"max_commit_diff" db:"max_commit_diff"`
	FirstCommitAdd time.Duration        `json:"first_commit_add" db:"first_commit_add"`
	TotalHours     float32              `json:"total_hours" db:"total_hours"`
	TotalCommits   int                  `json:"total_commits" db:"total_commits"`
	CreatedAt      time.Time            `json:"created_at" db:"created_at"`
	Estimates      []AuthorTimeEstimate `json:"estimates"`
}
