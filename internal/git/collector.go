package git

import (
	"fmt"
	"regexp"

	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/models"
)

// Backend is the version-control primitive the collector reads from.
// *Repository is the go-git implementation.
type Backend interface {
	// References lists direct references in enumeration order
	References() ([]models.Reference, error)
	// Walk returns the commits reachable from target, oldest first
	Walk(target string) ([]models.Commit, error)
}

// MatchReferences selects the references a branch selector refers to. With a
// branch name only refs/<prefix>/<branch> matches; without one every reference
// under refs/<prefix>/ does.
func MatchReferences(refs []models.Reference, branch string, kind models.BranchKind) ([]models.Reference, error) {
	prefix := kind.RefPrefix()

	if branch != "" {
		want := fmt.Sprintf("refs/%s/%s", prefix, branch)
		var matched []models.Reference
		for _, ref := range refs {
			if ref.Name == want {
				matched = append(matched, ref)
			}
		}
		return matched, nil
	}

	pattern := fmt.Sprintf("^refs/%s/.*", prefix)
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.InvalidPatternError(err, pattern)
	}

	var matched []models.Reference
	for _, ref := range refs {
		if rx.MatchString(ref.Name) {
			matched = append(matched, ref)
		}
	}
	return matched, nil
}

// CollectCommits walks every matching reference and concatenates the commits
// in per-reference chronological order. A commit reached from an earlier
// reference is not emitted again.
func CollectCommits(backend Backend, branch string, kind models.BranchKind) ([]models.Commit, error) {
	refs, err := backend.References()
	if err != nil {
		return nil, err
	}

	matched, err := MatchReferences(refs, branch, kind)
	if err != nil {
		return nil, err
	}

	var result []models.Commit
	seen := make(map[string]bool)
	for _, ref := range matched {
		commits, err := backend.Walk(ref.Target)
		if err != nil {
			return nil, err
		}
		for _, commit := range commits {
			if seen[commit.SHA] {
				continue
			}
			seen[commit.SHA] = true
			result = append(result, commit)
		}
	}

	return result, nil
}
