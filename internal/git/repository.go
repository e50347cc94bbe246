package git

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/gitclock/internal/errors"
	"github.com/rohankatakam/gitclock/internal/models"
)

// Repository adapts a go-git repository to the Backend contract
type Repository struct {
	repo *gogit.Repository
	path string
}

// Open discovers the repository containing path. When path is the worktree
// of a submodule registered in that repository, the submodule's repository
// is returned instead of the enclosing one.
func Open(path string, logger *logrus.Logger) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.RepositoryNotFoundErrorf(err, "failed to open repository at %s", path)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.RepositoryNotFoundErrorf(err, "failed to open repository at %s", path)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if stderrors.Is(err, gogit.ErrIsBareRepository) {
			return &Repository{repo: repo, path: absPath}, nil
		}
		return nil, errors.RepositoryAccessErrorf(err, "failed to read worktree of %s", path)
	}
	root := wt.Filesystem.Root()

	submodules, err := wt.Submodules()
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to list submodules of %s", root)
	}

	logger.WithFields(logrus.Fields{
		"repository": root,
		"submodules": len(submodules),
	}).Debug("Discovered repository")

	for _, sub := range submodules {
		subPath := filepath.Join(root, sub.Config().Path)
		logger.WithFields(logrus.Fields{
			"submodule": subPath,
			"path":      absPath,
		}).Debug("Checking submodule path")

		if samePath(subPath, absPath) {
			subRepo, err := openSubmodule(repo, wt, sub.Config().Name, sub.Config().Path)
			if err != nil {
				return nil, err
			}
			return &Repository{repo: subRepo, path: subPath}, nil
		}
	}

	return &Repository{repo: repo, path: root}, nil
}

// openSubmodule opens the module storage under .git/modules/<name> with the
// submodule directory as its worktree. A module without a HEAD (registered but
// never cloned) is an error; nothing is written to either repository.
func openSubmodule(parent *gogit.Repository, wt *gogit.Worktree, name, relPath string) (*gogit.Repository, error) {
	storer, err := parent.Storer.Module(name)
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to open submodule %s", name)
	}

	if _, err := storer.Reference(plumbing.HEAD); err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "submodule %s is not checked out", name).
			WithContext("path", relPath)
	}

	worktree, err := wt.Filesystem.Chroot(relPath)
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to open submodule %s", name)
	}

	subRepo, err := gogit.Open(storer, worktree)
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to open submodule %s", name)
	}
	return subRepo, nil
}

func samePath(a, b string) bool {
	return canonicalPath(a) == canonicalPath(b)
}

func canonicalPath(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return filepath.Clean(p)
}

// Path returns the worktree root (or the repository path for bare repositories)
func (r *Repository) Path() string {
	return r.path
}

// References lists every reference that points directly at a commit, in the
// order the storage enumerates them. Symbolic references are skipped.
func (r *Repository) References() ([]models.Reference, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to list references")
	}
	defer iter.Close()

	var refs []models.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		refs = append(refs, models.Reference{
			Name:   ref.Name().String(),
			Target: ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to list references")
	}

	return refs, nil
}

// Walk returns every commit reachable from target, oldest first by committer time
func (r *Repository) Walk(target string) ([]models.Commit, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  plumbing.NewHash(target),
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to walk history from %s", target)
	}
	defer iter.Close()

	var commits []models.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, toCommit(c))
		return nil
	})
	if err != nil {
		return nil, errors.RepositoryAccessErrorf(err, "failed to walk history from %s", target)
	}

	// Log yields newest first
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	return commits, nil
}

func toCommit(c *object.Commit) models.Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	summary := c.Message
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}

	return models.Commit{
		SHA:         c.Hash.String(),
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		Timestamp:   c.Committer.When,
		Summary:     strings.TrimRight(summary, "\r"),
		ParentSHAs:  parents,
	}
}
