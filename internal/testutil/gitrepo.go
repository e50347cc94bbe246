// Package testutil builds throwaway git repositories for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultName and DefaultEmail sign commits made with Commit.
const (
	DefaultName  = "Nate-Wilkins"
	DefaultEmail = "nate-wilkins@code-null.com"
)

// Repo is an on-disk repository with a worktree
type Repo struct {
	t     testing.TB
	Path  string
	Repo  *gogit.Repository
	files int
}

// InitRepo creates an empty non-bare repository in a temp dir
func InitRepo(t testing.TB) *Repo {
	t.Helper()
	path := t.TempDir()
	repo, err := gogit.PlainInit(path, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &Repo{t: t, Path: path, Repo: repo}
}

// Commit commits a new file on HEAD signed by the default author
func (r *Repo) Commit(message string, when time.Time) plumbing.Hash {
	r.t.Helper()
	return r.CommitAs(message, when, DefaultName, DefaultEmail)
}

// CommitAs commits a new file on HEAD with the given author and committer
func (r *Repo) CommitAs(message string, when time.Time, name, email string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()

	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}

	r.files++
	file := fmt.Sprintf("file-%03d.txt", r.files)
	if err := os.WriteFile(filepath.Join(r.Path, file), []byte(message+"\n"), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", file, err)
	}
	if _, err := wt.Add(file); err != nil {
		r.t.Fatalf("add %s: %v", file, err)
	}

	sig := &object.Signature{Name: name, Email: email, When: when}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	if err != nil {
		r.t.Fatalf("commit %q: %v", message, err)
	}
	return hash
}

// Head returns the commit HEAD points at
func (r *Repo) Head() plumbing.Hash {
	r.t.Helper()
	ref, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	return ref.Hash()
}

// SetRef points a fully qualified reference at hash
func (r *Repo) SetRef(name string, hash plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.ReferenceName(name), hash)
	if err := r.Repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("set reference %s: %v", name, err)
	}
}

// Checkout moves HEAD to the local branch, creating it at hash when non-zero
func (r *Repo) Checkout(branch string, hash plumbing.Hash) {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	opts := &gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch)}
	if !hash.IsZero() {
		opts.Create = true
		opts.Hash = hash
	}
	if err := wt.Checkout(opts); err != nil {
		r.t.Fatalf("checkout %s: %v", branch, err)
	}
}

// AddSubmodule registers a submodule at relPath, creates its module storage
// under .git/modules and returns its repository. Like a fresh clone, the
// submodule directory gets a .git file pointing at that storage.
func (r *Repo) AddSubmodule(name, relPath string) *Repo {
	r.t.Helper()

	sub := r.registerSubmodule(name, relPath)
	repo, err := sub.Repository()
	if err != nil {
		r.t.Fatalf("open submodule: %v", err)
	}
	return &Repo{t: r.t, Path: filepath.Join(r.Path, relPath), Repo: repo}
}

// RegisterSubmodule records a submodule in .gitmodules and .git/config and
// creates its empty directory, without cloning it. It returns the directory.
func (r *Repo) RegisterSubmodule(name, relPath string) string {
	r.t.Helper()

	r.registerSubmodule(name, relPath)
	dir := filepath.Join(r.Path, relPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.t.Fatalf("create submodule directory: %v", err)
	}
	return dir
}

func (r *Repo) registerSubmodule(name, relPath string) *gogit.Submodule {
	r.t.Helper()

	gitmodules := fmt.Sprintf("[submodule %q]\n\tpath = %s\n\turl = file:///%s.git\n", name, relPath, name)
	if err := os.WriteFile(filepath.Join(r.Path, ".gitmodules"), []byte(gitmodules), 0o644); err != nil {
		r.t.Fatalf("write .gitmodules: %v", err)
	}

	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	subs, err := wt.Submodules()
	if err != nil {
		r.t.Fatalf("list submodules: %v", err)
	}

	for _, sub := range subs {
		if sub.Config().Name != name {
			continue
		}
		if err := sub.Init(); err != nil {
			r.t.Fatalf("init submodule: %v", err)
		}
		return sub
	}

	r.t.Fatalf("submodule %s not registered", name)
	return nil
}

// UnlinkWorktree removes the .git file of a submodule checkout so that
// discovery from its directory finds the enclosing repository. The module
// storage is left in place.
func (r *Repo) UnlinkWorktree() {
	r.t.Helper()
	if err := os.Remove(filepath.Join(r.Path, ".git")); err != nil {
		r.t.Fatalf("remove .git link: %v", err)
	}
}
