package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher clones git dependencies into a per-user cache. Each pinned
// version gets its own checkout directory so switching pins never rewrites
// a checkout in place.
type GitFetcher struct {
	cacheDir string
}

func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{cacheDir: cacheDir}
}

// Fetch resolves spec to a commit and returns the locked package describing
// the checkout.
func (g *GitFetcher) Fetch(name string, spec *DependencySpec) (*LockedPackage, error) {
	if g == nil {
		return nil, errors.New("git fetcher unavailable")
	}
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, fmt.Errorf("dependency %q: git URL required", name)
	}

	baseDir, err := securejoin.SecureJoin(g.cacheDir, filepath.Join("git", sanitizeSegment(name)))
	if err != nil {
		return nil, fmt.Errorf("dependency %q: cache path: %w", name, err)
	}
	version, commit, checkoutDir, err := ensureGitCheckout(baseDir, url, spec)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: %w", name, err)
	}

	checksum, err := dirChecksum(checkoutDir)
	if err != nil {
		return nil, fmt.Errorf("dependency %q: checksum: %w", name, err)
	}

	return &LockedPackage{
		Name:     name,
		Version:  version,
		Source:   "git+" + url,
		Commit:   commit,
		Checksum: checksum,
		Path:     checkoutDir,
	}, nil
}

func ensureGitCheckout(baseDir, url string, spec *DependencySpec) (version, commit, dir string, err error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", "", err
	}

	revision, descriptor, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", "", "", err
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", "", fmt.Errorf("resolve revision %s: %w", descriptor, err)
	}

	commit = hash.String()
	version = gitPinnedVersion(descriptor, commit)
	targetDir, err := securejoin.SecureJoin(baseDir, sanitizeSegment(version))
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", "", err
	}
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return version, commit, targetDir, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", "", fmt.Errorf("git checkout %s: %w", descriptor, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", "", err
	}
	return version, commit, targetDir, nil
}

func gitPinnedVersion(descriptor, commit string) string {
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return descriptor + "@" + commit
}

// Branches only exist as remote-tracking refs after a clone, apart from the
// default branch.
func gitRevisionFromSpec(spec *DependencySpec) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision(plumbing.NewTagReferenceName(tag)), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision(plumbing.NewRemoteReferenceName("origin", branch)), branch, nil
	}
	return "", "", fmt.Errorf("git dependencies require rev, tag or branch")
}

// dirChecksum hashes every regular file under root, outside .git, in a
// stable order.
func dirChecksum(root string) (string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	h := sha256.New()
	for _, p := range files {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return "", err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write([]byte{0})
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
