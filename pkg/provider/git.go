package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
)

// directoryStatus classifies the local clone directory before a sync.
type directoryStatus int

const (
	// dirEmpty means the directory is missing or empty, safe to clone
	// into.
	dirEmpty directoryStatus = iota
	// dirSameRepo means the directory already holds a clone of the
	// configured remote, safe to fetch.
	dirSameRepo
	// dirDifferentRepo means the directory holds a clone of some other
	// remote.
	dirDifferentRepo
	// dirConflict means the directory holds non-git content.
	dirConflict
)

// GitConfig configures a GitProvider.
type GitConfig struct {
	// RemoteURL is the repository holding the component library. SSH
	// URLs are accepted and compared as their HTTPS equivalents.
	RemoteURL string

	// Branch pins a branch; empty uses the remote's default.
	Branch string

	// Path is the local directory the repository is cloned into.
	Path string

	// Token authenticates against private remotes. Tried only after an
	// unauthenticated attempt fails with an auth error.
	Token string

	// Subdir restricts resolution to a subdirectory of the clone, for
	// monorepos where the library lives under e.g. packages/ui.
	Subdir string

	// Local carries through to the LocalProvider built over the clone.
	Local LocalConfig
}

// GitProvider serves artifacts from a git remote by keeping a local
// clone fresh and delegating resolution to a LocalProvider over it.
// The clone is shallow; the local copy is treated purely as a cache, so
// a dirty working tree skips sync rather than risking local edits.
type GitProvider struct {
	cfg    GitConfig
	logger *slog.Logger

	syncOnce sync.Once
	syncErr  error
	local    *LocalProvider
}

// NewGitProvider validates the configuration and returns a provider.
// No network traffic happens until the first fetch or an explicit
// Sync.
func NewGitProvider(cfg GitConfig, logger *slog.Logger) (*GitProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.RemoteURL) == "" {
		return nil, fmt.Errorf("remote URL cannot be empty")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("local clone path cannot be empty")
	}

	return &GitProvider{cfg: cfg, logger: logger}, nil
}

// FetchText syncs the clone once per provider lifetime, then resolves
// through the local tree.
func (gp *GitProvider) FetchText(ctx context.Context, id Identifier) (string, error) {
	local, err := gp.ensureSynced(ctx)
	if err != nil {
		return "", err
	}
	return local.FetchText(ctx, id)
}

// ListComponents syncs the clone once, then lists from the local tree.
func (gp *GitProvider) ListComponents(ctx context.Context) ([]string, error) {
	local, err := gp.ensureSynced(ctx)
	if err != nil {
		return nil, err
	}
	return local.ListComponents(ctx)
}

// Close releases the underlying local provider, if one was built.
func (gp *GitProvider) Close() {
	if gp.local != nil {
		gp.local.Close()
	}
}

func (gp *GitProvider) ensureSynced(ctx context.Context) (*LocalProvider, error) {
	gp.syncOnce.Do(func() {
		gp.syncErr = gp.Sync(ctx)
	})
	if gp.syncErr != nil {
		return nil, gp.syncErr
	}
	return gp.local, nil
}

// Sync clones the remote if the local directory is empty, or fetches
// updates if it already holds the same repository. Conflicting
// directory contents are reported, never overwritten.
func (gp *GitProvider) Sync(ctx context.Context) error {
	cleanPath, err := filepath.Abs(filepath.Clean(gp.cfg.Path))
	if err != nil {
		return fmt.Errorf("resolve clone path: %w", err)
	}

	status, err := gp.classifyCloneDir(cleanPath)
	if err != nil {
		return err
	}

	switch status {
	case dirEmpty:
		if err := gp.cloneWithAuth(ctx, cleanPath); err != nil {
			return err
		}
	case dirSameRepo:
		if err := gp.fetchWithAuth(ctx, cleanPath); err != nil {
			return err
		}
	case dirDifferentRepo, dirConflict:
		return fmt.Errorf("clone directory %s already holds other content; remove or relocate it", cleanPath)
	}

	root := cleanPath
	if gp.cfg.Subdir != "" {
		root = filepath.Join(cleanPath, filepath.FromSlash(gp.cfg.Subdir))
	}

	localCfg := gp.cfg.Local
	localCfg.Root = root
	local, err := NewLocalProvider(localCfg, gp.logger)
	if err != nil {
		return err
	}
	gp.local = local

	gp.logger.Info("git source ready", "remote", gp.cfg.RemoteURL, "path", root)
	return nil
}

// classifyCloneDir decides whether the clone path is safe to clone
// into, safe to fetch in, or needs manual intervention.
func (gp *GitProvider) classifyCloneDir(path string) (directoryStatus, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return dirEmpty, nil
	}
	if err != nil {
		return dirConflict, fmt.Errorf("cannot access clone directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return dirConflict, fmt.Errorf("clone path exists but is not a directory: %s", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return dirConflict, fmt.Errorf("cannot read clone directory %s: %w", path, err)
	}
	if len(entries) == 0 {
		return dirEmpty, nil
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return dirConflict, nil
		}
		return dirConflict, fmt.Errorf("cannot open clone directory as repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return dirConflict, fmt.Errorf("clone directory has no origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return dirConflict, fmt.Errorf("origin remote has no URL configured")
	}

	if normalizeGitURL(urls[0]) == normalizeGitURL(gp.cfg.RemoteURL) {
		return dirSameRepo, nil
	}
	return dirDifferentRepo, nil
}

// cloneWithAuth tries an unauthenticated clone first so public remotes
// never consume the token, retrying with credentials on auth failures.
func (gp *GitProvider) cloneWithAuth(ctx context.Context, path string) error {
	err := gp.clone(ctx, path, nil)
	if err == nil {
		return nil
	}
	if !isAuthError(err) {
		return err
	}

	auth := gp.auth()
	if auth == nil {
		return fmt.Errorf("remote requires authentication and no token is configured: %w", err)
	}
	gp.logger.Debug("public clone failed, retrying with token")
	return gp.clone(ctx, path, auth)
}

func (gp *GitProvider) clone(ctx context.Context, path string, auth *http.BasicAuth) error {
	gp.logger.Info("cloning component library", "remote", gp.cfg.RemoteURL, "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create clone parent directory: %w", err)
	}

	opts := &git.CloneOptions{
		URL:   gp.cfg.RemoteURL,
		Depth: 1,
		Auth:  auth,
	}
	if gp.cfg.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(gp.cfg.Branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, path, opts); err != nil {
		return fmt.Errorf("clone %s: %w", gp.cfg.RemoteURL, err)
	}
	return nil
}

// fetchWithAuth mirrors the clone auth strategy for updates.
func (gp *GitProvider) fetchWithAuth(ctx context.Context, path string) error {
	err := gp.fetch(ctx, path, nil)
	if err == nil {
		return nil
	}
	if !isAuthError(err) {
		return err
	}

	auth := gp.auth()
	if auth == nil {
		return fmt.Errorf("remote requires authentication and no token is configured: %w", err)
	}
	gp.logger.Debug("public fetch failed, retrying with token")
	return gp.fetch(ctx, path, auth)
}

func (gp *GitProvider) fetch(ctx context.Context, path string, auth *http.BasicAuth) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open existing clone: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get working tree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("get working tree status: %w", err)
	}
	if !status.IsClean() {
		gp.logger.Warn("clone has local changes, skipping sync", "path", path)
		return nil
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("get origin remote: %w", err)
	}
	err = remote.FetchContext(ctx, &git.FetchOptions{Auth: auth, Force: true})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("fetch %s: %w", gp.cfg.RemoteURL, err)
	}
	if err == git.NoErrAlreadyUpToDate {
		gp.logger.Debug("clone already up to date", "path", path)
		return nil
	}

	err = worktree.Pull(&git.PullOptions{Auth: auth, Force: true})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("update working tree: %w", err)
	}

	gp.logger.Info("clone updated", "path", path)
	return nil
}

func (gp *GitProvider) auth() *http.BasicAuth {
	if gp.cfg.Token == "" {
		return nil
	}
	// PAT authentication uses a fixed username with the token as
	// password.
	return &http.BasicAuth{Username: "token", Password: gp.cfg.Token}
}

var authErrorMarkers = []string{
	"authentication required",
	"authorization",
	"401",
	"unauthorized",
	"403",
	"forbidden",
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range authErrorMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// normalizeGitURL folds SSH and HTTPS spellings of the same repository
// into one comparable form.
func normalizeGitURL(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimSuffix(url, ".git")

	// git@host:owner/repo -> host/owner/repo
	if rest, ok := strings.CutPrefix(url, "git@"); ok {
		return strings.Replace(rest, ":", "/", 1)
	}
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(url, "http://"); ok {
		return rest
	}
	return url
}
