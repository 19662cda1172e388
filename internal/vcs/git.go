// Package vcs invokes git to extract the change set a selection run works on.
package vcs

import (
	"context"
	"os/exec"
	"strings"

	"ptest/internal/logging"
	"ptest/internal/pterrors"
)

// Runner executes git commands for one repository
type Runner struct {
	repoRoot string
	logger   *logging.Logger
}

// NewRunner creates a git runner rooted at repoRoot. An empty repoRoot runs
// git in the current working directory.
func NewRunner(repoRoot string, logger *logging.Logger) *Runner {
	return &Runner{
		repoRoot: repoRoot,
		logger:   logger,
	}
}

// run executes a git command and returns its stdout
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if r.repoRoot != "" {
		cmd.Dir = r.repoRoot
	}

	r.logger.Debug("Executing git command", map[string]interface{}{
		"args": args,
	})

	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", pterrors.Newf(pterrors.GitFailed, err,
			"git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}

	return string(output), nil
}

// MergeBase returns the merge base commit of two refs
func (r *Runner) MergeBase(ctx context.Context, ref, other string) (string, error) {
	out, err := r.run(ctx, "merge-base", ref, other)
	if err != nil {
		return "", err
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return "", pterrors.Newf(pterrors.GitFailed, nil,
			"git merge-base %s %s produced no output", ref, other)
	}
	return lines[0], nil
}

// DiffNameStatus returns 'git diff --name-status <target>' output
func (r *Runner) DiffNameStatus(ctx context.Context, target string) (string, error) {
	return r.run(ctx, "diff", "--name-status", target)
}

// ChangedFiles returns the raw name-status diff for a selection run.
//
// With useHead the diff covers the commits on the current branch since it
// forked from compareBranch (the CI case); otherwise it covers uncommitted
// local changes against compareBranch directly.
func (r *Runner) ChangedFiles(ctx context.Context, compareBranch string, useHead bool) (string, error) {
	if !useHead {
		return r.DiffNameStatus(ctx, compareBranch)
	}

	base, err := r.MergeBase(ctx, "HEAD", compareBranch)
	if err != nil {
		return "", err
	}
	return r.DiffNameStatus(ctx, base+"..HEAD")
}
