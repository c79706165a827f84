// Package runner resolves and executes framework builds for deployable
// sites, bounded by a process-wide concurrency limiter.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/uuid"

	"github.com/opennext-tools/nextdeploy-cli/internal/ctxlog"
	"github.com/opennext-tools/nextdeploy-cli/internal/limiter"
	"github.com/opennext-tools/nextdeploy-cli/internal/link"
	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
)

// BuildRequest describes one site build. It lives for a single invocation.
type BuildRequest struct {
	// Name is the site's display name, used in errors and as the limiter's
	// diagnostic label.
	Name string

	// Path is the site's source directory.
	Path string

	// Command overrides lockfile-based command detection when set.
	Command string

	// Env are caller-supplied variables layered over the base environment.
	Env map[string]string

	// Links are references to resources whose properties the build needs.
	Links []string
}

// Options configures a Runner.
type Options struct {
	// Limiter bounds concurrent builds across all sites. Required.
	Limiter *limiter.Limiter

	// Links resolves the request's link references.
	Links link.Resolver

	// App identifies the application and stage being deployed.
	App App

	// WorkspaceRoot is consulted for workspace-level lockfiles. Optional.
	WorkspaceRoot string

	// Skip returns the site path without building. Mirrors SkipBuildVar.
	Skip bool

	// Dev marks a non-build (dev server) session; builds are skipped.
	Dev bool
}

// Runner executes site builds.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// SkipRequested reports whether the process environment asks builds to be
// skipped.
func SkipRequested() bool {
	return os.Getenv(SkipBuildVar) != ""
}

// Build runs the site's build and returns the unchanged site path. The skip
// and dev short-circuits are checked before any filesystem or process side
// effect. Failures are terminal: there are no retries and no timeout, and
// the limiter slot is released on every exit path.
func (r *Runner) Build(ctx context.Context, req BuildRequest) (string, error) {
	if r.opts.Skip || r.opts.Dev {
		return req.Path, nil
	}
	log := ctxlog.FromContext(ctx).With("site", req.Name, "invocation", uuid.NewString())

	command, err := nextjs.ResolveBuildCommand(req.Path, r.opts.WorkspaceRoot, req.Command)
	if err != nil {
		return "", err
	}

	linkEnv, err := LinkEnv(ctx, r.opts.Links, req.Links, r.opts.App)
	if err != nil {
		return "", err
	}

	// Precedence, last wins: process env, build marker, remapped
	// credentials, caller overrides, link data.
	env := Merge(
		environMap(os.Environ()),
		map[string]string{BuildMarkerVar: "1"},
		CredentialEnv(os.Getenv),
		req.Env,
		linkEnv,
	)

	release, err := r.opts.Limiter.Acquire(ctx, req.Name)
	if err != nil {
		return "", err
	}
	defer release()

	log.Debug("running build", "command", command, "dir", req.Path)

	cmd := shellCommand(ctx, command)
	cmd.Dir = req.Path
	cmd.Env = flatten(env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Debug("build command failed", "error", err)
		// stderr was already inherited; the user has seen the tool output
		return "", fmt.Errorf("there was a problem building the %q site", req.Name)
	}
	return req.Path, nil
}

// shellCommand runs a command line through the platform shell, matching how
// package-manager scripts expect to be invoked.
func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "/bin/sh", "-c", command)
}
