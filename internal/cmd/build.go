package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opennext-tools/nextdeploy-cli/internal/async"
	"github.com/opennext-tools/nextdeploy-cli/internal/config"
	"github.com/opennext-tools/nextdeploy-cli/internal/limiter"
	"github.com/opennext-tools/nextdeploy-cli/internal/link"
	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
	"github.com/opennext-tools/nextdeploy-cli/internal/runner"
)

var (
	buildSkipManifest bool
	buildConcurrency  int64
)

var buildCmd = &cobra.Command{
	Use:   "build [site...]",
	Short: "Build Next.js sites and load their deployment manifests",
	Long: `Build one or more sites from nextdeploy.yaml.

Builds run concurrently up to the configured limit. After a successful build
the site's open-next output is loaded and summarized.

Examples:
  nextdeploy build                 # Build all sites
  nextdeploy build web             # Build one site
  nextdeploy build web docs -v     # Two sites with debug output`,
	RunE: runBuildCmd,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildSkipManifest, "skip-manifest", false, "Do not load manifests after building")
	buildCmd.Flags().Int64Var(&buildConcurrency, "concurrency", 0, "Override the configured build concurrency")
}

func runBuildCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	sites, err := selectSites(cfg, args)
	if err != nil {
		return err
	}
	if len(sites) == 0 {
		return fmt.Errorf("no sites configured in %s", config.FileName)
	}

	concurrency := cfg.Build.Concurrency
	if buildConcurrency > 0 {
		concurrency = buildConcurrency
	}

	r := runner.New(runner.Options{
		Limiter:       limiter.New(concurrency),
		Links:         link.StaticResolver(cfg.Links),
		App:           runner.App{Name: cfg.App.Name, Stage: cfg.App.Stage},
		WorkspaceRoot: root,
		Skip:          runner.SkipRequested(),
	})

	fmt.Printf("%s Building %d site(s) [%s/%s]\n", "📦", len(sites), cfg.App.Name, cfg.App.Stage)

	// All configured sites build through open-next; an explicit build_command
	// replaces the invocation wholesale.
	toolVersion := async.Resolved(cfg.Build.OpenNextVersion)

	var bar *progressbar.ProgressBar
	if len(sites) > 1 && !rootVerbose {
		bar = progressbar.NewOptions(len(sites),
			progressbar.OptionSetDescription("Building"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(os.Stderr, "\n")
			}),
		)
	}

	outputs := make([]string, len(sites))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, site := range sites {
		i, site := i, site
		eg.Go(func() error {
			command, err := nextjs.BuildToolCommand(async.Resolved(site.BuildCommand), toolVersion).Value(egCtx)
			if err != nil {
				return err
			}
			path, err := r.Build(egCtx, runner.BuildRequest{
				Name:    site.Name,
				Path:    filepath.Join(root, site.Path),
				Command: command,
				Env:     site.Env,
				Links:   site.Links,
			})
			if err != nil {
				return err
			}
			outputs[i] = path
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("❌ %w", err)
	}

	if !buildSkipManifest {
		for i, site := range sites {
			if err := summarizeSite(ctx, site.Name, outputs[i]); err != nil {
				return err
			}
		}
	}

	fmt.Println("✅ Build completed successfully!")
	return nil
}

// summarizeSite loads the normalized manifest and metadata of a built site
// and prints a short report.
func summarizeSite(ctx context.Context, name, outputRoot string) error {
	manifest, err := nextjs.LoadManifest(outputRoot)
	if err != nil {
		return err
	}
	md, err := nextjs.LoadMetadata(ctx, outputRoot, name)
	if err != nil {
		return err
	}

	prerendered := 0
	if md.Prerender != nil {
		prerendered = len(md.Prerender.Routes)
	}
	fmt.Printf("  %s: build %s, %d origin(s), %d edge function(s), %d behavior(s), %d prerendered route(s)\n",
		name, md.BuildID, len(manifest.Origins), len(manifest.EdgeFunctions), len(manifest.Behaviors), prerendered)
	return nil
}
