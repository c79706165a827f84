package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opennext-tools/nextdeploy-cli/internal/async"
	"github.com/opennext-tools/nextdeploy-cli/internal/limiter"
	"github.com/opennext-tools/nextdeploy-cli/internal/link"
	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
	"github.com/opennext-tools/nextdeploy-cli/internal/runner"
	"github.com/opennext-tools/nextdeploy-cli/internal/watch"
)

var devCmd = &cobra.Command{
	Use:   "dev [site]",
	Short: "Watch a site's sources and rebuild on change",
	Long: `Watches the site's source tree and re-runs the build whenever a source
file changes. Build output directories are ignored. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDevCmd,
}

func init() {
	rootCmd.AddCommand(devCmd)
}

func runDevCmd(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}

	if len(cfg.Sites) == 0 {
		return fmt.Errorf("no sites configured")
	}
	site := &cfg.Sites[0]
	if len(args) == 1 {
		site, err = cfg.GetSite(args[0])
		if err != nil {
			return err
		}
	}
	sitePath := filepath.Join(root, site.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(runner.Options{
		Limiter:       limiter.New(1),
		Links:         link.StaticResolver(cfg.Links),
		App:           runner.App{Name: cfg.App.Name, Stage: cfg.App.Stage},
		WorkspaceRoot: root,
	})

	toolVersion := async.Resolved(cfg.Build.OpenNextVersion)
	build := func() {
		command, err := nextjs.BuildToolCommand(async.Resolved(site.BuildCommand), toolVersion).Value(ctx)
		if err != nil {
			return
		}
		if _, err := r.Build(ctx, runner.BuildRequest{
			Name:    site.Name,
			Path:    sitePath,
			Command: command,
			Env:     site.Env,
			Links:   site.Links,
		}); err != nil {
			fmt.Printf("❌ %v\n", err)
			return
		}
		fmt.Println("✅ Build completed")
	}

	fmt.Printf("👀 Watching %s (Ctrl+C to stop)\n", sitePath)
	w, err := watch.New(ctx, watch.DefaultOptions(sitePath))
	if err != nil {
		return err
	}
	defer w.Close()

	build()
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil
		case c := <-w.Changes():
			rel, _ := filepath.Rel(sitePath, c.Path)
			fmt.Printf("🔄 %s changed, rebuilding...\n", rel)
			build()
		}
	}
}
