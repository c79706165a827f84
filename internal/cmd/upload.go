package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opennext-tools/nextdeploy-cli/internal/assets"
	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
	"github.com/opennext-tools/nextdeploy-cli/internal/ui"
)

var (
	uploadYes    bool
	uploadDryRun bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <outputRoot>",
	Short: "Upload a built site's static assets to the configured store",
	Long: `Uploads every static copy entry of the site's deployment manifest to the
upload target in nextdeploy.yaml, with per-file content types and cache
headers.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadCmd,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVarP(&uploadYes, "yes", "y", false, "Skip the confirmation prompt")
	uploadCmd.Flags().BoolVar(&uploadDryRun, "dry-run", false, "List objects without uploading")
}

func runUploadCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputRoot := args[0]

	_, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	if cfg.Upload.Bucket == "" && !uploadDryRun {
		return fmt.Errorf("upload.bucket is not configured in nextdeploy.yaml")
	}

	manifest, err := nextjs.LoadManifest(outputRoot)
	if err != nil {
		return err
	}

	if !uploadYes && !uploadDryRun {
		ok, err := ui.Confirm(fmt.Sprintf("Upload static assets to %q?", cfg.Upload.Bucket), true)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Upload cancelled.")
			return nil
		}
	}

	var uploader assets.Uploader
	switch {
	case uploadDryRun:
		uploader = &assets.MockUploader{BaseURL: cfg.Upload.PublicURL}
	case cfg.Upload.Provider == "minio":
		uploader, err = assets.NewMinIOUploader(cfg.Upload)
	default:
		uploader, err = assets.NewS3Uploader(ctx, cfg.Upload)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s Uploading static assets...\n", ui.IconUpload)
	urls, err := assets.Sync(ctx, uploader, outputRoot, manifest)
	if err != nil {
		return fmt.Errorf("❌ Upload failed: %w", err)
	}

	if uploadDryRun {
		for key := range urls {
			fmt.Printf("  would upload %s\n", key)
		}
	}
	fmt.Printf("✅ Uploaded %d object(s)\n", len(urls))
	return nil
}
