package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
	"github.com/opennext-tools/nextdeploy-cli/pkg/xos"
)

var (
	manifestOut  string
	manifestSite string
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <outputRoot>",
	Short: "Load and normalize a site's open-next deployment manifest",
	Long: `Reads the open-next build descriptor under the given output root, applies
normalization, and prints a summary. Use --out to write the normalized
manifest as JSON for the provisioning layer.`,
	Args: cobra.ExactArgs(1),
	RunE: runManifestCmd,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().StringVarP(&manifestOut, "out", "o", "", "Write normalized manifest JSON to this path")
	manifestCmd.Flags().StringVar(&manifestSite, "site", "site", "Site name used in error messages")
}

func runManifestCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	outputRoot := args[0]

	manifest, err := nextjs.LoadManifest(outputRoot)
	if err != nil {
		return err
	}
	md, err := nextjs.LoadMetadata(ctx, outputRoot, manifestSite)
	if err != nil {
		return err
	}

	fmt.Printf("📦 Manifest for build %s\n", md.BuildID)
	for name, origin := range manifest.Origins {
		switch {
		case origin.Type == "s3":
			fmt.Printf("  origin %-16s s3, %d copy operation(s)\n", name, len(origin.Copy))
		case origin.ImageLoader != "":
			fmt.Printf("  origin %-16s image optimizer (%s)\n", name, origin.Bundle)
		default:
			fmt.Printf("  origin %-16s function (%s)\n", name, origin.Bundle)
		}
	}
	for name, fn := range manifest.EdgeFunctions {
		fmt.Printf("  edge   %-16s %s\n", name, fn.Bundle)
	}
	for _, b := range manifest.Behaviors {
		target := b.Origin
		if b.EdgeFunction != "" {
			target += " +" + b.EdgeFunction
		}
		fmt.Printf("  route  %-16s -> %s\n", b.Pattern, target)
	}

	if manifestOut != "" {
		data, err := json.MarshalIndent(struct {
			BuildID  string           `json:"buildId"`
			Manifest *nextjs.Manifest `json:"manifest"`
		}{md.BuildID, manifest}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal manifest: %w", err)
		}
		if err := xos.WriteFile(manifestOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", manifestOut, err)
		}
		fmt.Printf("✅ Wrote normalized manifest to %s\n", manifestOut)
	}

	return nil
}
