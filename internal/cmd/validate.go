package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/opennext-tools/nextdeploy-cli/internal/nextjs"
)

//go:embed schemas/open-next-output.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate <outputRoot>",
	Short: "Validate a site's open-next output descriptor",
	Long: `Validates the open-next.output.json under the given output root against
the JSON Schema. This catches malformed build output before normalization.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateCmd,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	descriptorPath := filepath.Join(args[0], filepath.FromSlash(nextjs.OutputFile))
	if _, err := os.Stat(descriptorPath); os.IsNotExist(err) {
		return fmt.Errorf("%s not found", descriptorPath)
	}

	fmt.Printf("🔍 Validating %s...\n", descriptorPath)

	schemaBytes, err := schemaFS.ReadFile("schemas/open-next-output.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}
	documentBytes, err := os.ReadFile(descriptorPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", descriptorPath, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(documentBytes),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		fmt.Println("✅ open-next.output.json is valid!")
		return nil
	}

	fmt.Println("\n❌ Validation failed with the following errors:")
	fmt.Println()
	for i, desc := range result.Errors() {
		fmt.Printf("%d. %s\n", i+1, desc.String())
		fmt.Printf("   Field: %s\n\n", desc.Field())
	}
	return fmt.Errorf("validation failed with %d errors", len(result.Errors()))
}
