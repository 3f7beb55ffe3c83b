package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/comic-composer/internal/composer"
	"github.com/kozaktomas/comic-composer/internal/config"
	"github.com/kozaktomas/comic-composer/internal/engine"
	"github.com/kozaktomas/comic-composer/internal/preset"
)

var composeCmd = &cobra.Command{
	Use:   "compose [image-dir]",
	Short: "Compose a directory of images into comic pages",
	Long: `Compose the images found in image-dir into comic pages.
Images are placed in file-name order into the preset's cells, one page
per group of cells, and each finished page is saved as a PNG file.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().String("preset", "", "Layout preset: file path, preset dir entry or built-in name")
	composeCmd.Flags().String("output", "", "Output directory (default: image dir name plus timestamp)")
	composeCmd.Flags().String("fit", "", "How to fit images into cells: contain, cover or stretch")
	composeCmd.Flags().String("filter", "", "Scale filter: catmullrom, bilinear, approx or nearest")
	composeCmd.Flags().Bool("natural-sort", false, "Sort file names numerically (page2 before page10)")
}

func runCompose(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	cfg := config.Load()

	presetRef := mustGetString(cmd, "preset")
	if presetRef == "" {
		presetRef = cfg.Presets.Default
	}
	fit := mustGetString(cmd, "fit")
	if fit == "" {
		fit = cfg.Compose.FitMode
	}
	filter := mustGetString(cmd, "filter")
	if filter == "" {
		filter = cfg.Compose.ScaleFilter
	}
	outputDir := mustGetString(cmd, "output")
	if outputDir == "" {
		outputDir = cfg.Compose.OutputDir
	}

	p, warnings, err := preset.Resolve(presetRef, cfg.Presets.Dir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	mode, err := engine.ParseFitMode(fit)
	if err != nil {
		return err
	}
	scaler, err := engine.ParseScaler(filter)
	if err != nil {
		return err
	}

	fmt.Printf("Preset: %s (%d cells per page)\n", p.Name, len(p.Layout.Cells))
	fmt.Printf("Fit mode: %s\n", mode)

	var bar *progressbar.ProgressBar
	result, err := composer.Compose(p, composer.Options{
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Mode:        mode,
		Scaler:      scaler,
		NaturalSort: mustGetBool(cmd, "natural-sort"),
		OnProgress: func(info composer.ProgressInfo) {
			if info.Phase != "placing" {
				return
			}
			if bar == nil {
				bar = newComposeProgressBar(info.Total)
			}
			_ = bar.Add(1)
		},
	})
	if err != nil {
		return fmt.Errorf("composing failed: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	if result.ImageCount == 0 {
		fmt.Println("No image files found in the specified directory.")
		return nil
	}

	fmt.Printf("Composed %d images onto %d pages\n", result.ImageCount, result.PageCount)
	for i, page := range result.Pages {
		fmt.Printf("  Page %d: %s\n", i+1, page)
	}
	fmt.Printf("Output directory: %s\n", result.OutputDir)
	return nil
}

func newComposeProgressBar(count int) *progressbar.ProgressBar {
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription("Placing images"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}
