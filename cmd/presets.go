package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/comic-composer/internal/config"
	"github.com/kozaktomas/comic-composer/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Inspect layout presets",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in presets and presets in the preset directory",
	RunE:  runPresetsList,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a preset as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsShow,
}

var presetsValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a preset file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsValidate,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsValidateCmd)
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	fmt.Println("Built-in presets:")
	for _, name := range preset.BuiltinNames() {
		p, err := preset.Builtin(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %-10s %d cells, %dx%d - %s\n",
			name, len(p.Layout.Cells), p.Page.Width, p.Page.Height, p.Description)
	}

	entries, err := os.ReadDir(cfg.Presets.Dir)
	if err != nil {
		return nil // no preset directory is fine, built-ins still work
	}
	fmt.Printf("\nPresets in %s:\n", cfg.Presets.Dir)
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(cfg.Presets.Dir, e.Name())
		p, _, err := preset.Load(path)
		if err != nil {
			fmt.Printf("  %-20s (invalid: %v)\n", e.Name(), err)
			continue
		}
		fmt.Printf("  %-20s %d cells, %dx%d - %s\n",
			e.Name(), len(p.Layout.Cells), p.Page.Width, p.Page.Height, p.Description)
	}
	return nil
}

func runPresetsShow(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	p, warnings, err := preset.Resolve(args[0], cfg.Presets.Dir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runPresetsValidate(cmd *cobra.Command, args []string) error {
	p, warnings, err := preset.Load(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	fmt.Printf("Preset %q is valid: %d cells on a %dx%d page\n",
		p.Name, len(p.Layout.Cells), p.Page.Width, p.Page.Height)
	return nil
}
