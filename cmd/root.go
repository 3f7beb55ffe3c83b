package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "comic-composer",
	Short: "Compose sequential images into comic book pages",
	Long: `Comic Composer takes a directory of sequential images and a layout
preset, then places the images into the preset's panel cells, paginating
across as many pages as needed. Pages are written as PNG files.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
