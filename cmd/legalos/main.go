// legalos is the case desk: an HTTP API over cases, document reviews and
// simulated hearings, an inbox watcher and an offline exporter.
//
// Usage:
//
//	legalos serve  [--config=config.yaml]
//	legalos watch  --case=<id> [--config=config.yaml]
//	legalos export --case=<id> [-o <file.docx>] [--config=config.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "legalos",
	Short: "Case desk for lawyers practising under the law of Kazakhstan",
	Long:  "legalos turns recordings and documents into a running case brief,\nreviews documents for risks and simulates court hearings.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML config")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
