// --- START OF FINAL REVISED FILE cmd/office-doc2pdf/root.go ---
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term" // For reliable TTY detection

	"github.com/manasrathbsw/office-doc2pdf/internal/cli"
	"github.com/manasrathbsw/office-doc2pdf/internal/cli/config"
	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

var (
	// These are set during build time using -ldflags
	version = "dev"     // Default version
	commit  = "none"    // Default commit hash
	date    = "unknown" // Default build date

	// Flags persistent across commands
	cfgFile     string // Path to config file
	profileName string // Name of profile to use
	verbose     bool   // Verbose logging flag
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "office-doc2pdf -i <input> [-i <input> ...] -o <archive.zip>",
	Short: "Converts office documents to PDF and packages them into a zip archive.",
	Long: `office-doc2pdf collects Word and PowerPoint documents from files, a folder,
or a zip archive, converts each to PDF via a headless LibreOffice engine, and
packages the results into a single zip archive.

It features:
  - Folder and zip-archive inputs with preserved directory structure.
  - Passthrough copying for documents that are already PDFs.
  - Per-document failure isolation: one bad file never aborts the batch.
  - Optional validation of produced and passthrough PDFs.
  - An interactive Terminal UI (TUI) for monitoring progress.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:    cobra.NoArgs, // Expect flags for input/output, not positional args
	RunE: func(cmd *cobra.Command, args []string) error { // minimal comment
		// Create a context that listens for interrupt signals
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel() // Ensure cancellation propagates even if Run exits early

		// Load configuration (delegated)
		opts, logger, err := config.LoadAndValidate(cfgFile, profileName, version, verbose, cmd.Flags())
		if err != nil {
			// config.LoadAndValidate logs the specific error to stderr already.
			// Return the error to signal failure to cobra, which will print it and exit non-zero.
			return err
		}

		// Add a small delay to allow TUI to initialize properly if enabled.
		// Checks Stderr as TUI/Progress Bar typically write there.
		if term.IsTerminal(int(os.Stderr.Fd())) && !verbose && opts.TuiEnabled {
			time.Sleep(100 * time.Millisecond)
		}

		// Execute the main application logic (delegated)
		return cli.Run(ctx, opts, logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() { // minimal comment
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	// Cobra prints the error and exits non-zero if RunE returns an error.
	_ = rootCmd.Execute()
}

// init registers persistent flags for the root command.
func init() { // minimal comment
	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is search standard locations like ., $HOME/.config/doc2pdf/)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Name of configuration profile to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging output (disables TUI)")

	// Required Input flag; output falls back to the default archive name.
	rootCmd.PersistentFlags().StringArrayP("inputs", "i", nil, "Required. Input document, directory, or zip archive (repeatable).")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output zip archive path (default: "+batch.DefaultArchiveName+")")
	_ = rootCmd.MarkPersistentFlagRequired("inputs")

	// --- Local Flags for the root command ---
	// Note: Flag names align with Viper keys bound in internal/cli/config/config.go.

	// Core behavior flags
	rootCmd.Flags().Bool("no-tui", false, "Disable interactive Terminal UI even if in a TTY")
	rootCmd.Flags().Bool("flatten", false, "Flatten the output archive (drop input directory structure)")
	rootCmd.Flags().String("output-format", string(batch.DefaultOutputFormat), `Final report format ("text", "json", "yaml")`)

	// Engine flags
	rootCmd.Flags().StringSlice("engine-cmd", batch.DefaultEngineCommand, "External converter command and leading arguments")
	rootCmd.Flags().String("engine-timeout", batch.DefaultEngineTimeoutString, "Per-document conversion timeout (e.g. '90s', '2m')")

	// Validation flags
	rootCmd.Flags().Bool("validate-passthrough", batch.DefaultValidatePassthrough, "Parse existing PDFs before copying them through")
	rootCmd.Flags().Bool("no-verify-output", false, "Skip parsing engine-produced files as PDFs before accepting them")

	// Staging flags
	rootCmd.Flags().String("workspace-dir", "", "Base directory for staging workspaces (default: system temp dir)")
}

// --- END OF FINAL REVISED FILE cmd/office-doc2pdf/root.go ---
