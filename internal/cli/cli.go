// --- START OF FINAL REVISED FILE internal/cli/cli.go ---
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/manasrathbsw/office-doc2pdf/internal/cli/engine"
	"github.com/manasrathbsw/office-doc2pdf/internal/cli/hooks"
	"github.com/manasrathbsw/office-doc2pdf/internal/cli/ui"
	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

// Extensions silently skipped when walking a directory input. These are
// ancillary files (readmes, logs) that users keep next to their documents
// and never expect in the output archive.
var skippedWalkExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
	".log": {},
}

// stderrIsTerminal reports whether stderr is attached to a terminal. The TUI
// and the progress bar both render on stderr, so stderr is the fd that decides
// interactivity; stdout may be redirected to capture the summary report
// without losing live progress. Declared as a variable so tests can force
// either mode.
var stderrIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// uiMode identifies which presentation layer a run drives.
type uiMode int

const (
	uiModeTUI uiMode = iota
	uiModeProgressBar
	uiModePlain
)

// selectUIMode picks the presentation layer from the options and the stderr
// terminal state. Verbose output always falls back to plain logs so log lines
// are not fighting a live display for the terminal.
func selectUIMode(opts batch.Options) uiMode {
	isTTY := stderrIsTerminal()
	switch {
	case opts.TuiEnabled && isTTY && !opts.Verbose:
		return uiModeTUI
	case isTTY && !opts.Verbose:
		return uiModeProgressBar
	default:
		return uiModePlain
	}
}

// Run orchestrates the main application logic after configuration loading.
// It builds the input specification from the CLI paths, selects the UI mode,
// invokes the core library, writes the output archive, and renders the
// summary report.
func Run(ctx context.Context, opts batch.Options, logger *slog.Logger) error {
	input, err := buildInputSpec(opts.InputPaths, logger)
	if err != nil {
		return err
	}

	if opts.Engine == nil {
		opts.Engine = engine.New(opts.EngineCommand, opts.Logger)
	}

	// --- UI Mode Selection ---
	var program *tea.Program
	var tuiDone chan error

	switch selectUIMode(opts) {
	case uiModeTUI:
		model := ui.NewModel(opts.AppVersion)
		program = tea.NewProgram(&model, tea.WithContext(ctx))
		tuiDone = make(chan error, 1)
		go func() {
			_, runErr := program.Run()
			tuiDone <- runErr
		}()
		opts.EventHooks = hooks.NewCLIHooks(logger, true, false, teaSender{program}, nil)
		logger.Debug("TUI mode enabled")
	case uiModeProgressBar:
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Converting"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
		)
		opts.EventHooks = hooks.NewCLIHooks(logger, false, false, nil, barSender{bar})
		logger.Debug("Progress bar mode enabled")
	default:
		// Plain log output (verbose, piped, or TUI disabled on a non-TTY)
		opts.EventHooks = hooks.NewCLIHooks(logger, false, opts.Verbose, nil, nil)
		logger.Debug("Standard log mode enabled")
	}

	// --- Core Library Invocation ---
	archive, result, runErr := batch.ConvertBatch(ctx, opts, input)

	// Shut the TUI down before writing anything to stdout, otherwise the
	// report interleaves with the alternate screen teardown.
	if program != nil {
		program.Quit()
		if waitErr := <-tuiDone; waitErr != nil && !errors.Is(waitErr, tea.ErrProgramKilled) {
			logger.Warn("TUI exited with error", slog.Any("error", waitErr))
		}
	}

	if runErr != nil {
		logger.Error("Batch conversion failed", slog.Any("error", runErr))
		// A populated result still carries per-item diagnostics worth showing.
		if len(result.Outcomes) > 0 || len(result.Failures) > 0 {
			if renderErr := renderSummary(result, opts.OutputFormat); renderErr != nil {
				logger.Warn("Failed to render summary report", slog.Any("error", renderErr))
			}
		}
		return runErr
	}

	// --- Output Archive ---
	if err := os.WriteFile(opts.OutputPath, archive, 0o644); err != nil {
		return fmt.Errorf("writing output archive %q: %w", opts.OutputPath, err)
	}
	logger.Info("Output archive written",
		slog.String("path", opts.OutputPath),
		slog.Int("sizeBytes", len(archive)),
	)

	// --- Summary Report ---
	if err := renderSummary(result, opts.OutputFormat); err != nil {
		return fmt.Errorf("rendering summary report: %w", err)
	}

	return nil
}

// renderSummary writes the run summary to stdout in the requested format.
func renderSummary(result batch.Result, format batch.OutputFormat) error { // minimal comment
	switch format {
	case batch.OutputFormatJSON:
		return result.RenderJSON(os.Stdout)
	case batch.OutputFormatYAML:
		return result.RenderYAML(os.Stdout)
	default:
		return result.RenderText(os.Stdout)
	}
}

// buildInputSpec maps the validated CLI input paths onto the library's input
// variants: a single directory becomes a hierarchical file set, a single .zip
// file is passed through as an archive, and anything else is treated as a
// list of loose files.
func buildInputSpec(inputPaths []string, logger *slog.Logger) (batch.InputSpec, error) {
	if len(inputPaths) == 1 {
		path := inputPaths[0]
		info, err := os.Stat(path)
		if err != nil {
			return batch.InputSpec{}, fmt.Errorf("%w: reading input %q: %v", batch.ErrCollection, path, err)
		}
		if info.IsDir() {
			return collectDirectory(path, logger)
		}
		if strings.EqualFold(filepath.Ext(path), ".zip") {
			data, err := os.ReadFile(path)
			if err != nil {
				return batch.InputSpec{}, fmt.Errorf("%w: reading archive %q: %v", batch.ErrCollection, path, err)
			}
			logger.Debug("Input resolved as archive", slog.String("path", path), slog.Int("sizeBytes", len(data)))
			return batch.Archive(data), nil
		}
	}

	// One or more regular files
	files := make([]batch.NamedFile, 0, len(inputPaths))
	for _, path := range inputPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return batch.InputSpec{}, fmt.Errorf("%w: reading input %q: %v", batch.ErrCollection, path, err)
		}
		files = append(files, batch.NamedFile{Name: filepath.Base(path), Content: data})
	}
	logger.Debug("Input resolved as loose files", slog.Int("count", len(files)))
	return batch.LooseFiles(files...), nil
}

// collectDirectory walks root and gathers its files as a hierarchical file
// set, with names relative to root using forward slashes. Hidden files and
// directories are skipped, as are ancillary text files.
func collectDirectory(root string, logger *slog.Logger) (batch.InputSpec, error) {
	var files []batch.NamedFile

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, skip := skippedWalkExtensions[strings.ToLower(filepath.Ext(name))]; skip {
			logger.Debug("Skipping ancillary file", slog.String("path", path))
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		files = append(files, batch.NamedFile{Name: filepath.ToSlash(rel), Content: data})
		return nil
	})
	if walkErr != nil {
		return batch.InputSpec{}, fmt.Errorf("%w: walking input directory %q: %v", batch.ErrCollection, root, walkErr)
	}

	logger.Debug("Input resolved as directory", slog.String("root", root), slog.Int("count", len(files)))
	return batch.FileSet(files...), nil
}

// --- UI Adapters ---

// teaSender adapts *tea.Program to the hooks.TUIProgram interface.
type teaSender struct{ program *tea.Program }

// Send implements hooks.TUIProgram.
func (s teaSender) Send(msg interface{}) { s.program.Send(msg) }

// barSender adapts *progressbar.ProgressBar to the hooks.ProgressBar interface.
type barSender struct{ bar *progressbar.ProgressBar }

// Add implements hooks.ProgressBar.
func (s barSender) Add(num int) error { return s.bar.Add(num) }

// Describe implements hooks.ProgressBar.
func (s barSender) Describe(description string) error {
	s.bar.Describe(description)
	return nil
}

// Close implements hooks.ProgressBar.
func (s barSender) Close() error { return s.bar.Close() }

// --- END OF FINAL REVISED FILE internal/cli/cli.go ---
