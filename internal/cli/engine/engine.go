// --- START OF FINAL REVISED FILE internal/cli/engine/engine.go ---
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

const (
	// maxLogOutputBytes limits the size of engine stderr captured in logs.
	maxLogOutputBytes = 1024
	// maxEngineReadBytes sets a limit on stdout/stderr read to prevent OOM from a rogue engine process.
	maxEngineReadBytes = 1 * 1024 * 1024 // 1 MiB limit for stderr/stdout capture
)

// pdfFilterFor maps a document kind to the LibreOffice --convert-to export filter.
var pdfFilterFor = map[batch.DocKind]string{
	batch.KindWord:       "pdf:writer_pdf_Export",
	batch.KindPowerpoint: "pdf:impress_pdf_Export",
}

// sofficeEngine implements the batch.Engine interface by shelling out to a
// LibreOffice-compatible converter (soffice --headless). The command is
// configurable so tests and alternative installs can substitute their own
// binary; argv[1:] of the configured command is preserved as a prefix.
type sofficeEngine struct {
	command []string
	logger  *slog.Logger
}

// New creates a Engine that executes documents through the given external
// converter command. An empty command falls back to batch.DefaultEngineCommand.
func New(command []string, loggerHandler slog.Handler) batch.Engine { // minimal comment
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	if len(command) == 0 {
		command = batch.DefaultEngineCommand
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "engine"))
	return &sofficeEngine{command: command, logger: logger}
}

// Convert renders srcPath into a PDF at dstPath. The conversion runs in
// srcPath's directory: soffice names its output after the input file's stem,
// so the produced file is renamed onto dstPath afterwards.
//
// The caller (the batch runner) serializes invocations; this implementation
// relies on that and never runs two soffice processes at once.
func (e *sofficeEngine) Convert(ctx context.Context, kind batch.DocKind, srcPath, dstPath string) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
		slog.String("src", srcPath),
	}

	filter, ok := pdfFilterFor[kind]
	if !ok {
		err := fmt.Errorf("%w: no export filter for kind %q", batch.ErrEngineFailure, kind)
		e.logger.Error("Engine invocation rejected", append(logArgs, slog.Any("error", err))...)
		return err
	}

	outDir := filepath.Dir(dstPath)
	args := append(append([]string{}, e.command[1:]...),
		"--headless", "--norestore",
		"--convert-to", filter,
		"--outdir", outDir,
		srcPath,
	)
	cmd := exec.CommandContext(ctx, e.command[0], args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = newLimitedWriter(&stdoutBuf, maxEngineReadBytes)
	cmd.Stderr = newLimitedWriter(&stderrBuf, maxEngineReadBytes)

	e.logger.Debug("Starting engine process", append(logArgs, slog.String("command", strings.Join(append([]string{e.command[0]}, args...), " ")))...)
	runErr := cmd.Run()
	stderrString := strings.TrimSpace(stderrBuf.String())
	if len(stderrString) > maxLogOutputBytes {
		stderrString = stderrString[:maxLogOutputBytes] + "... (truncated)"
	}

	if ctx.Err() != nil {
		if len(stderrString) > 0 {
			logArgs = append(logArgs, slog.String("engine_stderr", stderrString))
		}
		e.logger.Error("Engine execution cancelled or timed out", append(logArgs, slog.Any("error", ctx.Err()))...)
		return fmt.Errorf("%w: %v", batch.ErrEngineTimeout, ctx.Err())
	}

	if runErr != nil {
		if errors.Is(runErr, exec.ErrNotFound) {
			e.logger.Error("Engine binary not found", append(logArgs, slog.String("binary", e.command[0]))...)
			return fmt.Errorf("%w: %q not found in PATH", batch.ErrEngineUnavailable, e.command[0])
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		logArgs = append(logArgs, slog.Int("exitCode", exitCode), slog.Any("error", runErr))
		if len(stderrString) > 0 {
			logArgs = append(logArgs, slog.String("engine_stderr", stderrString))
		}
		e.logger.Error("Engine execution failed (non-zero exit or other error)", logArgs...)
		if len(stderrString) > 0 {
			return fmt.Errorf("%w: exit code %d: %s", batch.ErrEngineFailure, exitCode, stderrString)
		}
		return fmt.Errorf("%w: exit code %d: %v", batch.ErrEngineFailure, exitCode, runErr)
	}

	// soffice writes <outdir>/<input stem>.pdf and still exits zero for some
	// documents it cannot read, so the output's existence is the real signal.
	produced := filepath.Join(outDir, sourceStem(srcPath)+batch.PdfExtension)
	if produced != dstPath {
		if renameErr := os.Rename(produced, dstPath); renameErr != nil {
			if len(stderrString) > 0 {
				logArgs = append(logArgs, slog.String("engine_stderr", stderrString))
			}
			e.logger.Error("Engine exited cleanly but produced no output", append(logArgs, slog.Any("error", renameErr))...)
			return fmt.Errorf("%w: engine produced no output for %q", batch.ErrDocumentCorrupt, filepath.Base(srcPath))
		}
	} else if _, statErr := os.Stat(dstPath); statErr != nil {
		e.logger.Error("Engine exited cleanly but produced no output", append(logArgs, slog.Any("error", statErr))...)
		return fmt.Errorf("%w: engine produced no output for %q", batch.ErrDocumentCorrupt, filepath.Base(srcPath))
	}

	e.logger.Debug("Engine conversion finished", append(logArgs, slog.String("dst", dstPath))...)
	return nil
}

// sourceStem returns srcPath's base name without its extension.
func sourceStem(srcPath string) string { // minimal comment
	base := filepath.Base(srcPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// limitedWriter discards bytes beyond its limit so a chatty engine process
// cannot grow the capture buffers without bound.
type limitedWriter struct {
	w     io.Writer
	limit int
}

func newLimitedWriter(w io.Writer, limit int) *limitedWriter {
	return &limitedWriter{w: w, limit: limit}
}

// Write implements io.Writer. Excess bytes are dropped, never errored, so the
// child process does not see a broken pipe.
func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.limit <= 0 {
		return n, nil
	}
	if n > lw.limit {
		p = p[:lw.limit]
	}
	written, err := lw.w.Write(p)
	lw.limit -= written
	if err != nil {
		return written, err
	}
	return n, nil
}

// --- END OF FINAL REVISED FILE internal/cli/engine/engine.go ---
