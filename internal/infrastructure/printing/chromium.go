package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultChromiumTimeout = 30 * time.Second
)

// defaultBinaryCandidates are the binary names tried in PATH order when
// no explicit path is configured.
var defaultBinaryCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"chrome",
}

// ChromiumConfig contains configuration for the headless Chromium renderer
type ChromiumConfig struct {
	// BinaryPath is the path to the browser binary. If empty, common
	// binary names are searched in PATH.
	BinaryPath string
	// DefaultTimeout for rendering operations
	DefaultTimeout time.Duration
	// TempDir for temporary files during rendering
	TempDir string
	// NoSandbox runs the browser without sandbox (required for
	// containers and root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromiumRenderer renders HTML to PDF by running a headless browser
// process per render. The HTML is written to a scoped temporary file, the
// browser rasterizes it to a second temporary file, and both are removed
// on every exit path.
type ChromiumRenderer struct {
	config *ChromiumConfig
	logger *zap.Logger
}

// NewChromiumRenderer creates a new headless-Chromium PDF renderer.
// Returns a RenderError with code BINARY_NOT_FOUND when no browser
// binary can be resolved.
func NewChromiumRenderer(config *ChromiumConfig) (*ChromiumRenderer, error) {
	if config == nil {
		config = &ChromiumConfig{}
	}

	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromiumTimeout
	}
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}

	binaryPath, err := resolveBinaryPath(config.BinaryPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeBinaryNotFound,
			"headless browser binary not found: "+config.BinaryPath, err)
	}
	config.BinaryPath = binaryPath

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChromiumRenderer{
		config: config,
		logger: logger,
	}, nil
}

// resolveBinaryPath finds the full path to the browser binary
func resolveBinaryPath(path string) (string, error) {
	if path == "" {
		var err error
		for _, name := range defaultBinaryCandidates {
			var resolved string
			if resolved, err = exec.LookPath(name); err == nil {
				return resolved, nil
			}
		}
		return "", err
	}

	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}

	return exec.LookPath(path)
}

// Render converts HTML content to PDF
func (r *ChromiumRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	startTime := time.Now()

	timeout := req.Timeout
	if timeout == 0 {
		timeout = r.config.DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Scoped temp file for the HTML input
	htmlFile, err := os.CreateTemp(r.config.TempDir, "report-*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to create temp HTML file", err)
	}
	htmlPath := htmlFile.Name()
	defer os.Remove(htmlPath)

	if _, err := htmlFile.WriteString(req.HTML); err != nil {
		htmlFile.Close()
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to write HTML to temp file", err)
	}
	htmlFile.Close()

	// Scoped temp file for the PDF output
	pdfFile, err := os.CreateTemp(r.config.TempDir, "report-*.pdf")
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to create temp PDF file", err)
	}
	pdfPath := pdfFile.Name()
	pdfFile.Close()
	defer os.Remove(pdfPath)

	args := r.buildArgs(htmlPath, pdfPath)

	r.logger.Debug("executing headless browser",
		zap.String("binary", r.config.BinaryPath),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, r.config.BinaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}

		r.logger.Error("headless browser failed",
			zap.Error(err),
			zap.String("stderr", stderr.String()),
			zap.String("stdout", stdout.String()))

		return nil, NewRenderError(ErrCodeRenderFailed,
			"headless browser execution failed: "+stderr.String(), err)
	}

	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to read generated PDF", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	pageCount := estimatePageCount(pdfData)
	renderDuration := time.Since(startTime)

	r.logger.Info("PDF rendered successfully",
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", pageCount),
		zap.Duration("duration", renderDuration))

	return &RenderResult{
		PDFData:        pdfData,
		PageCount:      pageCount,
		RenderDuration: renderDuration,
	}, nil
}

// buildArgs constructs the browser command line. A4 with background
// graphics is the headless print default; the virtual time budget lets
// the page settle before printing without any real network activity.
func (r *ChromiumRenderer) buildArgs(htmlPath, pdfPath string) []string {
	args := []string{
		"--headless",
		"--disable-gpu",
		"--hide-scrollbars",
		"--disable-extensions",
		"--disable-default-apps",
		"--disable-background-networking",
		"--disable-sync",
		"--run-all-compositor-stages-before-draw",
		"--virtual-time-budget=5000",
		"--no-pdf-header-footer",
	}

	if r.config.NoSandbox {
		args = append(args, "--no-sandbox")
	}

	args = append(args,
		"--print-to-pdf="+pdfPath,
		"file://"+htmlPath,
	)

	return args
}

// Close releases resources (no-op, one process per render)
func (r *ChromiumRenderer) Close() error {
	return nil
}

// Ensure ChromiumRenderer implements PDFRenderer
var _ PDFRenderer = (*ChromiumRenderer)(nil)
