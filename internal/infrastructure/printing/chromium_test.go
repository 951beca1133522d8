package printing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeBrowser creates an executable script standing in for the
// headless browser binary.
func writeFakeBrowser(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chromium")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// fakeBrowserOK writes a minimal PDF to the --print-to-pdf target.
const fakeBrowserOK = `#!/bin/sh
out=""
for a in "$@"; do
  case "$a" in
    --print-to-pdf=*) out="${a#--print-to-pdf=}" ;;
  esac
done
printf '%%PDF-1.4\n/Type /Pages\n/Type /Page\n%%%%EOF\n' > "$out"
`

// fakeBrowserFail exits non-zero without producing output.
const fakeBrowserFail = `#!/bin/sh
echo "renderer crashed" >&2
exit 1
`

func TestNewChromiumRenderer_BinaryNotFound(t *testing.T) {
	_, err := NewChromiumRenderer(&ChromiumConfig{
		BinaryPath: filepath.Join(t.TempDir(), "no-such-browser"),
	})
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeBinaryNotFound, renderErr.Code)
}

func TestChromiumRenderer_Render(t *testing.T) {
	tempDir := t.TempDir()
	r, err := NewChromiumRenderer(&ChromiumConfig{
		BinaryPath: writeFakeBrowser(t, fakeBrowserOK),
		TempDir:    tempDir,
	})
	require.NoError(t, err)
	defer r.Close()

	result, err := r.Render(context.Background(), &RenderRequest{
		HTML: "<!DOCTYPE html><html><body>hello</body></html>",
	})
	require.NoError(t, err)
	assert.True(t, len(result.PDFData) > 0)
	assert.Equal(t, "%PDF", string(result.PDFData[:4]))
	assert.Equal(t, 1, result.PageCount)

	// Both scoped temp files are gone after the call returns.
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChromiumRenderer_Render_ProcessFailure(t *testing.T) {
	tempDir := t.TempDir()
	r, err := NewChromiumRenderer(&ChromiumConfig{
		BinaryPath: writeFakeBrowser(t, fakeBrowserFail),
		TempDir:    tempDir,
	})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), &RenderRequest{
		HTML: "<html><body>x</body></html>",
	})
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderFailed, renderErr.Code)
	assert.Contains(t, renderErr.Message, "renderer crashed")

	// Temp files are released on the failure path too.
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChromiumRenderer_Render_EmptyHTML(t *testing.T) {
	r, err := NewChromiumRenderer(&ChromiumConfig{
		BinaryPath: writeFakeBrowser(t, fakeBrowserOK),
	})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), &RenderRequest{HTML: "   "})
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestChromiumRenderer_BuildArgs(t *testing.T) {
	r := &ChromiumRenderer{config: &ChromiumConfig{NoSandbox: true}}

	args := r.buildArgs("/tmp/in.html", "/tmp/out.pdf")

	assert.Contains(t, args, "--headless")
	assert.Contains(t, args, "--no-sandbox")
	assert.Contains(t, args, "--no-pdf-header-footer")
	assert.Contains(t, args, "--disable-background-networking")
	assert.Contains(t, args, "--print-to-pdf=/tmp/out.pdf")
	assert.Contains(t, args, "file:///tmp/in.html")
}

func TestChromiumRenderer_BuildArgs_SandboxedByDefault(t *testing.T) {
	r := &ChromiumRenderer{config: &ChromiumConfig{}}

	args := r.buildArgs("/tmp/in.html", "/tmp/out.pdf")
	assert.NotContains(t, args, "--no-sandbox")
}
