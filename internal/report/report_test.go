package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/aicontext-cli/internal/report"
)

func TestConsoleRoutesStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	c := report.NewConsole(&out, &errOut, false)

	c.Progress("copying templates")
	c.Success("done")
	c.Heading("Token Usage Analysis")
	c.Dim("  README.md: 12 tokens")
	c.Newline()
	c.Warn("template missing")
	c.Error(errors.New("boom"))

	assert.Equal(t, "copying templates\n✓ done\nToken Usage Analysis\n  README.md: 12 tokens\n\n", out.String())
	assert.Equal(t, "⚠ template missing\n✗ boom\n", errOut.String())
}

func TestConsoleColorOnBufferStaysPlain(t *testing.T) {
	var out bytes.Buffer
	c := report.NewConsole(&out, &out, true)
	c.Success("ok")
	assert.Equal(t, "✓ ok", strings.TrimSpace(out.String()))
}

func TestNopSatisfiesReporter(t *testing.T) {
	var r report.Reporter = report.Nop{}
	r.Progress("x")
	r.Warn("y")
	r.Error(errors.New("z"))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "120,000", report.Count(120000))
	assert.Equal(t, "7", report.Count(7))
	assert.Equal(t, "unknown", report.Date(time.Time{}))
	assert.True(t, strings.HasPrefix(report.Date(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)), "2025-10-13 ("))
	assert.Equal(t, "50%", report.Percent(64000, 128000))
	assert.Equal(t, "12.5%", report.Percent(1, 8))
	assert.Equal(t, "n/a", report.Percent(1, 0))
}
