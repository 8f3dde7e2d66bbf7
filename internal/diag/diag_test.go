package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Info().Msg("visible notice")
	logger.Debug().Msg("hidden detail")

	got := buf.String()
	if !strings.Contains(got, "visible notice") {
		t.Errorf("info event missing: %q", got)
	}
	if strings.Contains(got, "hidden detail") {
		t.Errorf("debug event leaked at default level: %q", got)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug().Msg("wanted detail")
	if !strings.Contains(buf.String(), "wanted detail") {
		t.Errorf("debug event missing in verbose mode: %q", buf.String())
	}
}
