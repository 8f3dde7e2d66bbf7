package capture

import (
	"context"
	"fmt"
	"strings"
	"time"
)

var headerRule = strings.Repeat("=", 80)

// writeHeader records the environment snapshot at the top of the log
// file. Field lookups are bounded by the metadata provider; a fact
// that cannot be determined appears as a placeholder, and the header
// is written regardless.
func (s *Session) writeHeader(now time.Time) error {
	osName, environment, pkgManager := s.meta.Platform()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nPipeline Diagnostic Log\n%s\n", headerRule, headerRule)
	fmt.Fprintf(&b, "Timestamp:       %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Session:         %s\n", s.id)
	fmt.Fprintf(&b, "Revision:        %s\n", s.meta.Revision(context.Background()))
	fmt.Fprintf(&b, "OS:              %s (%s)\n", osName, environment)
	fmt.Fprintf(&b, "Package Manager: %s\n", pkgManager)
	fmt.Fprintf(&b, "Isolation:       %s\n", s.meta.Isolation())
	fmt.Fprintf(&b, "Runtime:         %s\n", s.meta.RuntimeVersion())
	fmt.Fprintf(&b, "Platform:        %s\n", s.meta.PlatformDescriptor())
	fmt.Fprintf(&b, "Command:         %s\n", formatTokens(s.meta.CommandLine()))
	fmt.Fprintf(&b, "%s\n\n", headerRule)

	if _, err := s.file.WriteString(b.String()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// formatTokens coerces command tokens of any type to text. A
// non-string token must never make header writing fail.
func formatTokens(tokens []any) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprint(tok)
	}
	return strings.Join(parts, " ")
}
