// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kernel

import (
	"fmt"
	"strings"
)

// Sentinel markers framing one evaluation's printed output. Everything the
// kernel prints outside a marker pair (banners, message lines) is discarded.
const (
	beginMarker = "<<nbx:begin>>"
	endMarker   = "<<nbx:end>>"
)

// Session is a live kernel process accepting evaluations over its stdio.
// Evaluations are strictly sequential; Session is not safe for concurrent
// use. Close must be called exactly once after a successful Launch, on both
// success and failure paths.
type Session struct {
	proc   process
	closed bool
}

// Evaluate submits a Wolfram Language expression whose value is a string
// and returns that string. The expression is framed between sentinel prints
// so kernel noise never leaks into the payload. Evaluate blocks until the
// kernel replies; there is no timeout.
func (s *Session) Evaluate(expr string) (string, error) {
	framed := fmt.Sprintf(`Print[%q]; Print[%s]; Print[%q]`,
		beginMarker, oneLine(expr), endMarker)
	if err := s.proc.Send(framed); err != nil {
		return "", fmt.Errorf("writing to kernel: %w", err)
	}

	// Skip everything up to the begin marker.
	for {
		line, err := s.proc.ReadLine()
		if err != nil {
			return "", fmt.Errorf("reading from kernel: %w", err)
		}
		if strings.TrimSpace(line) == beginMarker {
			break
		}
	}

	var payload []string
	for {
		line, err := s.proc.ReadLine()
		if err != nil {
			return "", fmt.Errorf("reading from kernel: %w", err)
		}
		if strings.TrimSpace(line) == endMarker {
			break
		}
		payload = append(payload, line)
	}
	return strings.Join(payload, "\n"), nil
}

// Close terminates the kernel process. Subsequent calls are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.proc.Close()
}

// oneLine collapses a multi-line program into a single input line so the
// kernel reads it as one complete expression. String literals in generated
// programs never contain raw newlines; escaping guarantees it.
func oneLine(expr string) string {
	lines := strings.Split(expr, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}
