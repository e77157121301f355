// Package voice turns recognized speech into game command tokens.
//
// Recognition itself happens outside the process: a Source delivers
// utterances (a transcript and a confidence), and a Controller filters them
// into normalized tokens that games treat exactly like key presses.
package voice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnsupported is returned by sources that cannot run on this host.
var ErrUnsupported = errors.New("voice: recognition unsupported")

// Utterance is one recognition result.
type Utterance struct {
	Transcript string
	Confidence float64 // In [0, 1]
}

// Source produces utterances until ctx is done or input ends.
type Source interface {
	Listen(ctx context.Context, out chan<- Utterance) error
}

// ParseUtterance parses a "TRANSCRIPT [confidence]" line. A missing
// confidence means 1. The transcript may contain spaces.
func ParseUtterance(line string) (Utterance, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Utterance{}, errors.New("voice: empty line")
	}

	u := Utterance{Transcript: line, Confidence: 1}
	if i := strings.LastIndexByte(line, ' '); i > 0 {
		if c, err := strconv.ParseFloat(line[i+1:], 64); err == nil {
			if c < 0 || c > 1 {
				return Utterance{}, fmt.Errorf("voice: confidence %v out of range", c)
			}
			u.Transcript = strings.TrimSpace(line[:i])
			u.Confidence = c
		}
	}
	return u, nil
}

// LineSource reads utterances line by line, typically from a pipe fed by an
// external recognizer. Malformed lines are logged and skipped.
type LineSource struct {
	r      io.Reader
	logger *log.Logger
}

// NewLineSource creates a source reading r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{r: r, logger: log.Default().WithPrefix("voice")}
}

// Listen implements Source. It returns nil at end of input. Cancelling ctx
// stops delivery but cannot interrupt a read already blocked on r.
func (s *LineSource) Listen(ctx context.Context, out chan<- Utterance) error {
	if s.r == nil {
		return ErrUnsupported
	}

	scanner := bufio.NewScanner(s.r)
	for scanner.Scan() {
		u, err := ParseUtterance(scanner.Text())
		if err != nil {
			s.logger.Debug("skipping line", "err", err)
			continue
		}
		select {
		case out <- u:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("voice: read: %w", err)
	}
	return nil
}
