package voice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

var bopItVocab = []string{"BOP", "TWIST", "PULL", "FLICK", "SPIN", "PASS"}

func TestParseUtterance(t *testing.T) {
	tests := []struct {
		line    string
		want    Utterance
		wantErr bool
	}{
		{"BOP", Utterance{"BOP", 1}, false},
		{"twist 0.85", Utterance{"twist", 0.85}, false},
		{"  jump up 0.5 ", Utterance{"jump up", 0.5}, false},
		{"go up", Utterance{"go up", 1}, false},
		{"", Utterance{}, true},
		{"spin 1.5", Utterance{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseUtterance(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUtterance(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseUtterance(%q) = %+v, expected %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestAcceptMatching(t *testing.T) {
	c := NewController(bopItVocab, Options{Aliases: map[string]string{"bob": "bop"}})

	tests := []struct {
		transcript string
		want       string
	}{
		{"bop", "BOP"},
		{"Twist!", "TWIST"},
		{"please pull it", "PULL"},
		{"flicking", "FLICK"},
		{"bob", "BOP"},
		{"passing", "PASS"},
		{"hello", ""},
		{"...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			c.ResetStats()
			got, ok := c.Accept(Utterance{Transcript: tt.transcript, Confidence: 0.9})
			if got != tt.want || ok != (tt.want != "") {
				t.Errorf("Accept(%q) = %q, %v, expected %q", tt.transcript, got, ok, tt.want)
			}
		})
	}
}

func TestAcceptConfidenceThreshold(t *testing.T) {
	c := NewController(bopItVocab, Options{})

	if _, ok := c.Accept(Utterance{"BOP", 0.69}); ok {
		t.Error("confidence below 0.7 should be rejected")
	}
	if _, ok := c.Accept(Utterance{"BOP", 0.7}); !ok {
		t.Error("confidence at 0.7 should be accepted")
	}

	s := c.Stats()
	if s.Total != 2 || s.LowConfidence != 1 || s.Recognized != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestAcceptCooldown(t *testing.T) {
	clock := core.NewManualClock(time.Unix(0, 0))
	c := NewController(bopItVocab, Options{Clock: clock})

	if _, ok := c.Accept(Utterance{"BOP", 1}); !ok {
		t.Fatal("first BOP rejected")
	}
	clock.Advance(299 * time.Millisecond)
	if _, ok := c.Accept(Utterance{"BOP", 1}); ok {
		t.Error("repeat within 300ms should be rejected")
	}
	if _, ok := c.Accept(Utterance{"TWIST", 1}); !ok {
		t.Error("cooldown is per command")
	}
	clock.Advance(time.Millisecond)
	if _, ok := c.Accept(Utterance{"BOP", 1}); !ok {
		t.Error("repeat after 300ms should be accepted")
	}

	s := c.Stats()
	if s.Cooldown != 1 || s.PerCommand["BOP"] != 2 || s.PerCommand["TWIST"] != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestStatusAndDisable(t *testing.T) {
	c := NewController(bopItVocab, Options{})
	if c.Status() != (Status{Supported: true, Enabled: true}) {
		t.Fatalf("Status() = %+v", c.Status())
	}

	c.SetEnabled(false)
	if _, ok := c.Accept(Utterance{"BOP", 1}); ok {
		t.Error("a disabled controller accepts nothing")
	}
	if c.Stats().Total != 0 {
		t.Error("a disabled controller counts nothing")
	}

	c.MarkUnsupported(ErrUnsupported)
	c.MarkUnsupported(ErrUnsupported)
	c.SetEnabled(true)
	if c.Status() != (Status{}) {
		t.Errorf("Status() = %+v, expected unsupported and disabled", c.Status())
	}
}

func TestRunPumpsLines(t *testing.T) {
	clock := core.NewManualClock(time.Unix(0, 0))
	c := NewController(bopItVocab, Options{Clock: clock})
	src := NewLineSource(strings.NewReader("bop 0.9\n\nnoise\ntwist 0.2\nspin\nbop\n"))

	out := make(chan string, 10)
	if err := c.Run(context.Background(), src, out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	close(out)

	var got []string
	for tok := range out {
		got = append(got, tok)
	}
	if strings.Join(got, ",") != "BOP,SPIN" {
		t.Errorf("Run() delivered %v, expected [BOP SPIN]", got)
	}
	if s := c.Stats(); s.Unknown != 1 || s.LowConfidence != 1 || s.Cooldown != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

type failingSource struct{ err error }

func (f failingSource) Listen(context.Context, chan<- Utterance) error { return f.err }

func TestRunUnsupportedIsNotFatal(t *testing.T) {
	c := NewController(bopItVocab, Options{})

	if err := c.Run(context.Background(), failingSource{ErrUnsupported}, make(chan string)); err != nil {
		t.Errorf("Run() error = %v, expected nil", err)
	}
	if c.Status().Supported {
		t.Error("an unsupported source should mark the controller unsupported")
	}

	boom := errors.New("boom")
	c2 := NewController(bopItVocab, Options{})
	if err := c2.Run(context.Background(), failingSource{boom}, make(chan string)); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, expected %v", err, boom)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c := NewController(bopItVocab, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered and never read: only cancellation can end Run.
	src := NewLineSource(strings.NewReader("bop\ntwist\n"))
	if err := c.Run(ctx, src, make(chan string)); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestNilReaderUnsupported(t *testing.T) {
	src := &LineSource{}
	if err := src.Listen(context.Background(), make(chan Utterance)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Listen() error = %v, expected ErrUnsupported", err)
	}
}
