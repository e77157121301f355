package voice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// Defaults for Options.
const (
	DefaultThreshold = 0.7
	DefaultCooldown  = 300 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	Threshold float64           // Minimum confidence, DefaultThreshold when 0
	Cooldown  time.Duration     // Per-command repeat guard, DefaultCooldown when 0
	Clock     core.Clock        // SystemClock when nil
	Aliases   map[string]string // Extra words mapped onto vocabulary tokens
}

// Status reports whether recognition can run and whether it is switched on.
type Status struct {
	Supported bool
	Enabled   bool
}

// Stats counts what happened to every utterance.
type Stats struct {
	Total         int
	Recognized    int
	LowConfidence int
	Cooldown      int
	Unknown       int
	PerCommand    map[string]int
}

// Controller matches utterances against a command vocabulary and filters
// them by confidence and per-command cooldown. It is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	vocab     []string
	aliases   map[string]string
	threshold float64
	cooldown  time.Duration
	clock     core.Clock
	logger    *log.Logger

	last   map[string]time.Time
	stats  Stats
	status Status
	warned bool
}

// NewController creates an enabled controller for vocab.
func NewController(vocab []string, opts Options) *Controller {
	c := &Controller{
		threshold: opts.Threshold,
		cooldown:  opts.Cooldown,
		clock:     opts.Clock,
		aliases:   make(map[string]string),
		last:      make(map[string]time.Time),
		status:    Status{Supported: true, Enabled: true},
		logger:    log.Default().WithPrefix("voice"),
	}
	if c.threshold <= 0 {
		c.threshold = DefaultThreshold
	}
	if c.cooldown <= 0 {
		c.cooldown = DefaultCooldown
	}
	if c.clock == nil {
		c.clock = core.SystemClock{}
	}
	for _, v := range vocab {
		c.vocab = append(c.vocab, core.NormalizeCommand(v))
	}
	for word, token := range opts.Aliases {
		c.aliases[core.NormalizeCommand(word)] = core.NormalizeCommand(token)
	}
	c.stats.PerCommand = make(map[string]int)
	return c
}

// Accept returns the command token for u, or false when u is dropped.
func (c *Controller) Accept(u Utterance) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.status.Enabled {
		return "", false
	}
	c.stats.Total++

	token := c.match(u.Transcript)
	if token == "" {
		c.stats.Unknown++
		c.logger.Debug("unrecognized", "transcript", u.Transcript)
		return "", false
	}
	if u.Confidence < c.threshold {
		c.stats.LowConfidence++
		c.logger.Debug("low confidence", "command", token, "confidence", u.Confidence)
		return "", false
	}

	now := c.clock.Now()
	if last, ok := c.last[token]; ok && now.Sub(last) < c.cooldown {
		c.stats.Cooldown++
		return "", false
	}
	c.last[token] = now

	c.stats.Recognized++
	c.stats.PerCommand[token]++
	return token, true
}

// match finds a vocabulary token in a transcript: exact match, then alias,
// then any whole word, then any word sharing a token's first three letters.
func (c *Controller) match(transcript string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, transcript)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return ""
	}

	if c.known(clean) {
		return clean
	}
	if t, ok := c.aliases[clean]; ok && c.known(t) {
		return t
	}

	words := strings.Fields(clean)
	for _, w := range words {
		if c.known(w) {
			return w
		}
		if t, ok := c.aliases[w]; ok && c.known(t) {
			return t
		}
	}
	for _, v := range c.vocab {
		if len(v) < 3 {
			continue
		}
		for _, w := range words {
			if strings.HasPrefix(w, v[:3]) {
				return v
			}
		}
	}
	return ""
}

func (c *Controller) known(token string) bool {
	for _, v := range c.vocab {
		if v == token {
			return true
		}
	}
	return false
}

// Run pumps src through the controller and sends accepted tokens to out
// until ctx is done or src ends. An unsupported source is reported once
// through Status and is not an error.
func (c *Controller) Run(ctx context.Context, src Source, out chan<- string) error {
	in := make(chan Utterance)
	errc := make(chan error, 1)
	go func() {
		errc <- src.Listen(ctx, in)
		close(in)
	}()

	for {
		select {
		case u, ok := <-in:
			if !ok {
				return c.finish(<-errc)
			}
			token, accepted := c.Accept(u)
			if !accepted {
				continue
			}
			select {
			case out <- token:
			case <-ctx.Done():
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Controller) finish(err error) error {
	if errors.Is(err, ErrUnsupported) {
		c.MarkUnsupported(err)
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// MarkUnsupported disables recognition. The reason is logged only once.
func (c *Controller) MarkUnsupported(reason error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = Status{}
	if !c.warned {
		c.warned = true
		c.logger.Warn("voice input unavailable, continuing with keys only", "err", reason)
	}
}

// SetEnabled switches recognition on or off. It has no effect when unsupported.
func (c *Controller) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status.Supported {
		c.status.Enabled = on
	}
}

// Status returns the current capability status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Stats returns a copy of the counters.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.PerCommand = make(map[string]int, len(c.stats.PerCommand))
	for k, v := range c.stats.PerCommand {
		s.PerCommand[k] = v
	}
	return s
}

// ResetStats zeroes the counters and cooldowns.
func (c *Controller) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{PerCommand: make(map[string]int)}
	c.last = make(map[string]time.Time)
}
