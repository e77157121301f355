// Package registry maps game IDs to factories. Games add themselves to the
// default registry from init(); hosts discover them by ID and learn each
// game's command vocabulary without importing the game packages.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "dino-run", "bop-it").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Dino Run").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when the host restarts the game.
	// The RuntimeConfig provides the RNG seed, clock and high-score store.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances the simulation to the
	// clock's current time. Input is abstracted to platform-level actions
	// and normalized command tokens. Returns the state and emitted events.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state onto the surface in world
	// coordinates (core.WorldWidth x core.WorldHeight).
	Render(dst core.Surface)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// EventSource is implemented by games that publish typed events.
type EventSource interface {
	Events() *core.EventBus
}

// CommandSource is implemented by games that accept command tokens, such as
// those produced by voice recognition.
type CommandSource interface {
	Commands() []string
}

// ErrUnknownGame is returned by Create for unregistered IDs.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
	// Commands is the game's token vocabulary; nil for games without one.
	Commands []string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// Registry holds game factories keyed by ID. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	factory Factory
	info    GameInfo
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory. A probe instance supplies the title and
// commands. Panics if id is empty or already registered.
func (r *Registry) Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	probe := f()
	info := GameInfo{ID: id, Title: probe.Title()}
	if cs, ok := probe.(CommandSource); ok {
		info.Commands = slices.Clone(cs.Commands())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.entries[id] = entry{factory: f, info: info}
}

// List returns every registered game, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a new game by its ID.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

// Vocabulary returns the union of every game's commands, in ID order and
// without duplicates. A voice recognizer shared by all games listens for it.
func (r *Registry) Vocabulary() []string {
	var vocab []string
	for _, info := range r.List() {
		for _, c := range info.Commands {
			if !slices.Contains(vocab, c) {
				vocab = append(vocab, c)
			}
		}
	}
	return vocab
}

var defaultRegistry = New()

// Register adds a factory to the default registry.
func Register(id string, f Factory) { defaultRegistry.Register(id, f) }

// List returns the games of the default registry.
func List() []GameInfo { return defaultRegistry.List() }

// Create instantiates a game from the default registry.
func Create(id string) (Game, error) { return defaultRegistry.Create(id) }

// Exists reports whether the default registry knows id.
func Exists(id string) bool { return defaultRegistry.Exists(id) }

// Vocabulary returns the default registry's combined commands.
func Vocabulary() []string { return defaultRegistry.Vocabulary() }
