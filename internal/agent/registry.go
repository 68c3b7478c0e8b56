// internal/agent/registry.go
//
// An explicit registry mapping agent names to constructors. Orchestration
// code receives a registry instance; nothing in the core depends on it, and
// there is no package-level mutable lookup table.

package agent

import (
	"fmt"
	"sort"

	"github.com/robalobadob/wordle-rl/internal/words"
)

// Player is the surface orchestration code drives: RL agents and baselines
// both implement it.
type Player interface {
	Name() string
	Play(limit int) (RunResult, error)
	Reset()
}

// Factory builds a Player over a corpus.
type Factory func(corpus *words.Corpus, cfg Config) (Player, error)

// Registry maps agent names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces a factory under name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New constructs the named Player.
func (r *Registry) New(name string, corpus *words.Corpus, cfg Config) (Player, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("agent: unknown agent %q (have %v)", name, r.Names())
	}
	return f(corpus, cfg)
}

// Names lists the registered agent names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for n := range r.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry registers the built-in agents.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("qlearning", func(c *words.Corpus, cfg Config) (Player, error) {
		cfg.Rule = QLearning
		return New(c, cfg)
	})
	r.Register("sarsa", func(c *words.Corpus, cfg Config) (Player, error) {
		cfg.Rule = Sarsa
		return New(c, cfg)
	})
	r.Register("simple", func(c *words.Corpus, cfg Config) (Player, error) {
		return NewSimple(c), nil
	})
	r.Register("random", func(c *words.Corpus, cfg Config) (Player, error) {
		return NewRandom(c, cfg.Seed), nil
	})
	return r
}
