// Package cards loads and merges card-set files into the flat prompt and
// response collections a session is constructed with.
package cards

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mcoot/cardgame-go/internal/model"
)

// PromptDef is a prompt card as it appears in a card-set file
type PromptDef struct {
	Text string `json:"text"`
	Pick int    `json:"pick"`
	Draw int    `json:"draw"`
}

// CardSet is one card-set file: a named collection of prompts and responses
type CardSet struct {
	Name      string      `json:"name"`
	Prompts   []PromptDef `json:"prompts"`
	Responses []string    `json:"responses"`
}

// Service loads card sets and merges them into playable pools
type Service struct {
	logger *slog.Logger
	sets   []*CardSet
}

// New creates a new card set service
func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// LoadFromReader parses and adds a single card set
func (s *Service) LoadFromReader(r io.Reader) (*CardSet, error) {
	var set CardSet
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing card set: %w", err)
	}
	if set.Name == "" {
		return nil, fmt.Errorf("card set has no name")
	}
	s.sets = append(s.sets, &set)
	return &set, nil
}

// LoadFromFile parses and adds the card set at the given path
func (s *Service) LoadFromFile(path string) (*CardSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set, err := s.LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Info("card set loaded",
		slog.String("path", path),
		slog.String("set", set.Name),
		slog.Int("prompts", len(set.Prompts)),
		slog.Int("responses", len(set.Responses)),
	)
	return set, nil
}

// LoadDir loads every .json card set in the given directory
func (s *Service) LoadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := s.LoadFromFile(path); err != nil {
			return err
		}
	}
	return nil
}

// Sets returns the loaded card sets
func (s *Service) Sets() []*CardSet {
	return s.sets
}

// Cards merges every loaded set into fresh prompt and response card
// collections. Each call builds new Card values, so concurrent sessions
// never share card instances. Both collections must be non-empty.
func (s *Service) Cards() (prompts, responses []*model.Card, err error) {
	for _, set := range s.sets {
		for _, def := range set.Prompts {
			prompts = append(prompts, model.NewPrompt(def.Text, def.Pick, def.Draw))
		}
		for _, text := range set.Responses {
			responses = append(responses, model.NewResponse(text))
		}
	}
	if len(prompts) == 0 || len(responses) == 0 {
		return nil, nil, fmt.Errorf("card sets provide %d prompts and %d responses; both must be non-empty",
			len(prompts), len(responses))
	}
	return prompts, responses, nil
}
