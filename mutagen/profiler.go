package mutagen

import (
	"encoding/json"
	"fmt"
	"os"
)

// Profiler counts generate/mutate/update events per type key. It implements
// Sink; plug it into a Context to collect a profile of which types an
// evolutionary run actually exercises.
type Profiler struct {
	Generated map[string]int `json:"generated"`
	Mutated   map[string]int `json:"mutated"`
	Updated   map[string]int `json:"updated"`
}

// NewProfiler returns an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{
		Generated: make(map[string]int),
		Mutated:   make(map[string]int),
		Updated:   make(map[string]int),
	}
}

// HandleEvent implements Sink.
func (p *Profiler) HandleEvent(e Event) {
	switch e.Kind {
	case EventGenerate:
		p.Generated[e.Key]++
	case EventMutate:
		p.Mutated[e.Key]++
	case EventUpdate:
		p.Updated[e.Key]++
	}
}

// Save writes the profile as JSON.
func (p *Profiler) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// LoadProfiler reads a profile previously written by Save.
func LoadProfiler(path string) (*Profiler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p := NewProfiler()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return p, nil
}
