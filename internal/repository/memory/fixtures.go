package memory

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"communityhub/internal/domain"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

var (
	loadEventFixtures   = sync.OnceValues(func() ([]*domain.Event, error) { return decodeFixtures[domain.Event]("events.yaml") })
	loadSpeakerFixtures = sync.OnceValues(func() ([]*domain.Speaker, error) { return decodeFixtures[domain.Speaker]("speakers.yaml") })
)

func decodeFixtures[T any](name string) ([]*T, error) {
	raw, err := fixtureFS.ReadFile("fixtures/" + name)
	if err != nil {
		return nil, err
	}
	var items []*T
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return items, nil
}

// DemoEvents returns a fresh copy of the demo events seeded into new in-memory repositories.
func DemoEvents() []*domain.Event {
	events, err := loadEventFixtures()
	if err != nil {
		panic(err)
	}
	out := make([]*domain.Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}

// DemoSpeakers returns a fresh copy of the demo speakers.
func DemoSpeakers() []*domain.Speaker {
	speakers, err := loadSpeakerFixtures()
	if err != nil {
		panic(err)
	}
	out := make([]*domain.Speaker, len(speakers))
	for i, s := range speakers {
		cp := *s
		out[i] = &cp
	}
	return out
}
