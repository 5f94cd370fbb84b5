package localstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"communityhub/internal/domain"
)

// schemaVersion is written with every collection. Version 0 is the legacy bare
// JSON array written before payloads were tagged.
const schemaVersion = 1

type envelope[T any] struct {
	Version int `json:"version"`
	Items   []T `json:"items"`
}

// collection loads and saves one whole slice under a fixed key.
type collection[T any] struct {
	store Store
	key   string
	// normalize fills defaults on read so records written by older builds stay usable.
	normalize func(T) T
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok {
		return []T{}, nil
	}
	items, err := c.decode(raw)
	if err != nil {
		return nil, err
	}
	if c.normalize != nil {
		for i := range items {
			items[i] = c.normalize(items[i])
		}
	}
	return items, nil
}

func (c collection[T]) decode(raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.key, err)
		}
		return items, nil
	}
	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if env.Version > schemaVersion {
		return nil, fmt.Errorf("%s has version %d: %w", c.key, env.Version, domain.ErrUnsupportedVersion)
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	return env.Items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(envelope[T]{Version: schemaVersion, Items: items})
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}
