package localstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"
)

// NewAuthRepository returns the in-memory auth adapter with its session persisted under
// SessionKey: a stored user means signed in across restarts, no key means signed out.
// A stored value that does not decode is deleted and the session starts signed out.
func NewAuthRepository(ctx context.Context, store Store, opts memory.Options, logger *slog.Logger) domain.AuthRepository {
	initial := hydrateSession(ctx, store, logger)
	persist := func(u *domain.User) {
		// listeners run without a request context
		ctx := context.Background()
		if u == nil {
			if err := store.Delete(ctx, SessionKey); err != nil {
				logger.Error("failed to clear stored session", "key", SessionKey, "err", err)
			}
			return
		}
		raw, err := json.Marshal(u)
		if err != nil {
			logger.Error("failed to encode session", "err", err)
			return
		}
		if err := store.Set(ctx, SessionKey, raw); err != nil {
			logger.Error("failed to store session", "key", SessionKey, "err", err)
		}
	}
	return memory.NewAuthRepository(opts, memory.WithInitialUser(initial), memory.WithSessionHook(persist))
}

func hydrateSession(ctx context.Context, store Store, logger *slog.Logger) *domain.User {
	raw, ok, err := store.Get(ctx, SessionKey)
	if err != nil {
		logger.Warn("failed to read stored session", "key", SessionKey, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil || u.Email == "" {
		logger.Warn("discarding unreadable stored session", "key", SessionKey, "err", err)
		if err := store.Delete(ctx, SessionKey); err != nil {
			logger.Error("failed to clear stored session", "key", SessionKey, "err", err)
		}
		return nil
	}
	return &u
}
