// Package datasource selects the repository adapters for the process.
//
// A Factory is built once at startup and handed to whoever needs repositories.
// Each entity's adapter is constructed on first use and the same instance is
// returned afterwards; there is no hot-swap and no per-request selection.
package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"communityhub/internal/adapters/auth"
	"communityhub/internal/adapters/notify"
	"communityhub/internal/domain"
	"communityhub/internal/repository/localstore"
	"communityhub/internal/repository/memory"
	"communityhub/internal/repository/postgres"
)

// Source names a backend family.
type Source string

const (
	SourceInMemory     Source = "in-memory"
	SourceLocalStorage Source = "local-storage"
	SourceRemote       Source = "remote"
)

// TestEnvironment is the GO_ENV value under which every entity gets its test double.
const TestEnvironment = "test"

const openTimeout = 10 * time.Second

// ParseSource maps a configured backend name to a Source. Empty means in-memory and
// "supabase" is accepted for remote.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SourceInMemory):
		return SourceInMemory, nil
	case string(SourceLocalStorage):
		return SourceLocalStorage, nil
	case string(SourceRemote), "supabase":
		return SourceRemote, nil
	default:
		return "", fmt.Errorf("unknown data source %q: %w", s, domain.ErrInvalidInput)
	}
}

// Config is what the factory reads to pick and build adapters.
type Config struct {
	Environment string
	DataSource  string
	// AuthSource overrides the auth backend. Empty means remote when DataSource is
	// remote and local-storage otherwise.
	AuthSource       string
	DatabaseURL      string
	LocalStorePath   string
	SimulatedLatency time.Duration
	// ProviderJWTSecret verifies access tokens presented to the remote identity provider.
	ProviderJWTSecret string
}

// Repositories bundles one adapter per entity.
type Repositories struct {
	Events    domain.EventRepository
	Speakers  domain.SpeakerRepository
	Proposals domain.ProposalRepository
	Auth      domain.AuthRepository
}

// Factory memoizes one repository per entity.
type Factory struct {
	testMode   bool
	dataSource Source
	authSource Source
	cfg        Config
	notifier   domain.ProposalNotifier
	logger     *slog.Logger

	mu      sync.Mutex
	closers []func() error

	store func() (localstore.Store, error)
	db    func() (*sql.DB, error)

	events    func() (domain.EventRepository, error)
	speakers  func() (domain.SpeakerRepository, error)
	proposals func() (domain.ProposalRepository, error)
	auth      func() (domain.AuthRepository, error)
}

// NewFactory validates the configured sources. Nothing is opened until a repository
// is first requested. notifier is used by the remote proposal repository; nil means noop.
func NewFactory(cfg Config, notifier domain.ProposalNotifier, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dataSource, err := ParseSource(cfg.DataSource)
	if err != nil {
		return nil, err
	}
	authSource := SourceLocalStorage
	if dataSource == SourceRemote {
		authSource = SourceRemote
	}
	if cfg.AuthSource != "" {
		if authSource, err = ParseSource(cfg.AuthSource); err != nil {
			return nil, fmt.Errorf("auth source: %w", err)
		}
	}
	if notifier == nil {
		notifier = notify.NewNoopNotifier(logger)
	}

	f := &Factory{
		testMode:   cfg.Environment == TestEnvironment,
		dataSource: dataSource,
		authSource: authSource,
		cfg:        cfg,
		notifier:   notifier,
		logger:     logger,
	}
	f.store = sync.OnceValues(f.openStore)
	f.db = sync.OnceValues(f.openDB)
	f.events = sync.OnceValues(f.newEvents)
	f.speakers = sync.OnceValues(f.newSpeakers)
	f.proposals = sync.OnceValues(f.newProposals)
	f.auth = sync.OnceValues(f.newAuth)
	return f, nil
}

func (f *Factory) Events() (domain.EventRepository, error)       { return f.events() }
func (f *Factory) Speakers() (domain.SpeakerRepository, error)   { return f.speakers() }
func (f *Factory) Proposals() (domain.ProposalRepository, error) { return f.proposals() }
func (f *Factory) Auth() (domain.AuthRepository, error)          { return f.auth() }

// Repositories resolves every entity and returns them as one bundle.
func (f *Factory) Repositories() (*Repositories, error) {
	events, err := f.Events()
	if err != nil {
		return nil, fmt.Errorf("event repository: %w", err)
	}
	speakers, err := f.Speakers()
	if err != nil {
		return nil, fmt.Errorf("speaker repository: %w", err)
	}
	proposals, err := f.Proposals()
	if err != nil {
		return nil, fmt.Errorf("proposal repository: %w", err)
	}
	authRepo, err := f.Auth()
	if err != nil {
		return nil, fmt.Errorf("auth repository: %w", err)
	}
	return &Repositories{Events: events, Speakers: speakers, Proposals: proposals, Auth: authRepo}, nil
}

// Close releases the local store and database connection if they were opened.
func (f *Factory) Close() error {
	f.mu.Lock()
	closers := f.closers
	f.closers = nil
	f.mu.Unlock()

	var errs []error
	for _, c := range closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Factory) onClose(c func() error) {
	f.mu.Lock()
	f.closers = append(f.closers, c)
	f.mu.Unlock()
}

func (f *Factory) options() memory.Options {
	return memory.Options{Latency: f.cfg.SimulatedLatency}
}

func (f *Factory) openStore() (localstore.Store, error) {
	if f.cfg.LocalStorePath == "" {
		f.logger.Warn("LOCAL_STORE_PATH is empty, local data will not survive a restart")
		return localstore.NewMapStore(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()
	store, err := localstore.OpenSQLite(ctx, f.cfg.LocalStorePath)
	if err != nil {
		return nil, err
	}
	f.onClose(store.Close)
	f.logger.Info("local store opened", "path", f.cfg.LocalStorePath)
	return store, nil
}

func (f *Factory) openDB() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()
	db, err := postgres.Open(ctx, f.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	f.onClose(db.Close)
	f.logger.Info("connected to database")
	return db, nil
}

func (f *Factory) newEvents() (domain.EventRepository, error) {
	if f.testMode {
		return memory.NewFakeEventRepository(), nil
	}
	switch f.dataSource {
	case SourceLocalStorage:
		store, err := f.store()
		if err != nil {
			return nil, err
		}
		return localstore.NewEventRepository(store, f.options()), nil
	case SourceRemote:
		db, err := f.db()
		if err != nil {
			return nil, err
		}
		return postgres.NewEventRepository(db), nil
	default:
		return memory.NewEventRepository(f.options()), nil
	}
}

func (f *Factory) newSpeakers() (domain.SpeakerRepository, error) {
	if f.testMode {
		return memory.NewFakeSpeakerRepository(), nil
	}
	switch f.dataSource {
	case SourceLocalStorage:
		store, err := f.store()
		if err != nil {
			return nil, err
		}
		return localstore.NewSpeakerRepository(store, f.options()), nil
	case SourceRemote:
		db, err := f.db()
		if err != nil {
			return nil, err
		}
		return postgres.NewSpeakerRepository(db), nil
	default:
		return memory.NewSpeakerRepository(f.options()), nil
	}
}

func (f *Factory) newProposals() (domain.ProposalRepository, error) {
	if f.testMode {
		return memory.NewFakeProposalRepository(), nil
	}
	switch f.dataSource {
	case SourceLocalStorage:
		store, err := f.store()
		if err != nil {
			return nil, err
		}
		return localstore.NewProposalRepository(store, f.options()), nil
	case SourceRemote:
		db, err := f.db()
		if err != nil {
			return nil, err
		}
		return postgres.NewProposalRepository(db, f.notifier, f.logger), nil
	default:
		return memory.NewProposalRepository(f.options()), nil
	}
}

func (f *Factory) newAuth() (domain.AuthRepository, error) {
	if f.testMode {
		return memory.NewFakeAuthRepository(), nil
	}
	switch f.authSource {
	case SourceLocalStorage:
		store, err := f.store()
		if err != nil {
			return nil, err
		}
		return localstore.NewAuthRepository(context.Background(), store, f.options(), f.logger), nil
	case SourceRemote:
		provider := auth.NewTokenIdentityProvider(auth.ContextTokenSource{}, auth.NewJWTVerifier(f.cfg.ProviderJWTSecret))
		return auth.NewAuthRepository(context.Background(), provider, f.logger), nil
	default:
		return memory.NewAuthRepository(f.options()), nil
	}
}
