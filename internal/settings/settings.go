// Package settings keeps user preferences that survive restarts.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mtz196822-maker/digistore-araby/internal/kv"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const storageKey = "digistore_theme"

type Manager struct {
	mu      sync.RWMutex
	theme   Theme
	storage kv.Store
	logger  zerolog.Logger
}

func NewManager(storage kv.Store, logger zerolog.Logger) *Manager {
	return &Manager{
		theme:   ThemeLight,
		storage: storage,
		logger:  logger.With().Str("component", "settings").Logger(),
	}
}

// Hydrate restores the persisted theme. A missing or corrupt entry
// falls back to the light default.
func (m *Manager) Hydrate(ctx context.Context) {
	raw, err := m.storage.Get(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.logger.Warn().Err(err).Msg("failed to load theme")
		}
		return
	}

	var theme Theme
	if err := json.Unmarshal(raw, &theme); err != nil {
		m.logger.Warn().Err(err).Msg("discarding corrupt theme entry")
		return
	}
	if theme != ThemeLight && theme != ThemeDark {
		return
	}

	m.mu.Lock()
	m.theme = theme
	m.mu.Unlock()
}

func (m *Manager) Theme() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// Toggle flips between light and dark and returns the new theme. The
// durable copy is written before the lock is released so it can never
// trail a concurrent toggle.
func (m *Manager) Toggle(ctx context.Context) Theme {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.theme == ThemeLight {
		m.theme = ThemeDark
	} else {
		m.theme = ThemeLight
	}
	m.persist(ctx)
	return m.theme
}

// Set applies an explicit theme, ignoring unknown values.
func (m *Manager) Set(ctx context.Context, theme Theme) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.theme = theme
	m.persist(ctx)
}

// persist is called under the lock.
func (m *Manager) persist(ctx context.Context) {
	raw, err := json.Marshal(m.theme)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to encode theme")
		return
	}
	if err := m.storage.Set(ctx, storageKey, raw); err != nil {
		m.logger.Warn().Err(err).Msg("failed to persist theme")
	}
}
