package calendar

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/guilherme-santos/meetsync/internal"
)

type Mux struct {
	mu        sync.Mutex
	providers map[string]internal.Provider
}

func NewMux() *Mux {
	return &Mux{
		providers: make(map[string]internal.Provider),
	}
}

func (m *Mux) Get(platform string) (internal.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	provider, ok := m.providers[platform]
	if !ok {
		return nil, fmt.Errorf("calendar %q is not implemented, available: %s", platform, strings.Join(m.platforms(), ", "))
	}
	return provider, nil
}

func (m *Mux) Register(platform string, provider internal.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.providers[platform] = provider
}

func (m *Mux) platforms() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
