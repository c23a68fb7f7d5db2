package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
)

// AIProviderFactory define la interfaz para crear proveedores de completions
type AIProviderFactory interface {
	// CreateProvider crea el proveedor a partir de la configuración
	CreateProvider(ctx context.Context, cfg *config.Config) (ports.CompletionProvider, error)

	// ValidateConfig valida la configuración para este proveedor
	ValidateConfig(cfg *config.Config) error

	// Name retorna el nombre del proveedor
	Name() string
}

// AIProviderRegistry gestiona el registro de proveedores de IA
type AIProviderRegistry struct {
	mu        sync.RWMutex
	factories map[string]AIProviderFactory
}

func NewAIProviderRegistry() *AIProviderRegistry {
	return &AIProviderRegistry{
		factories: make(map[string]AIProviderFactory),
	}
}

func (r *AIProviderRegistry) Register(name string, factory AIProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("AI provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *AIProviderRegistry) Get(name string) (AIProviderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, domainErrors.ErrUnknownAIProvider.WithContext("provider", name)
	}

	return factory, nil
}

// List retorna los proveedores registrados, ordenados
func (r *AIProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

func (r *AIProviderRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// Create validates cfg and builds the provider selected by cfg.AI.Provider.
func (r *AIProviderRegistry) Create(ctx context.Context, cfg *config.Config) (ports.CompletionProvider, error) {
	factory, err := r.Get(string(cfg.AI.Provider))
	if err != nil {
		return nil, err
	}
	if err := factory.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return factory.CreateProvider(ctx, cfg)
}
