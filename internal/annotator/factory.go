package annotator

import (
	"fmt"

	"pantrify/internal/config"
	"pantrify/internal/port"
)

// ProviderFactory is a function that creates an ImageAnnotator from the vision config.
type ProviderFactory func(cfg *config.VisionConfig) (port.ImageAnnotator, error)

// registry of annotator factories, populated via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an annotator factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewAnnotator creates an ImageAnnotator using the factory registered for cfg.Provider.
func NewAnnotator(cfg *config.VisionConfig) (port.ImageAnnotator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
