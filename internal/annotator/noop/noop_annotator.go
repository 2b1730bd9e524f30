package noop

import (
	"context"
	"log"

	"pantrify/internal/config"
	"pantrify/internal/port"
)

type noopAnnotator struct{}

// NewNoopAnnotator creates an ImageAnnotator that detects nothing. It lets the
// scan flow run locally without vision credentials.
func NewNoopAnnotator() port.ImageAnnotator {
	return &noopAnnotator{}
}

// Factory adapts NewNoopAnnotator to annotator.ProviderFactory.
func Factory(_ *config.VisionConfig) (port.ImageAnnotator, error) {
	return NewNoopAnnotator(), nil
}

func (a *noopAnnotator) Annotate(_ context.Context, input port.AnnotateInput) (*port.Annotation, error) {
	log.Printf("[NOOP VISION] skipping annotation of %d byte %s image", len(input.ImageBytes), input.ContentType)
	return &port.Annotation{
		Labels:   []port.Label{},
		Objects:  []port.LocalizedObject{},
		Provider: "noop",
	}, nil
}
