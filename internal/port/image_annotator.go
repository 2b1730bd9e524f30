package port

import "context"

// AnnotateInput carries the image to be classified.
type AnnotateInput struct {
	ImageBytes  []byte
	ContentType string
}

// Label is a free-text classification of the whole image.
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// LocalizedObject is a named object found somewhere in the image.
type LocalizedObject struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Annotation is the raw output of an image annotator.
type Annotation struct {
	Labels   []Label           `json:"labels"`
	Objects  []LocalizedObject `json:"objects"`
	Provider string            `json:"provider"`
}

// ImageAnnotator abstracts a cloud image classification service.
type ImageAnnotator interface {
	Annotate(ctx context.Context, input AnnotateInput) (*Annotation, error)
}
