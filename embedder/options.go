package embedder

import "context"

const (
	TaskRetrievalDocument = "retrieval_document"
	TaskRetrievalQuery    = "retrieval_query"
)

type Option func(*Options)

type Options struct {
	ApiKey     string
	Model      string
	Task       string
	Dimensions int
	Context    context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTask(task string) Option {
	return func(o *Options) {
		o.Task = task
	}
}

// WithDimensions requests a specific output dimensionality from providers
// that support it; others ignore it.
func WithDimensions(dimensions int) Option {
	return func(o *Options) {
		if dimensions > 0 {
			o.Dimensions = dimensions
		}
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Task:    TaskRetrievalDocument,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
