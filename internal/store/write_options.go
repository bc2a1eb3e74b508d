package store

// WriteOption customises a single Put or Delete.
type WriteOption func(*writeOptions)

type writeOptions struct {
	message string
}

// WithMessage sets the commit message recorded by the backend.
func WithMessage(message string) WriteOption {
	return func(o *writeOptions) {
		o.message = message
	}
}

func applyWriteOptions(defaultMessage string, opts []WriteOption) writeOptions {
	o := writeOptions{message: defaultMessage}
	for _, opt := range opts {
		opt(&o)
	}
	if o.message == "" {
		o.message = defaultMessage
	}
	return o
}
