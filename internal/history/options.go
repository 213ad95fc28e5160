package history

import "github.com/rs/zerolog"

// Option configures a Processor during creation.
type Option func(*Processor)

// WithMaxEntries caps the undo stack. Zero means no limit; negative values
// are ignored.
func WithMaxEntries(max int) Option {
	return func(p *Processor) {
		if max >= 0 {
			p.maxEntries = max
		}
	}
}

// WithLogger sets the logger used for debug tracing of history changes.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithObserver registers an observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(p *Processor) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}
