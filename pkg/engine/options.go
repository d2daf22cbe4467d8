package engine

// Options configures engine behavior.
type Options struct {
	// Style names the suite style that owns the engine. It appears in
	// lifecycle error messages so suite authors can recognize the source.
	Style string

	// ReservedVerbs lists sentence verbs the owning style supplies itself.
	// Test text beginning with one of them, followed by a space, is
	// rejected with an IllegalNameError.
	ReservedVerbs []string
}

// Option is a functional option for configuring an Engine.
type Option func(*Options)

// WithStyle names the suite style that owns the engine.
func WithStyle(name string) Option {
	return func(o *Options) {
		o.Style = name
	}
}

// WithReservedVerbs sets the verbs rejected at the start of test text.
func WithReservedVerbs(verbs ...string) Option {
	return func(o *Options) {
		o.ReservedVerbs = verbs
	}
}

// regOptions configures a single registration call.
type regOptions struct {
	clause     string
	verb       string
	tags       []string
	callerSkip int
}

// RegOption is a functional option applying to a single registration call.
type RegOption func(*regOptions)

// WithTags attaches tags to the registered test.
func WithTags(tags ...string) RegOption {
	return func(o *regOptions) {
		o.tags = append(o.tags, tags...)
	}
}

// WithClause sets the clause name used in lifecycle error messages, such as
// "it" or "describe". Styles pass the clause their authors actually wrote.
func WithClause(name string) RegOption {
	return func(o *regOptions) {
		if name != "" {
			o.clause = name
		}
	}
}

// WithVerb prefixes the leaf text with a style-supplied verb, keeping the
// author's own text free of it.
func WithVerb(verb string) RegOption {
	return func(o *regOptions) {
		o.verb = verb
	}
}

// WithCallerSkip adds stack frames to skip when capturing the registration
// location. Styles wrapping the engine pass the depth of their wrappers.
func WithCallerSkip(n int) RegOption {
	return func(o *regOptions) {
		if n >= 0 {
			o.callerSkip = n
		}
	}
}

func applyRegOptions(defaultClause string, opts []RegOption) *regOptions {
	ro := &regOptions{clause: defaultClause}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}
