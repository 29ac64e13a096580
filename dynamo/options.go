package dynamo

// Options controls item decoding.
type Options struct {
	// Vectorize decodes homogeneous lists and number/string sets into
	// record.Vector values so they can be indexed column-wise.
	// Default: true
	Vectorize bool
}

// DefaultOptions returns the default decoding options.
func DefaultOptions() Options {
	return Options{Vectorize: true}
}

func resolve(optFns []func(*Options)) Options {
	o := DefaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
