package stream

// Config holds configuration for the Handler.
type Config struct {
	// KeySeparator joins the primary key values into the view key.
	// Default: "#"
	KeySeparator string

	// TTLAttribute is the attribute holding the expiry time in Unix seconds.
	// Default: "ttl"
	TTLAttribute string

	// DropExpired removes an entry from its view when a change sets its TTL
	// to a time that has already passed, the way soft-deleted entities are
	// marked. When false, expired images are stored like any other.
	// Default: true
	DropExpired bool
}

// DefaultConfig returns the default handler configuration.
func DefaultConfig() Config {
	return Config{
		KeySeparator: "#",
		TTLAttribute: "ttl",
		DropExpired:  true,
	}
}

// validate fills empty values with their defaults.
func (c *Config) validate() {
	if c.KeySeparator == "" {
		c.KeySeparator = "#"
	}
	if c.TTLAttribute == "" {
		c.TTLAttribute = "ttl"
	}
}
