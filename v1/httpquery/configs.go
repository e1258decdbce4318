package httpquery

// Default pagination values.
const (
	DefaultPerPage = 20
	DefaultMaxPage = 100
)

// Config controls pagination binding.
type Config struct {
	// DefaultPerPage is used when the request carries neither perPage nor
	// limit, or carries an invalid value.
	//
	// Default: 20
	DefaultPerPage int `yaml:"default_per_page" envconfig:"HTTPQUERY_DEFAULT_PER_PAGE"`

	// MaxPerPage caps the page size a client may request.
	//
	// Default: 100
	MaxPerPage int `yaml:"max_per_page" envconfig:"HTTPQUERY_MAX_PER_PAGE"`
}

// DefaultConfig returns a Config with the default page sizes.
func DefaultConfig() Config {
	return Config{
		DefaultPerPage: DefaultPerPage,
		MaxPerPage:     DefaultMaxPage,
	}
}

func (c Config) withDefaults() Config {
	if c.DefaultPerPage <= 0 {
		c.DefaultPerPage = DefaultPerPage
	}
	if c.MaxPerPage <= 0 {
		c.MaxPerPage = DefaultMaxPage
	}
	if c.DefaultPerPage > c.MaxPerPage {
		c.DefaultPerPage = c.MaxPerPage
	}
	return c
}
