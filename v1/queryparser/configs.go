package queryparser

// Default values used by DefaultConfig.
const (
	DefaultSoftDeleteField = "deleted"
	DefaultSortField       = "createdAt"
	DefaultSortDirection   = -1
)

// Config controls the store conventions the parser writes into its results.
type Config struct {
	// SoftDeleteField is the boolean field that marks logically deleted
	// documents. Parse always adds `<SoftDeleteField>: false` to the filter.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "soft_delete_field" key
	//   - Environment variable QUERYPARSER_SOFT_DELETE_FIELD
	//
	// Default: "deleted"
	SoftDeleteField string `yaml:"soft_delete_field" envconfig:"QUERYPARSER_SOFT_DELETE_FIELD"`

	// DefaultSortField is used when the request carries no sort parameter.
	//
	// Default: "createdAt"
	DefaultSortField string `yaml:"default_sort_field" envconfig:"QUERYPARSER_DEFAULT_SORT_FIELD"`

	// DefaultSortDirection is 1 (ascending) or -1 (descending).
	//
	// Default: -1
	DefaultSortDirection int `yaml:"default_sort_direction" envconfig:"QUERYPARSER_DEFAULT_SORT_DIRECTION"`

	// ServiceName is attached to every log entry and observed operation.
	ServiceName string `yaml:"service_name" envconfig:"QUERYPARSER_SERVICE_NAME"`
}

// DefaultConfig returns the conventions of the reference document store.
func DefaultConfig() Config {
	return Config{
		SoftDeleteField:      DefaultSoftDeleteField,
		DefaultSortField:     DefaultSortField,
		DefaultSortDirection: DefaultSortDirection,
	}
}

// withDefaults fills zero values so a partially populated Config still
// produces well-formed results.
func (c Config) withDefaults() Config {
	if c.SoftDeleteField == "" {
		c.SoftDeleteField = DefaultSoftDeleteField
	}
	if c.DefaultSortField == "" {
		c.DefaultSortField = DefaultSortField
	}
	if c.DefaultSortDirection != 1 && c.DefaultSortDirection != -1 {
		c.DefaultSortDirection = DefaultSortDirection
	}
	return c
}
