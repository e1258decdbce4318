package qdrant

// DefaultUserPayloadPrefix is the payload key user-defined fields are
// nested under.
const DefaultUserPayloadPrefix = "custom"

// Config controls how filter fields map onto payload keys.
//
// Example:
//
//	cfg := qdrant.DefaultConfig()
//	cfg.UserFields = []string{"document_id", "language"}
//	tr := qdrant.NewTranslator(cfg)
//
// With that configuration a filter on document_id matches the payload key
// custom.document_id, while search_store_id stays at the top level.
type Config struct {
	// UserPayloadPrefix is prepended to every field listed in UserFields.
	//
	// Default: "custom"
	UserPayloadPrefix string `yaml:"user_payload_prefix" envconfig:"QDRANT_USER_PAYLOAD_PREFIX"`

	// UserFields lists the filter fields stored under UserPayloadPrefix.
	// All other fields are internal and addressed at the top level.
	UserFields []string `yaml:"user_fields" envconfig:"QDRANT_USER_FIELDS"`
}

// DefaultConfig treats every field as internal.
func DefaultConfig() Config {
	return Config{UserPayloadPrefix: DefaultUserPayloadPrefix}
}
