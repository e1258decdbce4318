package tracer

// Config defines the tracer configuration.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is recorded as the deployment environment.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport turns on the OTLP/HTTP exporter. When false spans are
	// created and propagated but never leave the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the exporter URL, e.g. http://collector:4318/v1/traces.
	// When empty the standard OTEL_EXPORTER_OTLP_* variables apply.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`
}
