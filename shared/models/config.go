package models

// Config represents the gateway configuration
type Config struct {
	Port          string          `yaml:"port"`
	KnowledgeBase UpstreamBinding `yaml:"knowledge_base"`
	App           UpstreamBinding `yaml:"app"`
	Dataset       UpstreamBinding `yaml:"dataset"`
	ShareAuth     ShareAuthConfig `yaml:"share_auth"`
	Log           LogConfig       `yaml:"log"`
	Tracing       TracingConfig   `yaml:"tracing"`
}

// UpstreamBinding is a bearer token and the base URL it is valid for
type UpstreamBinding struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

// Configured reports whether both halves of the binding are present.
func (b UpstreamBinding) Configured() bool {
	return b.Token != "" && b.BaseURL != ""
}

// ShareAuthConfig configures the share-link authentication stubs
type ShareAuthConfig struct {
	Token string `yaml:"token"`
	UID   string `yaml:"uid"`
}

// LogConfig selects level and encoding for the zap logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig configures the OTLP exporter. An empty endpoint disables export.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}
