package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/like-mike/fastgpt-gateway/shared/models"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = "3000"
	DefaultDatasetBaseURL = "http://xn--pssr82jdve.io/api"
	DefaultShareAuthToken = "fastgpt"
	DefaultShareAuthUID   = "user1"
	DefaultServiceName    = "fastgpt-gateway"
)

// Default returns a configuration with every optional value filled in.
func Default() *models.Config {
	return &models.Config{
		Port:    DefaultPort,
		Dataset: models.UpstreamBinding{BaseURL: DefaultDatasetBaseURL},
		ShareAuth: models.ShareAuthConfig{
			Token: DefaultShareAuthToken,
			UID:   DefaultShareAuthUID,
		},
		Log: models.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: models.TracingConfig{ServiceName: DefaultServiceName},
	}
}

// LoadConfig builds the configuration from an optional YAML file and the
// process environment. Environment variables win over file values.
func LoadConfig(path string) (*models.Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(config)
	normalize(config)

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(config *models.Config) {
	setFromEnv(&config.Port, "PORT")
	setFromEnv(&config.KnowledgeBase.Token, "KNOWLEDGE_BASE_API_KEY")
	setFromEnv(&config.KnowledgeBase.BaseURL, "KNOWLEDGE_BASE_API_URL")
	setFromEnv(&config.App.Token, "APP_API_KEY")
	setFromEnv(&config.App.BaseURL, "APP_API_URL")
	setFromEnv(&config.Dataset.Token, "FASTGPT_API_KEY")
	setFromEnv(&config.Dataset.BaseURL, "BASE_URL")
	setFromEnv(&config.ShareAuth.Token, "SHARE_AUTH_TOKEN")
	setFromEnv(&config.ShareAuth.UID, "SHARE_AUTH_UID")
	setFromEnv(&config.Log.Level, "LOG_LEVEL")
	setFromEnv(&config.Log.Format, "LOG_FORMAT")
	setFromEnv(&config.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setFromEnv(&config.Tracing.ServiceName, "OTEL_SERVICE_NAME")
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func normalize(config *models.Config) {
	for _, b := range []*models.UpstreamBinding{&config.KnowledgeBase, &config.App, &config.Dataset} {
		b.Token = strings.TrimSpace(b.Token)
		b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	}
}

// Validate rejects configurations that can never serve a request: a token
// without a base URL, or a base URL that is not an absolute http(s) URL.
// A binding with no token at all is allowed and reported by Unconfigured.
func Validate(config *models.Config) error {
	if config.Port == "" {
		return fmt.Errorf("port must not be empty")
	}

	bindings := []struct {
		name    string
		binding models.UpstreamBinding
	}{
		{"knowledge_base", config.KnowledgeBase},
		{"app", config.App},
		{"dataset", config.Dataset},
	}
	for _, b := range bindings {
		if b.binding.Token != "" && b.binding.BaseURL == "" {
			return fmt.Errorf("%s: token is set but base_url is empty", b.name)
		}
		if b.binding.BaseURL == "" {
			continue
		}
		u, err := url.Parse(b.binding.BaseURL)
		if err != nil {
			return fmt.Errorf("%s: invalid base_url: %w", b.name, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s: base_url must be an absolute http(s) URL, got %q", b.name, b.binding.BaseURL)
		}
	}
	return nil
}

// Unconfigured lists the bindings that cannot be used because their token or
// base URL is missing.
func Unconfigured(config *models.Config) []string {
	var names []string
	if !config.KnowledgeBase.Configured() {
		names = append(names, "knowledge_base")
	}
	if !config.App.Configured() {
		names = append(names, "app")
	}
	if !config.Dataset.Configured() {
		names = append(names, "dataset")
	}
	return names
}
