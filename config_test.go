package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "client.yaml", `
base_url: https://api.example.com
timeout: 20s
headers:
  X-App-Version: "1.4.0"
endpoints:
  login: /v2/auth/login
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, "/v2/auth/login", cfg.Endpoints.Login)
	assert.Equal(t, DefaultEndpoints().Client, cfg.Endpoints.Client)
	assert.Equal(t, "1.4.0", cfg.Headers["x-app-version"])
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("MERCHANT_API_BASE_URL", "https://staging.example.com")
	t.Setenv("MERCHANT_API_TIMEOUT", "30s")
	t.Setenv("MERCHANT_API_ENDPOINTS_MERCHANT_ID", "/merchants/{id}")

	path := writeFile(t, "client.yaml", "base_url: https://api.example.com\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "/merchants/{id}", cfg.Endpoints.MerchantID)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "MERCHANT_API_BASE_URL=https://dotenv.example.com\n")
	t.Cleanup(func() { _ = os.Unsetenv("MERCHANT_API_BASE_URL") })

	cfg, err := LoadConfig("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "https://dotenv.example.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultEndpoints(), cfg.Endpoints)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing base url", "timeout: 10s\n", "BaseURL"},
		{"invalid base url", "base_url: not a url\n", "BaseURL"},
		{"timeout too short", "base_url: https://api.example.com\ntimeout: 10ms\n", "Timeout"},
		{"endpoint without placeholder", "base_url: https://api.example.com\nendpoints:\n  client: /clients\n", "client endpoint must contain {id}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(writeFile(t, "client.yaml", tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		BaseURL:   "https://api.example.com",
		Timeout:   20 * time.Second,
		Headers:   map[string]string{"X-App-Version": "1.4.0", "Accept": "text/plain"},
		Endpoints: Endpoints{Login: "/v2/auth/login"},
	}

	client := NewFromConfig(cfg, WithTokenProvider(NewSession()))

	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.Equal(t, 20*time.Second, client.options.timeout)
	assert.Equal(t, "1.4.0", client.options.requestHeaders["X-App-Version"])
	assert.Equal(t, "application/json", client.options.requestHeaders["Accept"])
	assert.Equal(t, "/v2/auth/login", client.options.endpoints.Login)
	assert.Equal(t, DefaultEndpoints().MerchantID, client.options.endpoints.MerchantID)
	assert.NotNil(t, client.options.tokenProvider)
	require.NoError(t, client.Connect(context.Background()))
}
