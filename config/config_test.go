package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "explicit", cfg: Config{ServerHost: "127.0.0.1", ServerPort: 9000}, want: "127.0.0.1:9000"},
		{name: "empty host", cfg: Config{ServerPort: 9000}, want: "0.0.0.0:9000"},
		{name: "empty port", cfg: Config{ServerHost: "localhost"}, want: "localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Addr())
		})
	}
}

func TestConfig_CorsOrigins(t *testing.T) {
	cfg := Config{ServerCorsOrigins: " https://a.example , https://b.example,"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins())

	cfg = Config{}
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins())
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{JWTSecret: "short", JWTExpiresIn: time.Hour}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = strings.Repeat("s", 32)
	assert.NoError(t, cfg.Validate())

	cfg.JWTExpiresIn = 0
	assert.Error(t, cfg.Validate())
}
