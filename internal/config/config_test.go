package config

import (
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOOKSCOPE_DATABASE_URL", "postgres://localhost:5432/hooks")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want default 3000", cfg.Port)
	}
	if cfg.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want default 90", cfg.RetentionDays)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HOOKSCOPE_DATABASE_URL", "postgres://localhost:5432/hooks")
	t.Setenv("HOOKSCOPE_PORT", "8080")
	t.Setenv("HOOKSCOPE_RETENTION_DAYS", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d", cfg.RetentionDays)
	}
}

func TestLoadConfigRequiresDSN(t *testing.T) {
	t.Setenv("HOOKSCOPE_DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing database url")
	}
}

func TestDSNAppliesSSL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "ssl disabled leaves dsn alone",
			cfg:  Config{DatabaseURL: "postgres://h/db"},
			want: "postgres://h/db",
		},
		{
			name: "url dsn gains query param",
			cfg:  Config{DatabaseURL: "postgres://h/db", DatabaseSSL: true},
			want: "postgres://h/db?sslmode=require",
		},
		{
			name: "existing sslmode wins",
			cfg:  Config{DatabaseURL: "postgres://h/db?sslmode=disable", DatabaseSSL: true},
			want: "postgres://h/db?sslmode=disable",
		},
		{
			name: "keyword dsn gains keyword",
			cfg:  Config{DatabaseURL: "host=h dbname=db", DatabaseSSL: true},
			want: "host=h dbname=db sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DSN(); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}

	withQuery := Config{DatabaseURL: "postgres://h/db?a=1", DatabaseSSL: true}
	if got := withQuery.DSN(); !strings.Contains(got, "&sslmode=require") {
		t.Errorf("DSN() = %q, want & separator with existing query", got)
	}
}
