package config

import "testing"

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("PUBG_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without an API key")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PUBG_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Platform != "steam" {
		t.Errorf("Platform = %q, want steam", cfg.Platform)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if got := cfg.ShardURL(); got != "https://api.pubg.com/shards/steam" {
		t.Errorf("ShardURL = %q", got)
	}
}

func TestLoadClampsRetryBudget(t *testing.T) {
	for _, raw := range []string{"0", "-3"} {
		t.Setenv("PUBG_API_KEY", "test-key")
		t.Setenv("API_MAX_RETRIES", raw)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.MaxRetries != 1 {
			t.Errorf("MaxRetries with API_MAX_RETRIES=%s = %d, want clamped to 1", raw, cfg.MaxRetries)
		}
	}
}
