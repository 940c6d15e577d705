package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port != 20318 {
		t.Fatalf("port: %d", cfg.Server.Port)
	}
	if cfg.Registry.BaseURL == "" {
		t.Fatalf("registry base url 不应为空")
	}
	if cfg.Assist.BaseURL != "" {
		t.Fatalf("辅助服务默认应禁用")
	}
	if cfg.Import.SessionTTLMinutes != 60 || cfg.Import.MaxUploadMB != 50 {
		t.Fatalf("import config: %+v", cfg.Import)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NETINV_PORT", "9999")
	t.Setenv("NETINV_REGISTRY_URL", "http://registry:8080/api")
	t.Setenv("NETINV_ASSIST_URL", "http://assist:9000")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9999 {
		t.Fatalf("port: %d", cfg.Server.Port)
	}
	if cfg.Registry.BaseURL != "http://registry:8080/api" {
		t.Fatalf("registry: %q", cfg.Registry.BaseURL)
	}
	if cfg.Assist.BaseURL != "http://assist:9000" {
		t.Fatalf("assist: %q", cfg.Assist.BaseURL)
	}
}

func TestApplyEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("NETINV_PORT", "not-a-number")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 20318 {
		t.Fatalf("非法端口应被忽略, got %d", cfg.Server.Port)
	}
}
