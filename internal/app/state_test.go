package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/config"
	"github.com/yanizio/backend-api/internal/environment"
	"github.com/yanizio/backend-api/internal/secrets"
)

func testConfig(env, project string) *config.Config {
	return &config.Config{
		Environment: env,
		ProjectID:   project,
		Log:         config.Log{Level: "INFO"},
		Secrets:     config.Secrets{Backend: config.BackendEnv, EnvPrefix: "SECRET_"},
	}
}

func TestInitWithEnvBackend(t *testing.T) {
	t.Setenv("SECRET_DB_PASSWORD", "local-pw")
	log := zap.NewNop().Sugar()
	cfg := testConfig("qa", "acme-qa")

	acc, closer := NewAccessor(context.Background(), cfg.Secrets, log)
	defer closer.Close()

	st := Init(context.Background(), cfg, acc, log)

	if st.Env.Tier != environment.QA || st.Env.Color != environment.ColorQA {
		t.Errorf("Env = %+v", st.Env)
	}
	if !st.Secrets.Loaded(secrets.DBPassword) {
		t.Errorf("db-password not loaded: %v", st.Secrets.Failure(secrets.DBPassword))
	}
	if st.Secrets.Loaded(secrets.APIKey) {
		t.Error("api-key should be absent")
	}
	if st.LogLevel != "INFO" || st.Started.IsZero() {
		t.Errorf("State = %+v", st)
	}
}

func TestInitWithoutBackend(t *testing.T) {
	log := zap.NewNop().Sugar()
	cfg := testConfig("prod", "acme")
	cfg.Secrets.Backend = config.BackendNone

	acc, closer := NewAccessor(context.Background(), cfg.Secrets, log)
	defer closer.Close()
	if acc != nil {
		t.Fatalf("accessor = %T, want nil for backend none", acc)
	}

	st := Init(context.Background(), cfg, acc, log)
	for _, n := range secrets.Required {
		if !errors.Is(st.Secrets.Failure(n), secrets.ErrClientUnavailable) {
			t.Errorf("%s failure = %v", n, st.Secrets.Failure(n))
		}
	}
}

func TestInitWithoutProject(t *testing.T) {
	t.Setenv("SECRET_DB_PASSWORD", "x")
	log := zap.NewNop().Sugar()
	cfg := testConfig("dev", "")

	acc, closer := NewAccessor(context.Background(), cfg.Secrets, log)
	defer closer.Close()

	st := Init(context.Background(), cfg, acc, log)
	if !errors.Is(st.Secrets.Failure(secrets.DBPassword), secrets.ErrProjectIDMissing) {
		t.Errorf("failure = %v, want ErrProjectIDMissing", st.Secrets.Failure(secrets.DBPassword))
	}
	if st.Env.HasProject() {
		t.Error("HasProject should be false")
	}
}
