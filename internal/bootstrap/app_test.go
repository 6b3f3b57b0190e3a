package bootstrap

import (
	"testing"

	"cover-merge/internal/shared/config"
)

func TestBuildFillsDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Env = ""
	cfg.CoverTitle = " "

	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if app.Config.Env != "dev" {
		t.Fatalf("expected dev env, got %q", app.Config.Env)
	}
	if app.MergeService.DefaultTitle != "Cover Letter" {
		t.Fatalf("unexpected default title %q", app.MergeService.DefaultTitle)
	}
	if app.Router == nil || app.MergeHandler == nil {
		t.Fatal("expected router and handler")
	}
}

func TestBuildRejectsNegativeUploadLimit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxUploadBytes = -1
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected error")
	}
}
