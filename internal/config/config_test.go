package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	appErrors "imagetoolbox/internal/errors"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if GetBool(KeySkipUpdateCheck) {
		t.Fatalf("expected default %s to be false", KeySkipUpdateCheck)
	}
	if GetBool(KeyOverwriteFiles) {
		t.Fatalf("expected default %s to be false", KeyOverwriteFiles)
	}
	if got := GetString(KeyOutputFormat); got != "dark" {
		t.Fatalf("expected default %s to be dark, got %q", KeyOutputFormat, got)
	}
	if got := GetInt(KeyRecentLimit); got != DefaultRecentLimit {
		t.Fatalf("expected default %s = %d, got %d", KeyRecentLimit, DefaultRecentLimit, got)
	}
	if got := GetString(KeyRecentPath); !strings.HasSuffix(got, filepath.Join(dirName, recentFile)) {
		t.Fatalf("unexpected default %s: %q", KeyRecentPath, got)
	}
	if got := UpdateTimeout(); got != DefaultUpdateTimeoutSeconds*time.Second {
		t.Fatalf("UpdateTimeout() = %v", got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "photos")
	projectCfg := filepath.Join(projectDir, dirName, fileName)
	writeFile(t, projectCfg, `
output:
  format: light
overwrite-files: true
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
output:
  format: notty
update:
  feed-url: https://example.com/user.atom
overwrite-files: false
`)

	nested := filepath.Join(projectDir, "2024", "may")
	mustMkdir(t, nested)
	if err := Initialize(WithWorkingDir(nested), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyOutputFormat); got != "light" {
		t.Fatalf("expected project config to win for %s, got %q", KeyOutputFormat, got)
	}
	if !GetBool(KeyOverwriteFiles) {
		t.Fatalf("expected project config to set %s", KeyOverwriteFiles)
	}
	if got := GetString(KeyUpdateFeedURL); got != "https://example.com/user.atom" {
		t.Fatalf("expected user feed URL to survive merge, got %q", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, dirName, fileName)
	writeFile(t, projectCfg, `
skip-update-check: false
update:
  timeout-seconds: 9
`)

	t.Setenv("IT_SKIP_UPDATE_CHECK", "true")
	t.Setenv("IT_UPDATE_TIMEOUT_SECONDS", "2")

	if err := Initialize(WithWorkingDir(tmp), WithProjectConfig(projectCfg), WithUserConfig(filepath.Join(tmp, "none.yaml"))); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if !GetBool(KeySkipUpdateCheck) {
		t.Fatalf("expected environment variable to override %s", KeySkipUpdateCheck)
	}
	if got := UpdateTimeout(); got != 2*time.Second {
		t.Fatalf("expected env timeout, got %v", got)
	}

	if err := ApplyOverrides(map[string]any{KeySkipUpdateCheck: false}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if GetBool(KeySkipUpdateCheck) {
		t.Fatalf("expected CLI override to set %s=false", KeySkipUpdateCheck)
	}
}

func TestUpdateTimeoutFallsBack(t *testing.T) {
	cleanup := ResetForTesting(t)
	defer cleanup()

	if err := Set(KeyUpdateTimeoutSeconds, -3); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := UpdateTimeout(); got != DefaultUpdateTimeoutSeconds*time.Second {
		t.Fatalf("UpdateTimeout() = %v, want default", got)
	}
}

func TestDirectoryAsConfigFails(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(tmp)); err == nil {
		t.Fatal("expected error when user config path is a directory")
	}
}

func TestSaveDefaultFormat(t *testing.T) {
	cleanup := ResetForTesting(t)
	defer cleanup()

	target := userConfigPathOverride
	writeFile(t, target, "overwrite-files: true\n")

	if err := SaveDefaultFormat("webp:webp_lossy"); err != nil {
		t.Fatalf("SaveDefaultFormat returned error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "webp:webp_lossy") {
		t.Fatalf("saved config missing format: %s", content)
	}
	if !strings.Contains(content, "overwrite-files: true") {
		t.Fatalf("saved config dropped existing keys: %s", content)
	}
	if got := GetString(KeyFormatDefault); got != "webp:webp_lossy" {
		t.Fatalf("runtime config not updated, got %q", got)
	}
}

func TestMalformedConfigIsConfigurationError(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, "format: [unterminated\n")

	err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg))
	if err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
		t.Fatalf("expected configuration error code, got %v", err)
	}
}

func TestSaveDefaultFormatRejectsBlank(t *testing.T) {
	cleanup := ResetForTesting(t)
	defer cleanup()

	err := SaveDefaultFormat("  ")
	if !appErrors.IsCode(err, appErrors.CodeInvalidFormat) {
		t.Fatalf("expected invalid format error, got %v", err)
	}
	if _, statErr := os.Stat(userConfigPathOverride); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config file to be written, stat err = %v", statErr)
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
