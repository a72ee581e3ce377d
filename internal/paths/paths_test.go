package paths

import (
	"path/filepath"
	"testing"
)

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Setenv(EnvConfigDir, "/env/config")

	got, err := ResolveConfigDir("/flag/config")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if got != "/flag/config" {
		t.Errorf("flag lost to env: %s", got)
	}

	got, err = ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if got != "/env/config" {
		t.Errorf("env not used: %s", got)
	}
}

func TestResolveConfigDirDefaultsXDG(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	got, err := ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	// Only meaningful on linux; elsewhere the platform default applies.
	if filepath.Base(got) != "larder" {
		t.Errorf("default config dir not named larder: %s", got)
	}
}

func TestResolveConfigDirHomeFallback(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "")

	orig := platformDir
	t.Cleanup(func() { platformDir = orig })
	platformDir.homeDir = func() (string, error) { return "/home/ada", nil }
	platformDir.userConfigDir = func() (string, error) { return "/home/ada/.config", nil }

	got, err := ResolveConfigDir("")
	if err != nil {
		t.Fatalf("ResolveConfigDir failed: %v", err)
	}
	if filepath.Base(got) != "larder" {
		t.Errorf("fallback config dir not named larder: %s", got)
	}
}

func TestResolveDataDirPrecedence(t *testing.T) {
	t.Setenv(EnvDataDir, "/env/data")

	got, err := ResolveDataDir("/flag/data", "/config/data")
	if err != nil {
		t.Fatalf("ResolveDataDir failed: %v", err)
	}
	if got != "/flag/data" {
		t.Errorf("flag lost: %s", got)
	}

	got, _ = ResolveDataDir("", "/config/data")
	if got != "/config/data" {
		t.Errorf("config value lost to env: %s", got)
	}

	got, _ = ResolveDataDir("", "")
	if got != "/env/data" {
		t.Errorf("env not used: %s", got)
	}
}

func TestResolveDataDirDefaultsToCWD(t *testing.T) {
	t.Setenv(EnvDataDir, "")

	got, err := ResolveDataDir("", "")
	if err != nil {
		t.Fatalf("ResolveDataDir failed: %v", err)
	}
	if filepath.Base(got) != DefaultDataDirName {
		t.Errorf("default data dir = %s, want CWD/%s", got, DefaultDataDirName)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("default data dir not absolute: %s", got)
	}
}

func TestResolveDirsReturnAbsolutePaths(t *testing.T) {
	got, err := ResolveDataDir("relative/dir", "")
	if err != nil {
		t.Fatalf("ResolveDataDir failed: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("relative flag not made absolute: %s", got)
	}
}
