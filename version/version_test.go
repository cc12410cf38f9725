package version

import (
	"runtime/debug"
	"strings"
	"testing"
	"time"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBranch, origBuildTime, origGoVersion :=
		Version, GitCommit, GitBranch, BuildTime, GoVersion
	return func() {
		Version = origVersion
		GitCommit = origCommit
		GitBranch = origBranch
		BuildTime = origBuildTime
		GoVersion = origGoVersion
	}
}

func TestGetVersionInfoDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, GitBranch, BuildTime, GoVersion = "dev", "", "", "", ""

	info := GetVersionInfo()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
	if info.BuildDate.IsZero() {
		t.Error("BuildDate should not be zero")
	}
}

func TestFromLinkerFlags(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit, GitBranch, BuildTime, GoVersion = "1.0.0", "abc1234", "main", "2024-01-15T10:30:00Z", "go1.26.0"

	info := fromLinkerFlags()
	if !info.IsRelease {
		t.Error("expected release")
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if !info.BuildDate.Equal(want) {
		t.Errorf("BuildDate: got %v", info.BuildDate)
	}
}

func TestApplyBuildInfo(t *testing.T) {
	info := &Info{Version: "dev"}
	info.applyBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.26.0",
		Main:      debug.Module{Path: "github.com/kbukum/linqkit"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2025-03-01T00:00:00Z"},
		},
	})
	if info.Module != "github.com/kbukum/linqkit" || info.GoVersion != "go1.26.0" {
		t.Errorf("got %+v", info)
	}
	if info.GitCommit != "0123456" || !info.IsDirty || info.BuildTime != "2025-03-01T00:00:00Z" {
		t.Errorf("vcs settings not applied: %+v", info)
	}
}

func TestApplyBuildInfo_LinkerFlagsWin(t *testing.T) {
	info := &Info{Version: "1.0.0", GitCommit: "fixed", GoVersion: "go1.0"}
	info.applyBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}},
	})
	if info.GitCommit != "fixed" || info.GoVersion != "go1.0" {
		t.Errorf("got %+v", info)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "1.0.0"}, "1.0.0"},
		{Info{Version: "1.0.0", GitCommit: "abc"}, "1.0.0-abc"},
		{Info{Version: "1.0.0", GitCommit: "abc", IsDirty: true}, "1.0.0-abc-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestFull(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		GitCommit: "abc",
		GitBranch: "feature",
		IsDirty:   true,
		BuildDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	want := "1.0.0-abc-feature-dirty (built 2024-01-15T10:30:00Z)"
	if got := info.Full(); got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
	info.GitBranch = "main"
	if got := info.Full(); strings.Contains(got, "main") {
		t.Errorf("main branch should be omitted: %q", got)
	}
}

func TestFields(t *testing.T) {
	f := (&Info{Version: "1.0.0", GoVersion: "go1.26.0"}).Fields()
	if f["version"] != "1.0.0" || f["go_version"] != "go1.26.0" {
		t.Errorf("got %v", f)
	}
	if _, ok := f["git_commit"]; ok {
		t.Error("empty commit should be omitted")
	}
}

func TestGetShortAndFullVersion(t *testing.T) {
	defer saveAndRestore()()
	Version, GitCommit = "2.0.0", "deadbee"
	if got := GetShortVersion(); !strings.HasPrefix(got, "2.0.0-deadbee") {
		t.Errorf("got %q", got)
	}
	if got := GetFullVersion(); !strings.HasPrefix(got, "2.0.0-deadbee") {
		t.Errorf("got %q", got)
	}
}
