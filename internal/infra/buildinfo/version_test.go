package buildinfo

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func TestGet_MirrorsLinkVars(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.Commit != Commit {
		t.Errorf("Commit = %q, want %q", info.Commit, Commit)
	}
	if info.BuildTime != BuildTime {
		t.Errorf("BuildTime = %q, want %q", info.BuildTime, BuildTime)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestString_OneLineForm(t *testing.T) {
	s := String()

	for _, part := range []string{Version, "commit: " + Commit, "built: " + BuildTime} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}

func TestInfo_JSONShape(t *testing.T) {
	data, err := json.Marshal(Get())
	if err != nil {
		t.Fatalf("marshal Info: %v", err)
	}

	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal Info: %v", err)
	}

	for _, key := range []string{"version", "commit", "build_time", "go_version"} {
		if fields[key] == "" {
			t.Errorf("JSON field %q empty or missing in %s", key, data)
		}
	}
}
