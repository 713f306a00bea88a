package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	defer func() { Version, Commit, Date = old[0], old[1], old[2] }()

	Version, Commit, Date = "v0.3.0", "abc1234", "2026-01-02T03:04:05Z"
	if got, want := Template(), "{{.Name}} v0.3.0 (abc1234, 2026-01-02T03:04:05Z)\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if !strings.Contains(String(), "commit: abc1234") {
		t.Errorf("String() = %q", String())
	}
}
