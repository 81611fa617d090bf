package version

import (
	"strings"
	"testing"
)

func TestAccessorsMatchInfo(t *testing.T) {
	v, c, d := Info()
	if v == "" || c == "" || d == "" {
		t.Fatalf("Info() returned empty fields: %q %q %q", v, c, d)
	}

	if got := GetVersion(); got != v {
		t.Errorf("GetVersion() = %q, Info version = %q", got, v)
	}
	if got := GetCommit(); got != c {
		t.Errorf("GetCommit() = %q, Info commit = %q", got, c)
	}
	if got := GetDate(); got != d {
		t.Errorf("GetDate() = %q, Info date = %q", got, d)
	}
}

func TestStringFormat(t *testing.T) {
	s := String()
	for _, part := range []string{"version=", "commit=", "date="} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}
