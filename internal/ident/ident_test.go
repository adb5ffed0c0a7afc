package ident

import (
	"errors"
	"strings"
	"testing"

	"skyfleet/registry/internal/apperr"

	"github.com/google/uuid"
)

func TestParse_Canonical(t *testing.T) {
	want := uuid.New()
	got, err := Parse(want.String())
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", want, err)
	}
	if got != want {
		t.Errorf("Parse returned %s, want %s", got, want)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "not-a-uuid"},
		{"uppercase", strings.ToUpper(uuid.New().String())},
		{"braced", "{" + uuid.New().String() + "}"},
		{"no_hyphens", strings.ReplaceAll(uuid.New().String(), "-", "")},
		{"urn_prefix", "urn:uuid:" + uuid.New().String()},
		{"truncated", uuid.New().String()[:35]},
		{"trailing_space", uuid.New().String() + " "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.in); !errors.Is(err, apperr.ErrInvalidFormat) {
				t.Errorf("Parse(%q) = %v, want ErrInvalidFormat", tc.in, err)
			}
		})
	}
}

func TestParseOptional(t *testing.T) {
	id, err := ParseOptional("")
	if err != nil || id != nil {
		t.Fatalf("ParseOptional(\"\") = %v, %v; want nil, nil", id, err)
	}

	want := uuid.New()
	id, err = ParseOptional(want.String())
	if err != nil {
		t.Fatalf("ParseOptional returned error: %v", err)
	}
	if id == nil || *id != want {
		t.Errorf("ParseOptional returned %v, want %s", id, want)
	}
}

func TestParseAll(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids, err := ParseAll([]string{a.String(), b.String()})
	if err != nil {
		t.Fatalf("ParseAll returned error: %v", err)
	}
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("ParseAll returned %v, want [%s %s]", ids, a, b)
	}

	if _, err := ParseAll([]string{a.String(), "bogus"}); !errors.Is(err, apperr.ErrInvalidFormat) {
		t.Errorf("ParseAll with invalid entry = %v, want ErrInvalidFormat", err)
	}
}
