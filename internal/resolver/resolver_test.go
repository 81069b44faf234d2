package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/github"
	"github.com/cbout22/ghrefs/internal/refs"
	"github.com/cbout22/ghrefs/internal/semver"
)

// fakeSource implements RefSource from a fixed list of raw ref paths.
type fakeSource struct {
	raw   []string
	err   error
	calls int
}

var _ RefSource = (*fakeSource)(nil)
var _ RefSource = (*github.Client)(nil)

func (f *fakeSource) Refs(ctx context.Context, repo config.Repo) ([]refs.Reference, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []refs.Reference
	for i, r := range f.raw {
		if ref, ok := refs.Parse(r, string(rune('a'+i))); ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

var repo = config.Repo{Owner: "component", Name: "tip"}

func TestResolve(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		raw        []string
		constraint string
		wantKind   refs.Kind
		wantName   string
		wantSHA    string
	}{
		{
			name:       "range picks matching tag",
			raw:        []string{"refs/tags/1.0.0", "refs/tags/2.0.0"},
			constraint: "1.x",
			wantKind:   refs.Tag,
			wantName:   "1.0.0",
		},
		{
			name:       "first match from the newest end wins",
			raw:        []string{"refs/tags/1.0.0", "refs/tags/1.2.0", "refs/tags/1.1.0"},
			constraint: "^1.0.0",
			wantKind:   refs.Tag,
			wantName:   "1.1.0",
		},
		{
			name:       "exact version",
			raw:        []string{"refs/tags/1.0.0", "refs/tags/2.0.0", "refs/heads/main"},
			constraint: "2.0.0",
			wantKind:   refs.Tag,
			wantName:   "2.0.0",
			wantSHA:    "b",
		},
		{
			name:       "v-prefixed tags",
			raw:        []string{"refs/tags/v0.9.0", "refs/tags/v1.3.0"},
			constraint: "~1.3",
			wantKind:   refs.Tag,
			wantName:   "v1.3.0",
		},
		{
			name:       "branch name when no tag matches",
			raw:        []string{"refs/heads/main", "refs/heads/dev", "refs/tags/1.0.0"},
			constraint: "dev",
			wantKind:   refs.Branch,
			wantName:   "dev",
			wantSHA:    "b",
		},
		{
			name:       "range falls back to an identically named branch",
			raw:        []string{"refs/tags/1.0.0", "refs/heads/2.0"},
			constraint: "2.0",
			wantKind:   refs.Branch,
			wantName:   "2.0",
		},
		{
			name:       "non-version tags are skipped",
			raw:        []string{"refs/tags/1.0.0", "refs/tags/nightly"},
			constraint: "*",
			wantKind:   refs.Tag,
			wantName:   "1.0.0",
		},
		{
			name:       "prerelease of a different version is skipped",
			raw:        []string{"refs/tags/1.0.0-beta.2", "refs/tags/1.4.0-alpha"},
			constraint: ">=1.0.0-beta.1",
			wantKind:   refs.Tag,
			wantName:   "1.0.0-beta.2",
		},
		{
			name:       "other ref namespaces ignored",
			raw:        []string{"refs/pull/3/head", "refs/heads/feature/x"},
			constraint: "feature/x",
			wantKind:   refs.Branch,
			wantName:   "feature/x",
		},
	}
	for _, tc := range cases {
		src := &fakeSource{raw: tc.raw}
		got, err := New(src).Resolve(context.Background(), repo, tc.constraint)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got == nil {
			t.Errorf("%s: got nil, want %v %s", tc.name, tc.wantKind, tc.wantName)
			continue
		}
		if got.Kind != tc.wantKind || got.Name != tc.wantName {
			t.Errorf("%s: got %v, want %v %s", tc.name, got, tc.wantKind, tc.wantName)
		}
		if tc.wantSHA != "" && got.SHA != tc.wantSHA {
			t.Errorf("%s: SHA = %q, want %q", tc.name, got.SHA, tc.wantSHA)
		}
		if src.calls != 1 {
			t.Errorf("%s: source called %d times, want 1", tc.name, src.calls)
		}
	}
}

func TestResolve_NoMatch(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		raw        []string
		constraint string
	}{
		{"no refs", nil, "1.x"},
		{"range unsatisfied", []string{"refs/tags/1.0.0", "refs/heads/main"}, "3.x"},
		{"unknown branch", []string{"refs/tags/1.0.0", "refs/heads/main"}, "develop"},
		{"prerelease excluded", []string{"refs/tags/2.0.0-rc.1"}, "2.x"},
		{"prerelease needs same version in range", []string{"refs/tags/1.5.0-rc.1"}, ">=1.0.0-beta"},
	}
	for _, tc := range cases {
		got, err := New(&fakeSource{raw: tc.raw}).Resolve(context.Background(), repo, tc.constraint)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if got != nil {
			t.Errorf("%s: got %v, want nil", tc.name, got)
		}
	}
}

func TestResolve_MalformedConstraintSkipsBranches(t *testing.T) {
	t.Parallel()

	src := &fakeSource{raw: []string{"refs/tags/1.0.0", "refs/heads/>=1.0 <<2"}}
	got, err := New(src).Resolve(context.Background(), repo, ">=1.0 <<2")
	if err == nil {
		t.Fatalf("Resolve: expected ParseError, got %v", got)
	}
	if !semver.IsParseError(err) {
		t.Errorf("Resolve: error %T is not a *semver.ParseError", err)
	}
	if got != nil {
		t.Errorf("Resolve: got %v alongside error", got)
	}
}

func TestResolve_VersionTypoIsParseError(t *testing.T) {
	t.Parallel()

	src := &fakeSource{raw: []string{"refs/heads/1.2.3.4"}}
	got, err := New(src).Resolve(context.Background(), repo, "1.2.3.4")
	if !semver.IsParseError(err) {
		t.Fatalf("Resolve: got (%v, %v), want *semver.ParseError", got, err)
	}
}

func TestResolve_SourceErrorPropagates(t *testing.T) {
	t.Parallel()

	rl := &github.RateLimitError{Limit: 60}
	_, err := New(&fakeSource{err: rl}).Resolve(context.Background(), repo, "1.x")
	if !errors.Is(err, rl) {
		t.Errorf("Resolve: got %v, want the source's error", err)
	}
	if !github.IsRateLimit(err) {
		t.Error("IsRateLimit() = false")
	}
}
