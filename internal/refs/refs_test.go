package refs

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw      string
		wantOK   bool
		wantKind Kind
		wantName string
	}{
		{"refs/tags/1.0.0", true, Tag, "1.0.0"},
		{"refs/tags/v2.1.0-beta.1", true, Tag, "v2.1.0-beta.1"},
		{"refs/heads/main", true, Branch, "main"},
		{"refs/heads/feature/login", true, Branch, "feature/login"},
		{"refs/pull/12/head", false, 0, ""},
		{"refs/notes/commits", false, 0, ""},
		{"refs/tags/", false, 0, ""},
		{"main", false, 0, ""},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.raw, "abc")
		if ok != tc.wantOK {
			t.Errorf("Parse(%q): ok = %v, want %v", tc.raw, ok, tc.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got.Kind != tc.wantKind || got.Name != tc.wantName {
			t.Errorf("Parse(%q) = %v %q, want %v %q", tc.raw, got.Kind, got.Name, tc.wantKind, tc.wantName)
		}
		if got.SHA != "abc" || got.Ref != tc.raw {
			t.Errorf("Parse(%q): SHA/Ref not carried through: %+v", tc.raw, got)
		}
	}
}

func TestPartition_PreservesOrder(t *testing.T) {
	t.Parallel()

	all := []Reference{
		{Kind: Branch, Name: "main"},
		{Kind: Tag, Name: "1.0.0"},
		{Kind: Branch, Name: "dev"},
		{Kind: Tag, Name: "2.0.0"},
	}
	tags, branches := Partition(all)

	if len(tags) != 2 || tags[0].Name != "1.0.0" || tags[1].Name != "2.0.0" {
		t.Errorf("tags = %v", tags)
	}
	if len(branches) != 2 || branches[0].Name != "main" || branches[1].Name != "dev" {
		t.Errorf("branches = %v", branches)
	}
}

func TestReverse_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []Reference{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	out := Reverse(in)

	if out[0].Name != "c" || out[1].Name != "b" || out[2].Name != "a" {
		t.Errorf("Reverse = %v", out)
	}
	if in[0].Name != "a" {
		t.Error("Reverse mutated its input")
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()
	if Tag.String() != "tag" || Branch.String() != "branch" {
		t.Errorf("Kind strings = %q, %q", Tag, Branch)
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("Kind(9).String() = %q", got)
	}
}

func TestShortSHA(t *testing.T) {
	t.Parallel()
	r := Reference{SHA: "0123456789abcdef"}
	if got := r.ShortSHA(); got != "0123456" {
		t.Errorf("ShortSHA() = %q", got)
	}
	if got := (Reference{SHA: "abc"}).ShortSHA(); got != "abc" {
		t.Errorf("ShortSHA(short) = %q", got)
	}
}
