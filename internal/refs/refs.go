// Package refs models git references returned by the GitHub API.
package refs

import (
	"fmt"
	"strings"
)

const (
	tagPrefix    = "refs/tags/"
	branchPrefix = "refs/heads/"
)

// Kind distinguishes tags from branches.
type Kind int

const (
	Tag Kind = iota + 1
	Branch
)

func (k Kind) String() string {
	switch k {
	case Tag:
		return "tag"
	case Branch:
		return "branch"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Reference is a named pointer to a commit.
type Reference struct {
	Kind Kind
	Name string // short name, e.g. "1.0.0" or "main"
	SHA  string // target object id, opaque
	Ref  string // full ref path, e.g. "refs/tags/1.0.0"
}

// Parse classifies a full ref path. ok is false for anything that is neither
// a tag nor a branch (pull request heads, notes, stashes, ...).
func Parse(raw, sha string) (ref Reference, ok bool) {
	switch {
	case strings.HasPrefix(raw, tagPrefix) && len(raw) > len(tagPrefix):
		return Reference{Kind: Tag, Name: raw[len(tagPrefix):], SHA: sha, Ref: raw}, true
	case strings.HasPrefix(raw, branchPrefix) && len(raw) > len(branchPrefix):
		return Reference{Kind: Branch, Name: raw[len(branchPrefix):], SHA: sha, Ref: raw}, true
	}
	return Reference{}, false
}

// Partition splits refs into tags and branches, preserving input order.
func Partition(all []Reference) (tags, branches []Reference) {
	for _, r := range all {
		switch r.Kind {
		case Tag:
			tags = append(tags, r)
		case Branch:
			branches = append(branches, r)
		}
	}
	return tags, branches
}

// Reverse returns a reversed copy of refs.
func Reverse(in []Reference) []Reference {
	out := make([]Reference, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}

// ShortSHA returns the first seven characters of the target id.
func (r Reference) ShortSHA() string {
	if len(r.SHA) > 7 {
		return r.SHA[:7]
	}
	return r.SHA
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %s", r.Kind, r.Name)
}
