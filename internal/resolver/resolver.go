// Package resolver maps a version constraint to a concrete tag or branch.
package resolver

import (
	"context"

	"github.com/cbout22/ghrefs/internal/config"
	"github.com/cbout22/ghrefs/internal/refs"
	"github.com/cbout22/ghrefs/internal/semver"
)

// Resolver turns a constraint into the reference that serves it.
type Resolver struct {
	source RefSource
}

// New creates a Resolver backed by source.
func New(source RefSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the reference in repo that matches constraint, or nil if
// nothing does.
//
// Tags are scanned newest first and the first one whose name satisfies the
// constraint wins; there is no best-match search. Only when no tag matches
// is a branch with exactly the constraint's name considered. A constraint
// that is neither a range nor a branch name fails with *semver.ParseError
// before any branch is considered.
func (r *Resolver) Resolve(ctx context.Context, repo config.Repo, constraint string) (*refs.Reference, error) {
	all, err := r.source.Refs(ctx, repo)
	if err != nil {
		return nil, err
	}

	tags, branches := refs.Partition(all)

	c, err := semver.ParseConstraint(constraint)
	if err != nil {
		return nil, err
	}

	if tag := findTag(refs.Reverse(tags), c); tag != nil {
		return tag, nil
	}
	return findBranch(branches, constraint), nil
}

func findTag(tags []refs.Reference, c semver.Constraint) *refs.Reference {
	for i := range tags {
		if semver.SatisfiesTag(tags[i].Name, c) {
			return &tags[i]
		}
	}
	return nil
}

func findBranch(branches []refs.Reference, name string) *refs.Reference {
	for i := range branches {
		if branches[i].Name == name {
			return &branches[i]
		}
	}
	return nil
}
