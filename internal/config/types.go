package config

import (
	"fmt"
	"strings"
)

// Repo identifies a GitHub repository as "owner/name".
type Repo struct {
	Owner string // GitHub organisation or user
	Name  string // Repository name
}

// ParseRepo parses "owner/name" into a Repo.
// A trailing ".git" on the name is dropped.
func ParseRepo(raw string) (Repo, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("invalid repository %q: must be owner/name (e.g. component/tip)", raw)
	}

	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return Repo{}, fmt.Errorf("invalid repository %q: empty name", raw)
	}

	return Repo{Owner: parts[0], Name: name}, nil
}

// FullName returns "owner/name".
func (r Repo) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

func (r Repo) String() string {
	return r.FullName()
}
