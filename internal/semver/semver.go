package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	v *mm.Version
}

// Constraint is what a caller asks a repository for.
//
// It is either a semver range or, when the string is not a range but is a
// legal branch name, a literal that no version satisfies.
//
// Examples:
// - "1.x"
// - ">=1.2.0 <2.0.0"
// - "^1.0.0"
// - "main"
type Constraint struct {
	raw  string
	c    *mm.Constraints
	sets []comparatorSet
}

// comparatorSet is one "||" alternative of a range.
type comparatorSet struct {
	c *mm.Constraints
	// pre holds the comparator versions that carry a prerelease.
	pre []*mm.Version
}

// ParseError reports a constraint that is neither a valid range nor a
// branch name.
type ParseError struct {
	Constraint string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("semver: parse constraint %q: %v", e.Constraint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ParseVersion parses a tag name as a version. A leading "v", "=" or "=v"
// is accepted; the rest must be strict MAJOR.MINOR.PATCH[-pre][+build].
func ParseVersion(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimPrefix(s, "v")
	v, err := mm.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseConstraint parses raw as a range, falling back to a branch literal.
// It fails with *ParseError only when raw is neither.
func ParseConstraint(raw string) (Constraint, error) {
	if strings.TrimSpace(raw) == "" {
		return Constraint{}, &ParseError{Constraint: raw, Err: errors.New("empty constraint")}
	}

	c, err := mm.NewConstraint(raw)
	if err == nil {
		sets, err := parseSets(raw)
		if err != nil {
			return Constraint{}, &ParseError{Constraint: raw, Err: err}
		}
		return Constraint{raw: raw, c: c, sets: sets}, nil
	}
	if IsBranchName(raw) && !versionLike.MatchString(raw) {
		return Constraint{raw: raw}, nil
	}
	return Constraint{}, &ParseError{Constraint: raw, Err: err}
}

// versionLike matches strings that start like a version number. One that
// fails to parse as a range is a typo, not a branch.
var versionLike = regexp.MustCompile(`^v?[0-9]+\.`)

// prereleaseVersion finds comparator versions with a prerelease tag.
var prereleaseVersion = regexp.MustCompile(`v?[0-9]+\.[0-9]+\.[0-9]+-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*`)

func parseSets(raw string) ([]comparatorSet, error) {
	parts := strings.Split(raw, "||")
	sets := make([]comparatorSet, 0, len(parts))
	for _, part := range parts {
		c, err := mm.NewConstraint(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		set := comparatorSet{c: c}
		for _, m := range prereleaseVersion.FindAllString(part, -1) {
			if v, err := mm.NewVersion(m); err == nil {
				set.pre = append(set.pre, v)
			}
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// allowsPrerelease reports whether a comparator in the set names a
// prerelease of the same MAJOR.MINOR.PATCH as v.
func (s comparatorSet) allowsPrerelease(v *mm.Version) bool {
	for _, p := range s.pre {
		if p.Major() == v.Major() && p.Minor() == v.Minor() && p.Patch() == v.Patch() {
			return true
		}
	}
	return false
}

func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// IsRange reports whether the constraint is a semver range rather than a
// branch literal.
func (c Constraint) IsRange() bool {
	return c.c != nil
}

func (c Constraint) String() string {
	return c.raw
}

// Satisfies reports whether v is in range c. A prerelease version only
// matches a comparator set that names a prerelease of the same
// MAJOR.MINOR.PATCH, so ">=1.0.0-beta" admits 1.0.0-rc.1 but not
// 1.5.0-rc.1.
func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	if v.v.Prerelease() == "" {
		return c.c.Check(v.v)
	}
	for _, s := range c.sets {
		if s.allowsPrerelease(v.v) && s.c.Check(v.v) {
			return true
		}
	}
	return false
}

// SatisfiesTag reports whether the tag name parses as a version that
// satisfies c. Tags that are not versions never match.
func SatisfiesTag(tag string, c Constraint) bool {
	if !c.IsRange() {
		return false
	}
	v, err := ParseVersion(tag)
	if err != nil {
		return false
	}
	return Satisfies(v, c)
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// rangeChars never appear in a branch literal; a string that fails to parse
// as a range and contains one of them is a malformed range.
const rangeChars = "<>=~^*|,!?[\\: \t\n"

// IsBranchName reports whether s is a legal git branch name that carries no
// range syntax.
func IsBranchName(s string) bool {
	if s == "" || strings.ContainsAny(s, rangeChars) {
		return false
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") {
		return false
	}
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, ".") || strings.HasSuffix(s, ".lock") {
		return false
	}
	if strings.Contains(s, "..") || strings.Contains(s, "@{") || strings.Contains(s, "//") || strings.Contains(s, "/.") {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
