// Package version extracts versions from tool output and evaluates
// constraints against them.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionRegex matches version patterns like 1.2.3, v1.2, 18, etc.
var versionRegex = regexp.MustCompile(`v?\d+(?:\.\d+)?(?:\.\d+)?`)

// Extract finds and parses the first version number in a string,
// such as the output of `node --version`.
func Extract(s string) (*semver.Version, error) {
	match := versionRegex.FindString(s)
	if match == "" {
		return nil, fmt.Errorf("no version found in: %q", strings.TrimSpace(s))
	}
	return semver.NewVersion(match)
}

// ParseConstraint parses a constraint like ">=18" or "^3.0". An empty
// string yields a nil constraint and no error.
func ParseConstraint(s string) (*semver.Constraints, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", s, err)
	}
	return c, nil
}
