package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

var repoNameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ResolveLocator parses a repository locator into owner/name.
//
// Accepted shapes:
//
//	owner/name
//	github.com/owner/name
//	https://github.com/owner/name[.git]
//	git@github.com:owner/name[.git]
func ResolveLocator(locator string) (Identity, error) {
	s := strings.TrimSpace(locator)
	if s == "" {
		return Identity{}, fmt.Errorf("%w: empty locator", ErrInvalidLocator)
	}

	if strings.HasPrefix(s, "git@") {
		// git@github.com:owner/name.git
		_, after, found := strings.Cut(s, ":")
		if !found {
			return Identity{}, fmt.Errorf("%w: %q", ErrInvalidLocator, locator)
		}
		s = after
	} else {
		s = strings.TrimPrefix(s, "https://")
		s = strings.TrimPrefix(s, "http://")
		s = strings.TrimPrefix(s, "github.com/")
	}
	s = strings.TrimSuffix(s, ".git")
	s = strings.Trim(s, "/")

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidLocator, locator)
	}
	owner, name := parts[0], parts[1]
	if !repoNameRe.MatchString(owner) || !repoNameRe.MatchString(name) {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidLocator, locator)
	}
	return Identity{Owner: owner, Name: name}, nil
}
