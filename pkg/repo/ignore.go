package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// builtinIgnoredPrefixes are always skipped by the working-tree walker and
// treated as "important" by checkout, regardless of .dignore.
var builtinIgnoredPrefixes = []string{MetaDirName, "target", ".idea", ".mvn"}

// IgnoreMatcher implements the .dignore predicate: comments, exact path
// matches, "dir/" directory prefixes, and "*" wildcard segments rewritten
// with the naive strings.ReplaceAll(pattern, "*", ".*") substitution. No
// "**" or character-class support, matching the spec's deliberately
// unsophisticated grammar.
type IgnoreMatcher struct {
	exact   map[string]bool
	dirs    []string
	regexes []*regexp.Regexp
}

// NewIgnoreMatcher loads .dignore from the repository root, if present.
func NewIgnoreMatcher(rootDir string) *IgnoreMatcher {
	m := &IgnoreMatcher{exact: make(map[string]bool)}

	f, err := os.Open(filepath.Join(rootDir, ".dignore"))
	if err != nil {
		return m
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasSuffix(line, "/"):
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
		case strings.Contains(line, "*"):
			// Deliberately naive: no escaping of other regex metacharacters,
			// matching the source's behavior exactly (spec §4.11 / §9 open
			// question 3). A "." in a pattern matches any character too.
			pattern := "^" + strings.ReplaceAll(line, "*", ".*") + "$"
			if re, err := regexp.Compile(pattern); err == nil {
				m.regexes = append(m.regexes, re)
			}
		default:
			m.exact[line] = true
			// Bare prefixes are also matched as directories (spec §6).
			m.dirs = append(m.dirs, line)
		}
	}
	return m
}

// IsIgnored reports whether a forward-slash repo-relative path should be
// skipped, checking built-in prefixes first and then .dignore rules.
func (m *IgnoreMatcher) IsIgnored(path string) bool {
	path = filepath.ToSlash(path)
	for _, prefix := range builtinIgnoredPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	if m.exact[path] {
		return true
	}
	for _, dir := range m.dirs {
		if path == dir || strings.HasPrefix(path, dir+"/") {
			return true
		}
	}
	for _, re := range m.regexes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// IsImportant reports whether path should be protected from deletion by
// checkout even though it is not tracked: ignored paths, by definition,
// were never under knot's control to begin with.
func (m *IgnoreMatcher) IsImportant(path string) bool {
	return m.IsIgnored(path)
}
