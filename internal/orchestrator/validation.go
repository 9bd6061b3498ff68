package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// commitSHARegex matches full SHA-1 and SHA-256 object names
	commitSHARegex = regexp.MustCompile(`^([0-9a-f]{40}|[0-9a-f]{64})$`)
	// forbiddenRefChars are rejected anywhere in a ref name by git
	forbiddenRefChars = " ~^:?*[\\"
)

// ValidateTagName checks a tag name against git's reference naming rules.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("tag name too long: %d characters (max: 255)", len(name))
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("tag name cannot start or end with slash: %s", name)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("tag name cannot start with a dash: %s", name)
	}
	if strings.Contains(name, "..") || strings.Contains(name, "@{") || strings.Contains(name, "//") {
		return fmt.Errorf("tag name contains an invalid sequence: %s", name)
	}
	if strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("tag name cannot end with .lock or a dot: %s", name)
	}
	if strings.ContainsAny(name, forbiddenRefChars) {
		return fmt.Errorf("tag name contains a forbidden character: %s", name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("tag name contains a control character: %q", name)
		}
	}
	return nil
}

// ValidateCommitSHA checks that sha is a full hexadecimal object name.
func ValidateCommitSHA(sha string) error {
	if sha == "" {
		return fmt.Errorf("commit sha cannot be empty")
	}
	if !commitSHARegex.MatchString(sha) {
		return fmt.Errorf("invalid commit sha format: %s", sha)
	}
	return nil
}
