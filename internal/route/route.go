// Package route resolves which Notion page a pull request targets.
//
// Routing derives a prefix from the head branch name ("feat/login" -> "feat"),
// looks the prefix up in the page mapping, and canonicalizes the resulting
// page identifier into Notion's dashed form.
package route

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/trm-labs/notionsync/internal/config"
	"github.com/trm-labs/notionsync/internal/faults"
)

// DefaultKey is the reserved mapping key used when a prefix has no entry.
const DefaultKey = "default"

var prefixRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)/`)

// PrefixFromBranch extracts the lowercased routing prefix from a branch name.
// Branches without a "<prefix>/" segment have no prefix and ok is false.
func PrefixFromBranch(branch string) (prefix string, ok bool) {
	m := prefixRe.FindStringSubmatch(branch)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// Resolve returns the page identifier mapped to prefix, falling back to the
// "default" entry. A prefix without a mapping and without a default is a
// configuration error: no destination page can be determined.
func Resolve(mapping config.Mapping, prefix string) (string, error) {
	if prefix != "" {
		if id, ok := mapping[prefix]; ok {
			return id, nil
		}
	}
	if id, ok := mapping[DefaultKey]; ok {
		return id, nil
	}
	name := prefix
	if name == "" {
		name = "(none)"
	}
	return "", &faults.ConfigurationError{
		Reason: fmt.Sprintf("no page mapping for prefix %s and no default page configured", name),
	}
}

// NormalizePageID canonicalizes a Notion page identifier into the dashed
// 8-4-4-4-12 form. The input may be compact or already dashed; anything that
// is not 32 hex characters after stripping hyphens is rejected.
func NormalizePageID(id string) (string, error) {
	clean := strings.ToLower(strings.ReplaceAll(id, "-", ""))
	if len(clean) != 32 {
		return "", &faults.ConfigurationError{
			Reason: fmt.Sprintf("invalid page identifier %q: expected 32 hex characters, got %d", id, len(clean)),
		}
	}
	for _, r := range clean {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", &faults.ConfigurationError{
				Reason: fmt.Sprintf("invalid page identifier %q: non-hex character %q", id, r),
			}
		}
	}
	return clean[0:8] + "-" + clean[8:12] + "-" + clean[12:16] + "-" + clean[16:20] + "-" + clean[20:32], nil
}
