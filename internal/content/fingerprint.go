package content

import (
	"strings"

	"git.home.luguber.info/inful/docnav/internal/frontmatter"
	"github.com/inful/mdfp"
)

// Frontmatter keys left out of the fingerprint so that bookkeeping updates do
// not change it.
var fingerprintExcludedKeys = []string{mdfp.FingerprintField, "lastmod", "lastModified", "uid", "aliases"}

// ComputeFingerprint returns the mdfp fingerprint of a document from its
// frontmatter fields and body. Fields are serialized canonically with sorted
// keys and LF newlines.
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	forHash := make(map[string]any, len(fields))
	for k, v := range fields {
		forHash[k] = v
	}
	for _, k := range fingerprintExcludedKeys {
		delete(forHash, k)
	}

	serialized := ""
	if len(forHash) > 0 {
		out, err := frontmatter.SerializeYAML(forHash)
		if err != nil {
			return "", err
		}
		serialized = strings.TrimSuffix(string(out), "\n")
	}

	return mdfp.CalculateFingerprintFromParts(serialized, string(body)), nil
}
