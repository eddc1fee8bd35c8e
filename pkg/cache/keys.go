package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex SHA-256 of a matrix input. Inputs with identical bytes
// share one cached analysis.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// analysisKey lays out "analysis:<registry>:<version>:<input hash>".
// Empty parts are written as "-" and colons inside a part as "_", so the key
// always splits into four fields after the kind.
func analysisKey(inputHash string, opts AnalysisKeyOpts) string {
	return strings.Join([]string{
		"analysis",
		keyPart(opts.Registry),
		keyPart(opts.Version),
		keyPart(inputHash),
	}, ":")
}

func keyPart(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, ":", "_")
}
