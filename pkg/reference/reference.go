// Package reference generates human-shareable booking references.
package reference

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const randomChars = 4

// base36^4 possible suffixes
var randomSpace = big.NewInt(36 * 36 * 36 * 36)

// Generate produces a reference of the form {PREFIX}-{base36 ms timestamp}-{4 base36 chars},
// all uppercase. References are shareable identifiers, not cryptographic tokens:
// the 4-character suffix leaves a real collision probability within the same
// millisecond and storage does not enforce uniqueness, so lookups by reference
// return every match.
func Generate(prefix string) (string, error) {
	return generateAt(prefix, time.Now())
}

func generateAt(prefix string, now time.Time) (string, error) {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	n, err := rand.Int(rand.Reader, randomSpace)
	if err != nil {
		return "", fmt.Errorf("failed to draw random suffix: %w", err)
	}

	suffix := strings.ToUpper(strconv.FormatInt(n.Int64(), 36))
	for len(suffix) < randomChars {
		suffix = "0" + suffix
	}

	return strings.ToUpper(prefix) + "-" + ts + "-" + suffix, nil
}
