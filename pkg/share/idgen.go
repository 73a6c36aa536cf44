package share

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

// IDLength is the number of hex characters kept from the digest (48 bits).
const IDLength = 12

// IdentifierGenerator mints candidate share ids. attempt is 0 for the first
// candidate and grows on every collision retry.
type IdentifierGenerator interface {
	Generate(url string, attempt int) string
}

// DigestGenerator derives ids from md5(url + creation time in nanoseconds).
// Candidates are not guaranteed unique; the registry re-checks on insert.
type DigestGenerator struct {
	Now func() time.Time
}

func NewDigestGenerator() DigestGenerator {
	return DigestGenerator{Now: time.Now}
}

func (g DigestGenerator) Generate(url string, attempt int) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	seed := url + strconv.FormatInt(now().UnixNano(), 10)
	if attempt > 0 {
		seed += "#" + strconv.Itoa(attempt)
	}
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])[:IDLength]
}
