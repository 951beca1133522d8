package candidate

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// IDPattern matches well-formed candidate IDs (BW-YYYY-NNNNN).
var IDPattern = regexp.MustCompile(`^BW-\d{4}-\d{5}$`)

// NewID generates an anonymised candidate ID of the form BW-YYYY-NNNNN,
// with the number drawn uniformly from [0, 99999]. Uniqueness is not
// checked here; the primary-key constraint of the store is the backstop,
// so a collision surfaces as a creation error.
func NewID() string {
	return fmt.Sprintf("BW-%d-%05d", time.Now().Year(), rand.IntN(100000))
}
