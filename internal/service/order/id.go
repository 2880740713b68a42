package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const (
	idAlphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idSuffixLength = 9
)

// IDPattern matches identifiers produced by NewID.
var IDPattern = regexp.MustCompile(`^ORDER-\d+-[0-9A-Z]{9}$`)

// NewID returns ORDER-<unix millis>-<9 random base36 characters>.
func NewID(now time.Time) (string, error) {
	suffix := make([]byte, idSuffixLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate order id: %w", err)
		}
		suffix[i] = idAlphabet[n.Int64()]
	}
	return fmt.Sprintf("ORDER-%d-%s", now.UnixMilli(), suffix), nil
}
