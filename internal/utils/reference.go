package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// refAlphabet omits easily confused characters (0/O, 1/I/L).
const refAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateReference produces a human-facing booking reference such as
// RSV-LX2K9A-4F21.  Crypto randomness is preferred; on failure the
// generator falls back to math/rand, which is acceptable because the
// reference is an identifier, not a secret.
func GenerateReference() string {
	return fmt.Sprintf("RSV-%s-%s", randomRun(6), randomRun(4))
}

func randomRun(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(refAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = refAlphabet[mrand.Intn(len(refAlphabet))]
			continue
		}
		b[i] = refAlphabet[idx.Int64()]
	}
	return string(b)
}
