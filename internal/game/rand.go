package game

import (
	"crypto/rand"
	"math/big"
)

// cryptoIntn returns a uniform random int in [0, n) using crypto/rand,
// for the one-off first-hand dealer pick (see StartHand). Everything
// shuffle-related otherwise goes through pokerengine.NewShuffledDeck.
func cryptoIntn(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
