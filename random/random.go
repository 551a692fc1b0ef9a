// Package random produces human-facing random codes such as order
// confirmation numbers.
package random

import (
	crand "crypto/rand"
	"math/big"
	"strings"
)

// unambiguous leaves out characters that are easy to misread (0/O, 1/I).
const unambiguous = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Code returns prefix-XXXX-XXXX style codes built from groups of
// unambiguous upper-case characters.
func Code(prefix string, groups, size int) (string, error) {
	parts := make([]string, 0, groups+1)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for i := 0; i < groups; i++ {
		g, err := fromSet(unambiguous, size)
		if err != nil {
			return "", err
		}
		parts = append(parts, g)
	}
	return strings.Join(parts, "-"), nil
}

func fromSet(set string, length int) (string, error) {
	b := make([]byte, length)
	l := big.NewInt(int64(len(set)))
	for i := range b {
		num, err := crand.Int(crand.Reader, l)
		if err != nil {
			return "", err
		}
		b[i] = set[num.Int64()]
	}
	return string(b), nil
}
