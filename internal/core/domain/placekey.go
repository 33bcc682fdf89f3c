package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// coordPrecision is the number of decimal places coordinates are rounded
// to before entering a place key. Four decimals is roughly 11 meters at
// the equator, enough to absorb geocoder jitter between two lookups of
// the same address.
const coordPrecision = 4

// NormalizeAddress case-folds an address and collapses internal
// whitespace so that cosmetic differences yield the same place key.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// RoundCoord rounds a coordinate component to the shared precision.
func RoundCoord(v float64) float64 {
	p := math.Pow10(coordPrecision)
	return math.Round(v*p) / p
}

// PlaceKey derives the stable identity of a physical place from its
// normalized address and rounded coordinates. The key is used as a quota
// marker's primary key, so two submissions for the same place always
// collide on it.
func PlaceKey(normalizedAddress string, lat, lng float64) string {
	seed := fmt.Sprintf("%s|%.4f|%.4f", normalizedAddress, RoundCoord(lat), RoundCoord(lng))
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
