package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12 Crescent Road, Leeds", "12 crescent road, leeds"},
		{"  12  Crescent   ROAD, Leeds ", "12 crescent road, leeds"},
		{"12\tCrescent\nRoad, Leeds", "12 crescent road, leeds"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeAddress(c.in))
	}
}

func TestPlaceKeyAbsorbsGeocoderJitter(t *testing.T) {
	// Differences past the fourth decimal (~11m) collapse to one key.
	a := PlaceKey("12 crescent road, leeds", 53.799712, -1.549311)
	b := PlaceKey("12 crescent road, leeds", 53.799747, -1.549338)
	assert.Equal(t, a, b)

	// A different place yields a different key.
	c := PlaceKey("12 crescent road, leeds", 53.812345, -1.549311)
	assert.NotEqual(t, a, c)

	d := PlaceKey("14 crescent road, leeds", 53.799712, -1.549311)
	assert.NotEqual(t, a, d)
}

func TestRoundCoord(t *testing.T) {
	assert.InDelta(t, 53.7997, RoundCoord(53.799712), 1e-9)
	assert.InDelta(t, -1.5493, RoundCoord(-1.549338), 1e-9)
	assert.InDelta(t, 2.0, RoundCoord(2.0), 1e-9)
}
