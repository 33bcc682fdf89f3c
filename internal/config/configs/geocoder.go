package configs

import "time"

// Geocoder configures the address-resolution client. BaseURL must point
// at a Nominatim-compatible search API. The UserAgent identifies this
// deployment to the geocoding service, which public Nominatim requires.
type Geocoder struct {
	BaseURL   string        `env:"BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	UserAgent string        `env:"USER_AGENT" envDefault:"minar-ads/1.0"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"5s"`
}
