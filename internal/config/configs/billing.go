package configs

import "time"

// Billing configures the purchase-verification client used for tier
// upgrades.
type Billing struct {
	VerifyURL string        `env:"VERIFY_URL" envDefault:"http://localhost:9090/v1/verify"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
