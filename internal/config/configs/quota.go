package configs

import "time"

// Quota configures the periodic free slot. FreePeriod is the window an
// owner must wait between free submissions; the default is 30 days.
type Quota struct {
	FreePeriod time.Duration `env:"FREE_PERIOD" envDefault:"720h"`
}
