package configs

// Admin lists the caller keys granted moderation rights, comma separated
// in the environment.
type Admin struct {
	Keys []string `env:"KEYS" envSeparator:","`
}
