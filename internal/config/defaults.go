package config

// DefaultConfig returns a configuration matching ldap.DefaultOptions.
func DefaultConfig() *Config {
	return &Config{
		Decoder: DecoderConfig{
			MaxPDUSize:      "10MB",
			MaxLengthBytes:  4,
			MaxDepth:        64,
			MatchedDNPolicy: "coerce",
			ReferralPolicy:  "coerce",
			ControlPolicy:   "strict",
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
