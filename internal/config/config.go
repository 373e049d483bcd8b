package config

// Config holds all ldapcodec settings.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder" json:"decoder"`
	Logging LogConfig     `yaml:"logging" json:"logging"`
}

// DecoderConfig holds the streaming decoder limits and policies.
type DecoderConfig struct {
	// MaxPDUSize is a size string such as "10MB". "0" disables the limit.
	MaxPDUSize     string `yaml:"maxPDUSize" json:"maxPDUSize"`
	MaxLengthBytes int    `yaml:"maxLengthBytes" json:"maxLengthBytes"`
	MaxDepth       int    `yaml:"maxDepth" json:"maxDepth"`

	MatchedDNPolicy string `yaml:"matchedDNPolicy" json:"matchedDNPolicy"`
	ReferralPolicy  string `yaml:"referralPolicy" json:"referralPolicy"`
	ControlPolicy   string `yaml:"controlPolicy" json:"controlPolicy"`

	// ResolveAttributeNames maps attribute OIDs and aliases inside control
	// values to their canonical short names.
	ResolveAttributeNames bool `yaml:"resolveAttributeNames" json:"resolveAttributeNames"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
}
