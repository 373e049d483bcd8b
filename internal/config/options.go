package config

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ldap"
	"github.com/KilimcininKorOglu/ldapcodec/internal/logging"
	"github.com/KilimcininKorOglu/ldapcodec/internal/schema"
)

// ToOptions converts the configuration into decoder options. The logger
// is built from the logging section.
func (c *Config) ToOptions() (ldap.Options, error) {
	opts := ldap.DefaultOptions()

	size, err := ParseSize(c.Decoder.MaxPDUSize)
	if err != nil {
		return opts, errors.Wrap(err, "decoder.maxPDUSize")
	}
	opts.MaxPDUSize = int(size)
	opts.MaxLengthBytes = c.Decoder.MaxLengthBytes
	opts.MaxDepth = c.Decoder.MaxDepth

	if opts.MatchedDNPolicy, err = ldap.ParsePolicy(c.Decoder.MatchedDNPolicy); err != nil {
		return opts, errors.Wrap(err, "decoder.matchedDNPolicy")
	}
	if opts.ReferralPolicy, err = ldap.ParsePolicy(c.Decoder.ReferralPolicy); err != nil {
		return opts, errors.Wrap(err, "decoder.referralPolicy")
	}
	if opts.ControlPolicy, err = ldap.ParseValuePolicy(c.Decoder.ControlPolicy); err != nil {
		return opts, errors.Wrap(err, "decoder.controlPolicy")
	}

	if c.Decoder.ResolveAttributeNames {
		opts.Schema = schema.NewDefaultRegistry()
	}
	opts.Logger = c.Logger()
	return opts, nil
}

// Logger builds a logger from the logging section.
func (c *Config) Logger() logging.Logger {
	return logging.New(logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
		Name:   "ldapcodec",
	})
}
