// Package config loads ldapcodec settings from YAML.
//
// A configuration file has two sections:
//
//	decoder:
//	  maxPDUSize: 10MB
//	  maxLengthBytes: 4
//	  maxDepth: 64
//	  matchedDNPolicy: coerce   # coerce | strict
//	  referralPolicy: coerce    # coerce | strict
//	  controlPolicy: strict     # strict | lenient
//	  resolveAttributeNames: true
//	logging:
//	  level: ${LOG_LEVEL:-info}
//	  format: json
//	  output: stderr
//
// Values may reference environment variables as ${VAR} or ${VAR:-default};
// they are substituted before parsing. Missing keys keep the values from
// DefaultConfig. Call ValidateConfig before ToOptions to report every
// problem at once:
//
//	cfg, err := config.LoadConfig("/etc/ldapcodec.yaml")
//	if err != nil {
//	    return err
//	}
//	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
//	    return errs[0]
//	}
//	opts, err := cfg.ToOptions()
package config
