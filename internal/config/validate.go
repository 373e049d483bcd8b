package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ldap"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error
	errs = append(errs, validateDecoderConfig(&config.Decoder)...)
	errs = append(errs, validateLogConfig(&config.Logging)...)
	return errs
}

func validateDecoderConfig(config *DecoderConfig) []error {
	var errs []error

	if size, err := ParseSize(config.MaxPDUSize); err != nil {
		errs = append(errs, ValidationError{
			Field:   "decoder.maxPDUSize",
			Message: err.Error(),
		})
	} else if size > math.MaxInt32 {
		errs = append(errs, ValidationError{
			Field:   "decoder.maxPDUSize",
			Message: "must not exceed 2GB",
		})
	}

	if config.MaxLengthBytes < 1 || config.MaxLengthBytes > 8 {
		errs = append(errs, ValidationError{
			Field:   "decoder.maxLengthBytes",
			Message: "must be between 1 and 8",
		})
	}

	if config.MaxDepth < 0 {
		errs = append(errs, ValidationError{
			Field:   "decoder.maxDepth",
			Message: "must be non-negative",
		})
	}

	if _, err := ldap.ParsePolicy(config.MatchedDNPolicy); err != nil {
		errs = append(errs, ValidationError{
			Field:   "decoder.matchedDNPolicy",
			Message: "must be coerce or strict",
		})
	}
	if _, err := ldap.ParsePolicy(config.ReferralPolicy); err != nil {
		errs = append(errs, ValidationError{
			Field:   "decoder.referralPolicy",
			Message: "must be coerce or strict",
		})
	}
	if _, err := ldap.ParseValuePolicy(config.ControlPolicy); err != nil {
		errs = append(errs, ValidationError{
			Field:   "decoder.controlPolicy",
			Message: "must be strict or lenient",
		})
	}

	return errs
}

// validateLogConfig validates logging configuration.
func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[strings.ToLower(config.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	if config.Output != "" && config.Output != "stdout" && config.Output != "stderr" {
		dir := filepath.Dir(config.Output)
		if !filepath.IsAbs(config.Output) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: "must be stdout, stderr, or an absolute file path",
			})
		} else if _, err := os.Stat(dir); os.IsNotExist(err) {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: fmt.Sprintf("directory %s does not exist", dir),
			})
		}
	}

	return errs
}
