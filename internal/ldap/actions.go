package ldap

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// Action constructors shared by the grammar tables. Field names passed to
// them identify the value in errors and in the write-once bookkeeping.

// setString stores the element as a string.
func setString(field string, set func(c *container, s string)) Action {
	return func(c *container, t *ber.TLV) error {
		if err := c.claim(field); err != nil {
			return err
		}
		set(c, t.String())
		return nil
	}
}

// setBytes stores a copy of the element's value.
func setBytes(field string, set func(c *container, b []byte)) Action {
	return func(c *container, t *ber.TLV) error {
		if err := c.claim(field); err != nil {
			return err
		}
		set(c, t.Bytes())
		return nil
	}
}

// setBool stores a BOOLEAN.
func setBool(field string, set func(c *container, v bool)) Action {
	return func(c *container, t *ber.TLV) error {
		if err := c.claim(field); err != nil {
			return err
		}
		v, err := t.Bool()
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		set(c, v)
		return nil
	}
}

// setInt stores an INTEGER or ENUMERATED within [min, max].
func setInt[T constraints.Signed](field string, min, max T, set func(c *container, v T)) Action {
	return func(c *container, t *ber.TLV) error {
		if err := c.claim(field); err != nil {
			return err
		}
		v, err := ber.DecodeIntegerInRange(t.Value.Bytes(), min, max)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		set(c, v)
		return nil
	}
}

// setOID stores an LDAPOID after checking its syntax.
func setOID(field string, set func(c *container, oid string)) Action {
	return func(c *container, t *ber.TLV) error {
		if err := c.claim(field); err != nil {
			return err
		}
		oid := t.String()
		if !ber.IsValidOID(oid) {
			return fmt.Errorf("%s: %w: %q", field, ber.ErrInvalidOID, oid)
		}
		set(c, oid)
		return nil
	}
}

// appendString adds the element to a multi-valued string field.
func appendString(add func(c *container, s string)) Action {
	return func(c *container, t *ber.TLV) error {
		add(c, t.String())
		return nil
	}
}

// claimOnly marks a constructed field as present.
func claimOnly(field string) Action {
	return func(c *container, t *ber.TLV) error {
		return c.claim(field)
	}
}

// Attribute list actions. c.attr points at the attribute being filled.

func setAttrType(c *container, t *ber.TLV) error {
	c.attr.Type = t.String()
	return nil
}

func addAttrValue(c *container, t *ber.TLV) error {
	c.attr.Values = append(c.attr.Values, t.Bytes())
	return nil
}
