package filter

import (
	"errors"
	"strings"
)

// Parser errors
var (
	ErrEmptyFilter      = errors.New("filter: empty filter")
	ErrInvalidFilter    = errors.New("filter: invalid filter syntax")
	ErrUnbalancedParens = errors.New("filter: unbalanced parentheses")
	ErrMissingAttribute = errors.New("filter: missing attribute name")
	ErrInvalidEscape    = errors.New("filter: invalid escape sequence")
)

// Parse parses an LDAP filter string into a Filter structure.
// Supports RFC 4515 filter syntax:
//   - (attr=value)          - equality
//   - (attr=*)              - presence
//   - (attr=*val*)          - substring
//   - (attr>=value)         - greater or equal
//   - (attr<=value)         - less or equal
//   - (attr~=value)         - approximate match
//   - (attr:dn:rule:=value) - extensible match
//   - (&(f1)(f2)...)        - AND
//   - (|(f1)(f2)...)        - OR
//   - (!(filter))           - NOT
//
// Values may contain \XX hex escapes.
func Parse(filterStr string) (*Filter, error) {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" {
		return nil, ErrEmptyFilter
	}

	return parseFilter(filterStr)
}

func parseFilter(s string) (*Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyFilter
	}

	// Must start and end with parentheses
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		// Try wrapping simple filters
		if !strings.Contains(s, "(") {
			s = "(" + s + ")"
		} else {
			return nil, ErrInvalidFilter
		}
	}

	if closingParen(s) != len(s)-1 {
		return nil, ErrUnbalancedParens
	}

	inner := s[1 : len(s)-1]
	if inner == "" {
		return nil, ErrEmptyFilter
	}

	switch inner[0] {
	case '&', '|':
		children, err := parseFilterList(inner[1:])
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, ErrInvalidFilter
		}
		if inner[0] == '&' {
			return NewAndFilter(children...), nil
		}
		return NewOrFilter(children...), nil
	case '!':
		children, err := parseFilterList(inner[1:])
		if err != nil {
			return nil, err
		}
		if len(children) != 1 {
			return nil, ErrInvalidFilter
		}
		return NewNotFilter(children[0]), nil
	default:
		return parseSimpleFilter(inner)
	}
}

func parseFilterList(s string) ([]*Filter, error) {
	var filters []*Filter
	s = strings.TrimSpace(s)

	for len(s) > 0 {
		if s[0] != '(' {
			return nil, ErrInvalidFilter
		}

		end := closingParen(s)
		if end == -1 {
			return nil, ErrUnbalancedParens
		}

		f, err := parseFilter(s[:end+1])
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)

		s = strings.TrimSpace(s[end+1:])
	}

	return filters, nil
}

// closingParen returns the index of the parenthesis closing s[0], or -1.
// Values cannot hold literal parentheses, they must be escaped as \28 and
// \29.
func closingParen(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseSimpleFilter(s string) (*Filter, error) {
	if strings.ContainsAny(s, "()") {
		return nil, ErrInvalidFilter
	}
	idx := strings.IndexAny(s, "=<>~:")
	if idx < 0 {
		return nil, ErrInvalidFilter
	}
	attr := strings.TrimSpace(s[:idx])
	if strings.Contains(attr, "*") {
		return nil, ErrInvalidFilter
	}

	if s[idx] == ':' {
		return parseExtensibleFilter(s)
	}
	if attr == "" {
		return nil, ErrMissingAttribute
	}

	if s[idx] != '=' {
		if idx+1 >= len(s) || s[idx+1] != '=' {
			return nil, ErrInvalidFilter
		}
		value, err := unescapeValue(s[idx+2:])
		if err != nil {
			return nil, err
		}
		switch s[idx] {
		case '>':
			return NewGreaterOrEqualFilter(attr, value), nil
		case '<':
			return NewLessOrEqualFilter(attr, value), nil
		default:
			return NewApproxMatchFilter(attr, value), nil
		}
	}

	raw := s[idx+1:]
	if raw == "*" {
		return NewPresentFilter(attr), nil
	}
	if strings.Contains(raw, "*") {
		return parseSubstringFilter(attr, raw)
	}

	value, err := unescape(raw)
	if err != nil {
		return nil, err
	}
	return NewEqualityFilter(attr, value), nil
}

func parseSubstringFilter(attr, raw string) (*Filter, error) {
	parts := strings.Split(raw, "*")
	sf := &SubstringFilter{Attribute: attr}

	for i, part := range parts {
		if part == "" {
			continue
		}
		value, err := unescape(part)
		if err != nil {
			return nil, err
		}
		switch i {
		case 0:
			sf.Initial = value
		case len(parts) - 1:
			sf.Final = value
		default:
			sf.Any = append(sf.Any, value)
		}
	}

	return NewSubstringFilter(sf), nil
}

// parseExtensibleFilter parses attr[:dn][:rule]:=value and [:dn]:rule:=value.
func parseExtensibleFilter(s string) (*Filter, error) {
	idx := strings.Index(s, ":=")
	if idx < 0 {
		return nil, ErrInvalidFilter
	}
	value, err := unescapeValue(s[idx+2:])
	if err != nil {
		return nil, err
	}

	em := &ExtensibleMatch{Value: value}
	fields := strings.Split(s[:idx], ":")
	em.Attribute = strings.TrimSpace(fields[0])
	for _, field := range fields[1:] {
		switch {
		case strings.EqualFold(field, "dn") && !em.DNAttributes && em.MatchingRule == "":
			em.DNAttributes = true
		case field != "" && em.MatchingRule == "":
			em.MatchingRule = field
		default:
			return nil, ErrInvalidFilter
		}
	}
	if em.Attribute == "" && em.MatchingRule == "" {
		return nil, ErrMissingAttribute
	}

	return NewExtensibleMatchFilter(em), nil
}

// unescapeValue is unescape for assertion values outside substring
// filters, where a literal asterisk is not allowed.
func unescapeValue(s string) ([]byte, error) {
	if strings.Contains(s, "*") {
		return nil, ErrInvalidFilter
	}
	return unescape(s)
}

func unescape(s string) ([]byte, error) {
	if !strings.Contains(s, "\\") {
		return []byte(s), nil
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			out = append(out, s[i])
			continue
		}
		if i+2 >= len(s) {
			return nil, ErrInvalidEscape
		}
		hi, ok1 := fromHex(s[i+1])
		lo, ok2 := fromHex(s[i+2])
		if !ok1 || !ok2 {
			return nil, ErrInvalidEscape
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return out, nil
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
