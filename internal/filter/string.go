package filter

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// String renders the filter in RFC 4515 form.
func (f *Filter) String() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *Filter) write(sb *strings.Builder) {
	sb.WriteByte('(')
	switch f.Type {
	case FilterAnd, FilterOr:
		if f.Type == FilterAnd {
			sb.WriteByte('&')
		} else {
			sb.WriteByte('|')
		}
		for _, child := range f.Children {
			child.write(sb)
		}
	case FilterNot:
		sb.WriteByte('!')
		if f.Child != nil {
			f.Child.write(sb)
		}
	case FilterEquality:
		writeAssertion(sb, f.Attribute, "=", f.Value)
	case FilterGreaterOrEqual:
		writeAssertion(sb, f.Attribute, ">=", f.Value)
	case FilterLessOrEqual:
		writeAssertion(sb, f.Attribute, "<=", f.Value)
	case FilterApproxMatch:
		writeAssertion(sb, f.Attribute, "~=", f.Value)
	case FilterPresent:
		sb.WriteString(f.Attribute)
		sb.WriteString("=*")
	case FilterSubstring:
		sb.WriteString(f.Attribute)
		sb.WriteByte('=')
		if sub := f.Substring; sub != nil {
			writeValue(sb, sub.Initial)
			sb.WriteByte('*')
			for _, part := range sub.Any {
				writeValue(sb, part)
				sb.WriteByte('*')
			}
			writeValue(sb, sub.Final)
		}
	case FilterExtensibleMatch:
		if em := f.Extensible; em != nil {
			sb.WriteString(em.Attribute)
			if em.DNAttributes {
				sb.WriteString(":dn")
			}
			if em.MatchingRule != "" {
				sb.WriteByte(':')
				sb.WriteString(em.MatchingRule)
			}
			writeAssertion(sb, "", ":=", em.Value)
		}
	}
	sb.WriteByte(')')
}

func writeAssertion(sb *strings.Builder, attr, op string, value []byte) {
	sb.WriteString(attr)
	sb.WriteString(op)
	writeValue(sb, value)
}

// writeValue escapes the reserved characters, control octets and any octet
// of a value that is not valid UTF-8.
func writeValue(sb *strings.Builder, value []byte) {
	escapeHigh := !utf8.Valid(value)
	for _, b := range value {
		switch {
		case b == '*' || b == '(' || b == ')' || b == '\\' || b < 0x20 || b == 0x7F,
			escapeHigh && b >= 0x80:
			sb.WriteByte('\\')
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0x0F])
		default:
			sb.WriteByte(b)
		}
	}
}
