package ber

// Tag class constants (bits 7-8 of the tag byte)
const (
	ClassUniversal       = 0x00 // 00xxxxxx
	ClassApplication     = 0x40 // 01xxxxxx
	ClassContextSpecific = 0x80 // 10xxxxxx
	ClassPrivate         = 0xC0 // 11xxxxxx
)

// Constructed flag (bit 6 of the tag byte)
const (
	TypePrimitive   = 0x00 // xx0xxxxx
	TypeConstructed = 0x20 // xx1xxxxx
)

// Universal tag numbers for primitive types
const (
	TagEndOfContents = 0x00
	TagBoolean       = 0x01
	TagInteger       = 0x02
	TagBitString     = 0x03
	TagOctetString   = 0x04
	TagNull          = 0x05
	TagOID           = 0x06
	TagEnumerated    = 0x0A
	TagUTF8String    = 0x0C
	TagSequence      = 0x10
	TagSet           = 0x11
)

// Length encoding constants
const (
	// LengthLongFormBit indicates long form length encoding (bit 8 set)
	LengthLongFormBit = 0x80
	// MaxShortFormLength is the maximum length encodable in short form (0-127)
	MaxShortFormLength = 127
	// LengthIndefinite marks a constructed element terminated by an
	// end-of-contents marker instead of a length.
	LengthIndefinite = -1
	// DefaultMaxLengthBytes is the number of long-form length octets accepted
	// when no other limit is configured.
	DefaultMaxLengthBytes = 4
)

const (
	tagClassMask       = 0xC0
	tagConstructedMask = 0x20
	tagNumberMask      = 0x1F
)

// MakeTag builds a single-octet identifier from its class, form and number.
// The number must be below 31.
func MakeTag(class int, constructed bool, number int) byte {
	tag := byte(class&tagClassMask) | byte(number&tagNumberMask)
	if constructed {
		tag |= TypeConstructed
	}
	return tag
}

// TagClass returns the class bits of a tag octet.
func TagClass(tag byte) int {
	return int(tag & tagClassMask)
}

// TagNumber returns the low-tag-number bits of a tag octet.
func TagNumber(tag byte) int {
	return int(tag & tagNumberMask)
}

// IsConstructed reports whether the tag octet has the constructed bit set.
func IsConstructed(tag byte) bool {
	return tag&tagConstructedMask != 0
}
