// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding and decoding
// as specified in ITU-T X.690.
//
// BER is the wire format used by LDAP for all protocol messages. The package
// offers two decoders:
//
//   - StreamDecoder consumes bytes as they arrive from a transport. Input may
//     be split at any byte boundary; the decoder keeps the partially read
//     TLV and the stack of open constructed elements between calls and emits
//     events to a Handler.
//   - BERDecoder reads from a complete buffer, which suits values that are
//     already fully available such as control values carried in an OCTET
//     STRING.
//
// # Tag Classes
//
// BER uses four tag classes to identify data types:
//
//   - Universal (0x00): Standard ASN.1 types like INTEGER, BOOLEAN, SEQUENCE
//   - Application (0x40): Protocol-specific types (LDAP operations)
//   - Context-specific (0x80): Context-dependent types within a structure
//   - Private (0xC0): Organization-specific types
//
// # Streaming
//
// A Handler receives three kinds of events:
//
//	Open(f)      the header of a constructed element has been read
//	Primitive(t) a primitive element and its whole value have been read
//	Close(f)     the content of a constructed element is exhausted
//
// Decode returns the number of bytes consumed and whether a complete
// outermost element was read:
//
//	d := ber.NewStreamDecoder(ber.StreamOptions{MaxLengthBytes: 4})
//	for len(data) > 0 {
//	    n, done, err := d.Decode(data, handler)
//	    if err != nil {
//	        // the stream is unusable until Reset
//	    }
//	    data = data[n:]
//	    if !done {
//	        break // need more input
//	    }
//	}
//
// # Encoding
//
// Use BEREncoder to build BER-encoded data:
//
//	encoder := ber.NewBEREncoder(256)
//	pos := encoder.BeginSequence()
//	encoder.WriteInteger(1)
//	encoder.WriteOctetString([]byte("hello"))
//	encoder.EndSequence(pos)
//	data := encoder.Bytes()
//
// # Primitive codecs
//
// DecodeInteger, DecodeIntegerInRange, ParseOID, EncodeOID and BitString
// convert content octets to Go values independently of either decoder.
package ber
