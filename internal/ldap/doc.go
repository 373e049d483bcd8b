// Package ldap decodes LDAPv3 messages (RFC 4511) from a byte stream and
// encodes them back.
//
// A Decoder is fed arbitrary chunks of a connection's input and returns every
// message completed by that chunk:
//
//	dec := ldap.NewDecoder(ldap.DefaultOptions())
//	msgs, err := dec.Feed(chunk)
//	if err != nil {
//	    var de *ldap.DecodeError
//	    if errors.As(err, &de) && de.HasMessageID {
//	        // answer de.MessageID with protocolError
//	    }
//	}
//	for _, msg := range msgs {
//	    switch op := msg.Op.(type) {
//	    case *ldap.BindRequest:
//	    case *ldap.SearchRequest:
//	        fmt.Println(op.Filter)
//	    }
//	}
//
// Decoding is driven by per-operation grammars. Every (state, tag) pair the
// protocol permits has a transition whose action fills the message being
// built; any other tag aborts the message with an *UnexpectedTagError.
//
// # Result semantics
//
// RFC 4511 restricts matchedDN to a few result codes and referrals to the
// referral result code. Under PolicyCoerce (the default) violating values
// are dropped and a Warning is recorded on the message; under PolicyStrict
// they are fatal.
//
// # Controls and extended values
//
// Control values and extended operation values are decoded by a
// ValueRegistry keyed on OID. Values without a registered decoder are kept
// as raw octets.
//
// # References
//
//   - RFC 4511: LDAP Protocol
//   - RFC 4515: String Representation of Search Filters
//   - RFC 2696, 2891, 3296, 3672, 4370: controls
//   - RFC 3062, 3909, 4532: extended operations
package ldap
