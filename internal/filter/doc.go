// Package filter provides the LDAP search filter model shared by the
// decoder, the encoder and the command line tool.
//
// Filters decoded from a SearchRequest are trees of *Filter values.
// String renders a tree in the RFC 4515 string form and Parse reads that
// form back:
//
//	f, err := filter.Parse("(&(objectClass=person)(cn=Jo*))")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(f) // (&(objectClass=person)(cn=Jo*))
//
// Filters can also be constructed programmatically:
//
//	f := filter.NewAndFilter(
//	    filter.NewEqualityFilter("objectClass", []byte("person")),
//	    filter.NewPresentFilter("mail"),
//	)
//
// Assertion values are kept as raw octets. String escapes the characters
// RFC 4515 reserves and Parse undoes the escaping.
package filter
