// Package schema provides a read-only registry of LDAP attribute types.
//
// The registry maps attribute type OIDs to their names and back. The codec
// consults it through the AttributeTypeLookup interface when a control
// carries attribute descriptions that should be reported in canonical form,
// for example the keys of a server-side sort request:
//
//	reg := schema.NewDefaultRegistry()
//	at, ok := reg.AttributeType("2.5.4.3")
//	// at.Name == "cn"
//
//	name := reg.CanonicalName("commonName") // "cn"
//
// Lookups are case-insensitive for names. A Registry is populated before
// use and never modified afterwards, so it is safe for concurrent readers.
package schema
