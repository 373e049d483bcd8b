package schema

// Syntax OIDs used by the default attribute types (RFC 4517).
const (
	SyntaxDirectoryString = "1.3.6.1.4.1.1466.115.121.1.15"
	SyntaxDN              = "1.3.6.1.4.1.1466.115.121.1.12"
	SyntaxIA5String       = "1.3.6.1.4.1.1466.115.121.1.26"
	SyntaxInteger         = "1.3.6.1.4.1.1466.115.121.1.27"
	SyntaxOID             = "1.3.6.1.4.1.1466.115.121.1.38"
	SyntaxOctetString     = "1.3.6.1.4.1.1466.115.121.1.40"
	SyntaxGeneralizedTime = "1.3.6.1.4.1.1466.115.121.1.24"
	SyntaxTelephoneNumber = "1.3.6.1.4.1.1466.115.121.1.50"
	SyntaxPrintableString = "1.3.6.1.4.1.1466.115.121.1.44"
	SyntaxBoolean         = "1.3.6.1.4.1.1466.115.121.1.7"
	SyntaxUUID            = "1.3.6.1.1.16.1"
)

type attributeDef struct {
	oid         string
	names       []string
	syntax      string
	singleValue bool
	usage       AttributeUsage
}

// Standard attribute types from RFC 4512, RFC 4519 and RFC 4524.
var attributeDefs = []attributeDef{
	{"2.5.4.0", []string{"objectClass"}, SyntaxOID, false, UserApplications},
	{"2.5.4.1", []string{"aliasedObjectName", "aliasedEntryName"}, SyntaxDN, true, UserApplications},
	{"2.5.4.3", []string{"cn", "commonName"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.4", []string{"sn", "surname"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.5", []string{"serialNumber"}, SyntaxPrintableString, false, UserApplications},
	{"2.5.4.6", []string{"c", "countryName"}, SyntaxDirectoryString, true, UserApplications},
	{"2.5.4.7", []string{"l", "localityName"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.8", []string{"st", "stateOrProvinceName"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.9", []string{"street", "streetAddress"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.10", []string{"o", "organizationName"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.11", []string{"ou", "organizationalUnitName"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.12", []string{"title"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.13", []string{"description"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.20", []string{"telephoneNumber"}, SyntaxTelephoneNumber, false, UserApplications},
	{"2.5.4.31", []string{"member"}, SyntaxDN, false, UserApplications},
	{"2.5.4.34", []string{"seeAlso"}, SyntaxDN, false, UserApplications},
	{"2.5.4.35", []string{"userPassword"}, SyntaxOctetString, false, UserApplications},
	{"2.5.4.41", []string{"name"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.42", []string{"givenName", "gn"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.43", []string{"initials"}, SyntaxDirectoryString, false, UserApplications},
	{"2.5.4.49", []string{"distinguishedName"}, SyntaxDN, false, UserApplications},
	{"0.9.2342.19200300.100.1.1", []string{"uid", "userid"}, SyntaxDirectoryString, false, UserApplications},
	{"0.9.2342.19200300.100.1.3", []string{"mail", "rfc822Mailbox"}, SyntaxIA5String, false, UserApplications},
	{"0.9.2342.19200300.100.1.25", []string{"dc", "domainComponent"}, SyntaxIA5String, true, UserApplications},
	{"2.5.18.1", []string{"createTimestamp"}, SyntaxGeneralizedTime, true, DirectoryOperation},
	{"2.5.18.2", []string{"modifyTimestamp"}, SyntaxGeneralizedTime, true, DirectoryOperation},
	{"2.5.18.3", []string{"creatorsName"}, SyntaxDN, true, DirectoryOperation},
	{"2.5.18.4", []string{"modifiersName"}, SyntaxDN, true, DirectoryOperation},
	{"2.5.18.10", []string{"subschemaSubentry"}, SyntaxDN, true, DirectoryOperation},
	{"2.5.21.9", []string{"structuralObjectClass"}, SyntaxOID, true, DirectoryOperation},
	{"2.5.21.8", []string{"hasSubordinates"}, SyntaxBoolean, true, DirectoryOperation},
	{"1.3.6.1.1.20", []string{"entryDN"}, SyntaxDN, true, DirectoryOperation},
	{"1.3.6.1.1.16.4", []string{"entryUUID"}, SyntaxUUID, true, DirectoryOperation},
	{"2.16.840.1.113730.3.1.69", []string{"numSubordinates"}, SyntaxInteger, true, DirectoryOperation},
}

func defaultAttributeTypes() []*AttributeType {
	types := make([]*AttributeType, 0, len(attributeDefs))
	for _, def := range attributeDefs {
		at := NewAttributeType(def.oid, def.names...)
		at.Syntax = def.syntax
		at.SingleValue = def.singleValue
		at.Usage = def.usage
		types = append(types, at)
	}
	return types
}
