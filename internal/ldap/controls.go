package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
	"github.com/KilimcininKorOglu/ldapcodec/internal/schema"
)

// Control OIDs with built-in value decoders.
const (
	OIDPagedResults            = "1.2.840.113556.1.4.319"
	OIDSortRequest             = "1.2.840.113556.1.4.473"
	OIDSortResponse            = "1.2.840.113556.1.4.474"
	OIDManageDsaIT             = "2.16.840.1.113730.3.4.2"
	OIDSubentries              = "1.3.6.1.4.1.4203.1.10.1"
	OIDPersistentSearch        = "2.16.840.1.113730.3.4.3"
	OIDEntryChangeNotification = "2.16.840.1.113730.3.4.7"
	OIDProxiedAuthz            = "2.16.840.1.113730.3.4.18"
)

var (
	errNoValue         = errors.New("value is required")
	errUnexpectedValue = errors.New("value must be absent")
	errTrailingData    = errors.New("trailing data after value")
)

// PagedResultsControl is the Simple Paged Results control (RFC 2696).
//
//	realSearchControlValue ::= SEQUENCE {
//	        size            INTEGER (0..maxInt),
//	        cookie          OCTET STRING
//	}
type PagedResultsControl struct {
	Size   int32
	Cookie []byte
}

// Encode returns the control value.
func (c *PagedResultsControl) Encode() []byte {
	e := ber.NewBEREncoder(16 + len(c.Cookie))
	pos := e.BeginSequence()
	e.WriteInteger(int64(c.Size))
	e.WriteOctetString(c.Cookie)
	e.End(pos)
	return e.Bytes()
}

func decodePagedResults(value []byte) (any, error) {
	if value == nil {
		return nil, errNoValue
	}
	d, err := sequenceOf(value)
	if err != nil {
		return nil, err
	}
	size, err := d.ReadInteger()
	if err != nil {
		return nil, errors.Wrap(err, "size")
	}
	if size < 0 || size > maxInt {
		return nil, &ber.IntegerRangeError{Value: size, Min: 0, Max: maxInt}
	}
	cookie, err := d.ReadOctetString()
	if err != nil {
		return nil, errors.Wrap(err, "cookie")
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return &PagedResultsControl{Size: int32(size), Cookie: cookie}, nil
}

// SortKey is one key of a server-side sort request (RFC 2891).
type SortKey struct {
	AttributeType string
	OrderingRule  string
	ReverseOrder  bool
}

// SortRequestControl is the server-side sort request control.
//
//	SortKeyList ::= SEQUENCE OF SEQUENCE {
//	           attributeType   AttributeDescription,
//	           orderingRule    [0] MatchingRuleId OPTIONAL,
//	           reverseOrder    [1] BOOLEAN DEFAULT FALSE }
type SortRequestControl struct {
	Keys []SortKey
}

// Encode returns the control value.
func (c *SortRequestControl) Encode() []byte {
	e := ber.NewBEREncoder(64)
	list := e.BeginSequence()
	for _, k := range c.Keys {
		key := e.BeginSequence()
		e.WriteString(k.AttributeType)
		if k.OrderingRule != "" {
			e.WriteTaggedValue(0, false, []byte(k.OrderingRule))
		}
		if k.ReverseOrder {
			e.WriteBooleanWithTag(ber.MakeTag(ber.ClassContextSpecific, false, 1), true)
		}
		e.End(key)
	}
	e.End(list)
	return e.Bytes()
}

func sortRequestDecoder(lookup schema.AttributeTypeLookup) ValueDecoder {
	return func(value []byte) (any, error) {
		if value == nil {
			return nil, errNoValue
		}
		list, err := sequenceOf(value)
		if err != nil {
			return nil, err
		}
		ctrl := &SortRequestControl{}
		for list.Remaining() > 0 {
			d, err := list.ReadSequenceContents()
			if err != nil {
				return nil, errors.Wrap(err, "sort key")
			}
			attr, err := d.ReadOctetString()
			if err != nil {
				return nil, errors.Wrap(err, "attributeType")
			}
			key := SortKey{AttributeType: schema.CanonicalName(lookup, string(attr))}
			if d.IsContextTag(0) {
				rule, err := d.ReadOctetStringWithTag(0)
				if err != nil {
					return nil, errors.Wrap(err, "orderingRule")
				}
				key.OrderingRule = string(rule)
			}
			if d.IsContextTag(1) {
				if key.ReverseOrder, err = d.ReadBooleanWithTag(1); err != nil {
					return nil, errors.Wrap(err, "reverseOrder")
				}
			}
			if err := end(d); err != nil {
				return nil, err
			}
			ctrl.Keys = append(ctrl.Keys, key)
		}
		if len(ctrl.Keys) == 0 {
			return nil, errors.New("empty sort key list")
		}
		return ctrl, nil
	}
}

// SortResponseControl is the server-side sort response control.
//
//	SortResult ::= SEQUENCE {
//	   sortResult  ENUMERATED { ... },
//	   attributeType [0] AttributeDescription OPTIONAL }
type SortResponseControl struct {
	Result        ResultCode
	AttributeType string
}

func sortResponseDecoder(lookup schema.AttributeTypeLookup) ValueDecoder {
	return func(value []byte) (any, error) {
		if value == nil {
			return nil, errNoValue
		}
		d, err := sequenceOf(value)
		if err != nil {
			return nil, err
		}
		v, err := d.ReadEnumerated()
		if err != nil {
			return nil, errors.Wrap(err, "sortResult")
		}
		code, _, err := ParseResultCode(v)
		if err != nil {
			return nil, errors.Wrap(err, "sortResult")
		}
		ctrl := &SortResponseControl{Result: code}
		if d.IsContextTag(0) {
			attr, err := d.ReadOctetStringWithTag(0)
			if err != nil {
				return nil, errors.Wrap(err, "attributeType")
			}
			ctrl.AttributeType = schema.CanonicalName(lookup, string(attr))
		}
		if err := end(d); err != nil {
			return nil, err
		}
		return ctrl, nil
	}
}

// ManageDsaITControl (RFC 3296) has no value.
type ManageDsaITControl struct{}

func decodeManageDsaIT(value []byte) (any, error) {
	if value != nil {
		return nil, errUnexpectedValue
	}
	return &ManageDsaITControl{}, nil
}

// SubentriesControl (RFC 3672) selects whether subentries are visible.
type SubentriesControl struct {
	Visibility bool
}

func decodeSubentries(value []byte) (any, error) {
	if value == nil {
		return nil, errNoValue
	}
	d := ber.NewBERDecoder(value)
	v, err := d.ReadBoolean()
	if err != nil {
		return nil, errors.Wrap(err, "visibility")
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return &SubentriesControl{Visibility: v}, nil
}

// Change types used by persistent search and entry change notification.
const (
	ChangeTypeAdd      = 1
	ChangeTypeDelete   = 2
	ChangeTypeModify   = 4
	ChangeTypeModifyDN = 8
	changeTypeAll      = ChangeTypeAdd | ChangeTypeDelete | ChangeTypeModify | ChangeTypeModifyDN
)

// PersistentSearchControl (draft-ietf-ldapext-psearch).
//
//	PersistentSearch ::= SEQUENCE {
//	        changeTypes INTEGER,
//	        changesOnly BOOLEAN,
//	        returnECs BOOLEAN
//	}
type PersistentSearchControl struct {
	ChangeTypes int
	ChangesOnly bool
	ReturnECs   bool
}

func decodePersistentSearch(value []byte) (any, error) {
	if value == nil {
		return nil, errNoValue
	}
	d, err := sequenceOf(value)
	if err != nil {
		return nil, err
	}
	types, err := d.ReadInteger()
	if err != nil {
		return nil, errors.Wrap(err, "changeTypes")
	}
	if types < 1 || types > changeTypeAll {
		return nil, &ber.IntegerRangeError{Value: types, Min: 1, Max: changeTypeAll}
	}
	ctrl := &PersistentSearchControl{ChangeTypes: int(types)}
	if ctrl.ChangesOnly, err = d.ReadBoolean(); err != nil {
		return nil, errors.Wrap(err, "changesOnly")
	}
	if ctrl.ReturnECs, err = d.ReadBoolean(); err != nil {
		return nil, errors.Wrap(err, "returnECs")
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// EntryChangeNotificationControl accompanies entries returned by a
// persistent search.
//
//	EntryChangeNotification ::= SEQUENCE {
//	        changeType ENUMERATED { add(1), delete(2), modify(4), modDN(8) },
//	        previousDN   LDAPDN OPTIONAL,     -- modifyDN ops. only
//	        changeNumber INTEGER OPTIONAL     -- if supported
//	}
type EntryChangeNotificationControl struct {
	ChangeType      int
	PreviousDN      string
	ChangeNumber    int64
	HasChangeNumber bool
}

func decodeEntryChangeNotification(value []byte) (any, error) {
	if value == nil {
		return nil, errNoValue
	}
	d, err := sequenceOf(value)
	if err != nil {
		return nil, err
	}
	ct, err := d.ReadEnumerated()
	if err != nil {
		return nil, errors.Wrap(err, "changeType")
	}
	switch ct {
	case ChangeTypeAdd, ChangeTypeDelete, ChangeTypeModify, ChangeTypeModifyDN:
	default:
		return nil, errors.Errorf("invalid changeType %d", ct)
	}
	ctrl := &EntryChangeNotificationControl{ChangeType: int(ct)}
	if class, _, number, err := d.PeekTag(); err == nil && class == ber.ClassUniversal && number == ber.TagOctetString {
		dn, err := d.ReadOctetString()
		if err != nil {
			return nil, errors.Wrap(err, "previousDN")
		}
		if ct != ChangeTypeModifyDN {
			return nil, errors.New("previousDN is only allowed for modDN")
		}
		ctrl.PreviousDN = string(dn)
	}
	if d.Remaining() > 0 {
		if ctrl.ChangeNumber, err = d.ReadInteger(); err != nil {
			return nil, errors.Wrap(err, "changeNumber")
		}
		ctrl.HasChangeNumber = true
	}
	if err := end(d); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// ProxiedAuthzControl (RFC 4370) carries an authzId as its raw value.
type ProxiedAuthzControl struct {
	AuthzID string
}

func decodeProxiedAuthz(value []byte) (any, error) {
	if value == nil {
		return nil, errNoValue
	}
	return &ProxiedAuthzControl{AuthzID: string(value)}, nil
}

func registerDefaultControls(r *ValueRegistry, lookup schema.AttributeTypeLookup) {
	r.mustRegister(KindControl, OIDPagedResults, decodePagedResults)
	r.mustRegister(KindControl, OIDSortRequest, sortRequestDecoder(lookup))
	r.mustRegister(KindControl, OIDSortResponse, sortResponseDecoder(lookup))
	r.mustRegister(KindControl, OIDManageDsaIT, decodeManageDsaIT)
	r.mustRegister(KindControl, OIDSubentries, decodeSubentries)
	r.mustRegister(KindControl, OIDPersistentSearch, decodePersistentSearch)
	r.mustRegister(KindControl, OIDEntryChangeNotification, decodeEntryChangeNotification)
	r.mustRegister(KindControl, OIDProxiedAuthz, decodeProxiedAuthz)
}

// sequenceOf checks that value is exactly one SEQUENCE and returns a
// decoder over its contents.
func sequenceOf(value []byte) (*ber.BERDecoder, error) {
	outer := ber.NewBERDecoder(value)
	d, err := outer.ReadSequenceContents()
	if err != nil {
		return nil, err
	}
	if err := end(outer); err != nil {
		return nil, err
	}
	return d, nil
}

func end(d *ber.BERDecoder) error {
	if d.Remaining() != 0 {
		return errTrailingData
	}
	return nil
}
