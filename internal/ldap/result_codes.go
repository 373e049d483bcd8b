package ldap

import (
	"fmt"

	"github.com/KilimcininKorOglu/ldapcodec/internal/ber"
)

// ResultCode represents an LDAP result code as defined in RFC 4511 Section 4.1.9.
// resultCode ENUMERATED {
//
//	success                      (0),
//	operationsError              (1),
//	...
//	other                        (80),
//	...
//
// }
//
// Codes 81 to 90 are the client-side codes of RFC 4511's predecessors that
// directory SDKs still send on the wire.
type ResultCode int

// LDAP result codes per RFC 4511 Section 4.1.9
const (
	ResultSuccess                      ResultCode = 0
	ResultOperationsError              ResultCode = 1
	ResultProtocolError                ResultCode = 2
	ResultTimeLimitExceeded            ResultCode = 3
	ResultSizeLimitExceeded            ResultCode = 4
	ResultCompareFalse                 ResultCode = 5
	ResultCompareTrue                  ResultCode = 6
	ResultAuthMethodNotSupported       ResultCode = 7
	ResultStrongerAuthRequired         ResultCode = 8
	ResultReferral                     ResultCode = 10
	ResultAdminLimitExceeded           ResultCode = 11
	ResultUnavailableCriticalExtension ResultCode = 12
	ResultConfidentialityRequired      ResultCode = 13
	ResultSaslBindInProgress           ResultCode = 14
	ResultNoSuchAttribute              ResultCode = 16
	ResultUndefinedAttributeType       ResultCode = 17
	ResultInappropriateMatching        ResultCode = 18
	ResultConstraintViolation          ResultCode = 19
	ResultAttributeOrValueExists       ResultCode = 20
	ResultInvalidAttributeSyntax       ResultCode = 21
	ResultNoSuchObject                 ResultCode = 32
	ResultAliasProblem                 ResultCode = 33
	ResultInvalidDNSyntax              ResultCode = 34
	ResultAliasDereferencingProblem    ResultCode = 36
	ResultInappropriateAuthentication  ResultCode = 48
	ResultInvalidCredentials           ResultCode = 49
	ResultInsufficientAccessRights     ResultCode = 50
	ResultBusy                         ResultCode = 51
	ResultUnavailable                  ResultCode = 52
	ResultUnwillingToPerform           ResultCode = 53
	ResultLoopDetect                   ResultCode = 54
	ResultNamingViolation              ResultCode = 64
	ResultObjectClassViolation         ResultCode = 65
	ResultNotAllowedOnNonLeaf          ResultCode = 66
	ResultNotAllowedOnRDN              ResultCode = 67
	ResultEntryAlreadyExists           ResultCode = 68
	ResultObjectClassModsProhibited    ResultCode = 69
	ResultAffectsMultipleDSAs          ResultCode = 71
	ResultOther                        ResultCode = 80
	ResultServerDown                   ResultCode = 81
	ResultLocalError                   ResultCode = 82
	ResultEncodingError                ResultCode = 83
	ResultDecodingError                ResultCode = 84
	ResultTimeout                      ResultCode = 85
	ResultAuthUnknown                  ResultCode = 86
	ResultFilterError                  ResultCode = 87
	ResultUserCanceled                 ResultCode = 88
	ResultParamError                   ResultCode = 89
	ResultNoMemory                     ResultCode = 90
)

// Result codes outside [MinResultCode, MaxResultCode] are rejected while
// decoding. Codes inside the range that have no definition decode as
// ResultOther.
const (
	MinResultCode = 0
	MaxResultCode = 90
)

var resultCodeNames = map[ResultCode]string{
	ResultSuccess:                      "Success",
	ResultOperationsError:              "OperationsError",
	ResultProtocolError:                "ProtocolError",
	ResultTimeLimitExceeded:            "TimeLimitExceeded",
	ResultSizeLimitExceeded:            "SizeLimitExceeded",
	ResultCompareFalse:                 "CompareFalse",
	ResultCompareTrue:                  "CompareTrue",
	ResultAuthMethodNotSupported:       "AuthMethodNotSupported",
	ResultStrongerAuthRequired:         "StrongerAuthRequired",
	ResultReferral:                     "Referral",
	ResultAdminLimitExceeded:           "AdminLimitExceeded",
	ResultUnavailableCriticalExtension: "UnavailableCriticalExtension",
	ResultConfidentialityRequired:      "ConfidentialityRequired",
	ResultSaslBindInProgress:           "SaslBindInProgress",
	ResultNoSuchAttribute:              "NoSuchAttribute",
	ResultUndefinedAttributeType:       "UndefinedAttributeType",
	ResultInappropriateMatching:        "InappropriateMatching",
	ResultConstraintViolation:          "ConstraintViolation",
	ResultAttributeOrValueExists:       "AttributeOrValueExists",
	ResultInvalidAttributeSyntax:       "InvalidAttributeSyntax",
	ResultNoSuchObject:                 "NoSuchObject",
	ResultAliasProblem:                 "AliasProblem",
	ResultInvalidDNSyntax:              "InvalidDNSyntax",
	ResultAliasDereferencingProblem:    "AliasDereferencingProblem",
	ResultInappropriateAuthentication:  "InappropriateAuthentication",
	ResultInvalidCredentials:           "InvalidCredentials",
	ResultInsufficientAccessRights:     "InsufficientAccessRights",
	ResultBusy:                         "Busy",
	ResultUnavailable:                  "Unavailable",
	ResultUnwillingToPerform:           "UnwillingToPerform",
	ResultLoopDetect:                   "LoopDetect",
	ResultNamingViolation:              "NamingViolation",
	ResultObjectClassViolation:         "ObjectClassViolation",
	ResultNotAllowedOnNonLeaf:          "NotAllowedOnNonLeaf",
	ResultNotAllowedOnRDN:              "NotAllowedOnRDN",
	ResultEntryAlreadyExists:           "EntryAlreadyExists",
	ResultObjectClassModsProhibited:    "ObjectClassModsProhibited",
	ResultAffectsMultipleDSAs:          "AffectsMultipleDSAs",
	ResultOther:                        "Other",
	ResultServerDown:                   "ServerDown",
	ResultLocalError:                   "LocalError",
	ResultEncodingError:                "EncodingError",
	ResultDecodingError:                "DecodingError",
	ResultTimeout:                      "Timeout",
	ResultAuthUnknown:                  "AuthUnknown",
	ResultFilterError:                  "FilterError",
	ResultUserCanceled:                 "UserCanceled",
	ResultParamError:                   "ParamError",
	ResultNoMemory:                     "NoMemory",
}

// String returns the string representation of the result code
func (r ResultCode) String() string {
	if name, ok := resultCodeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(r))
}

// IsDefined reports whether r has a definition.
func (r ResultCode) IsDefined() bool {
	_, ok := resultCodeNames[r]
	return ok
}

// AllowsMatchedDN reports whether a result with this code may carry a
// matchedDN. RFC 4511 Section 4.1.9 only defines it for name errors.
func (r ResultCode) AllowsMatchedDN() bool {
	switch r {
	case ResultNoSuchObject, ResultAliasProblem, ResultInvalidDNSyntax, ResultAliasDereferencingProblem:
		return true
	default:
		return false
	}
}

// ParseResultCode maps a decoded ENUMERATED to a ResultCode. Values outside
// [MinResultCode, MaxResultCode] return an *ber.IntegerRangeError; undefined
// values inside the range map to ResultOther with known set to false.
func ParseResultCode(v int64) (code ResultCode, known bool, err error) {
	if v < MinResultCode || v > MaxResultCode {
		return 0, false, &ber.IntegerRangeError{Value: v, Min: MinResultCode, Max: MaxResultCode}
	}
	code = ResultCode(v)
	if !code.IsDefined() {
		return ResultOther, false, nil
	}
	return code, true, nil
}
