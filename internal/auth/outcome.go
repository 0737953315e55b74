package auth

// OutcomeKind classifies the result of validating an Authorization header.
type OutcomeKind int

const (
	// OutcomeNoCredential means no bearer token was presented.
	OutcomeNoCredential OutcomeKind = iota
	// OutcomeValid means the token verified and carries authorities.
	OutcomeValid
	// OutcomeValidNoAuthorities means the token verified but has no authorities claim.
	OutcomeValidNoAuthorities
	// OutcomeRejected means the token failed verification; see Rejection.
	OutcomeRejected
	// OutcomeInternalFailure means validation failed for an unexpected reason.
	OutcomeInternalFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNoCredential:
		return "no_credential"
	case OutcomeValid:
		return "valid"
	case OutcomeValidNoAuthorities:
		return "valid_no_authorities"
	case OutcomeRejected:
		return "rejected"
	case OutcomeInternalFailure:
		return "internal_failure"
	default:
		return "unknown"
	}
}

// RejectionKind explains why a presented token was rejected.
type RejectionKind int

const (
	RejectionNone RejectionKind = iota
	RejectionExpired
	RejectionMalformedStructure
	RejectionUnsupportedFormat
	RejectionBadSignature
)

func (r RejectionKind) String() string {
	switch r {
	case RejectionNone:
		return "none"
	case RejectionExpired:
		return "expired"
	case RejectionMalformedStructure:
		return "malformed_structure"
	case RejectionUnsupportedFormat:
		return "unsupported_format"
	case RejectionBadSignature:
		return "bad_signature"
	default:
		return "unknown"
	}
}

// Outcome is the result of TokenValidator.Validate.
//
// Claims is set only for OutcomeValid and OutcomeValidNoAuthorities.
// Rejection is set only for OutcomeRejected. Err carries the underlying cause
// for server-side logging and must never be written to a response.
type Outcome struct {
	Kind      OutcomeKind
	Claims    *Claims
	Rejection RejectionKind
	Err       error
}

// Authenticated reports whether the outcome should populate a security context.
func (o Outcome) Authenticated() bool {
	return o.Kind == OutcomeValid
}

// Label returns a short metrics/log label, e.g. "rejected:expired".
func (o Outcome) Label() string {
	if o.Kind == OutcomeRejected {
		return o.Kind.String() + ":" + o.Rejection.String()
	}
	return o.Kind.String()
}

func noCredential() Outcome {
	return Outcome{Kind: OutcomeNoCredential}
}

func rejected(kind RejectionKind, err error) Outcome {
	return Outcome{Kind: OutcomeRejected, Rejection: kind, Err: err}
}

func internalFailure(err error) Outcome {
	return Outcome{Kind: OutcomeInternalFailure, Err: err}
}
