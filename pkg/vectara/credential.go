package vectara

import "encoding/binary"

// Header and metadata names understood by the platform.
const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "x-api-key"
	HeaderCustomerID    = "customer-id"

	MetadataCustomerID = "customer-id-bin"
	MetadataCorpusID   = "corpus-id-bin"
)

type credentialKind int

const (
	credentialNone credentialKind = iota
	credentialBearer
	credentialAPIKey
)

// Credential authenticates a single call, either with an OAuth2 bearer token
// or with a platform API key. The zero value carries no credential.
type Credential struct {
	kind   credentialKind
	secret string
}

// Bearer returns a credential that sends token as an OAuth2 bearer token.
func Bearer(token string) Credential {
	return Credential{kind: credentialBearer, secret: token}
}

// APIKey returns a credential that sends key in the x-api-key header.
func APIKey(key string) Credential {
	return Credential{kind: credentialAPIKey, secret: key}
}

// IsZero reports whether no credential is set.
func (c Credential) IsZero() bool { return c.kind == credentialNone || c.secret == "" }

// Header returns the header name and value for the credential. Header names
// are returned in canonical HTTP form; gRPC callers lower-case them.
func (c Credential) Header() (name, value string) {
	switch c.kind {
	case credentialBearer:
		return HeaderAuthorization, "Bearer " + c.secret
	case credentialAPIKey:
		return HeaderAPIKey, c.secret
	default:
		return "", ""
	}
}

// Scheme names the credential type for logs.
func (c Credential) Scheme() string {
	switch c.kind {
	case credentialBearer:
		return "bearer"
	case credentialAPIKey:
		return "api_key"
	default:
		return "none"
	}
}

func (c Credential) String() string { return c.Scheme() + "(redacted)" }

func (c Credential) GoString() string { return c.String() }

// PackID encodes an id as the platform's binary metadata value: a big-endian
// signed 64-bit integer.
func PackID(id int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnpackID is the inverse of PackID.
func UnpackID(b []byte) (int64, bool) {
	if len(b) != 8 {
		return 0, false
	}
	return int64(binary.BigEndian.Uint64(b)), true
}
