// Package session owns the authentication token lifecycle on the client:
// structural token decoding, validity evaluation, the screen authorization
// decision, periodic revalidation, and the persisted session marker store.
//
// Token decoding here is deliberately unverified: the backend is the only
// party holding the signing key, so the client treats the signature segment
// as opaque and inspects structure and claims only.
package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventora/backoffice/internal/common"
)

// Claim names recognized by the client. The backend has issued tokens with
// different subject claim names over time, so all three are accepted.
const (
	claimSubject   = "sub"
	claimNameID    = "nameid"
	claimUserID    = "userId"
	claimRole      = "role"
	claimCompanyID = "companyId"
)

// Token is a structurally decoded access token: the JOSE header and the
// claims payload, both as loose maps.
type Token struct {
	Raw    string
	Header map[string]any
	Claims jwt.MapClaims
}

var tokenParser = jwt.NewParser()

// Decode parses raw into header and claim maps without verifying the
// signature. It fails unless raw consists of exactly three dot-separated
// segments whose header and payload are valid base64url-encoded JSON.
// The signature segment is not inspected. Decode is pure; it never consults
// a clock.
func Decode(raw string) (*Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: token must have exactly three segments", common.ErrSessionInvalid)
	}

	headerBytes, err := tokenParser.DecodeSegment(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed header segment: %s", common.ErrSessionInvalid, err)
	}
	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("%w: header is not JSON: %s", common.ErrSessionInvalid, err)
	}

	claimBytes, err := tokenParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed payload segment: %s", common.ErrSessionInvalid, err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(claimBytes, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not JSON: %s", common.ErrSessionInvalid, err)
	}

	return &Token{Raw: raw, Header: header, Claims: claims}, nil
}

// ExpiresAt returns the expiration instant, if the claims carry one.
func (t *Token) ExpiresAt() (time.Time, bool) {
	exp, err := t.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Role returns the role claim, or an empty string.
func (t *Token) Role() string {
	return claimString(t.Claims[claimRole])
}

// Subject returns the first subject-identifying claim found, or an empty
// string when the token carries none.
func (t *Token) Subject() string {
	for _, name := range []string{claimSubject, claimNameID, claimUserID} {
		if v := claimString(t.Claims[name]); v != "" {
			return v
		}
	}
	return ""
}

// CompanyID returns the tenant claim, or an empty string.
func (t *Token) CompanyID() string {
	return claimString(t.Claims[claimCompanyID])
}

// claimString renders a claim value as a string. Numeric ids arrive as JSON
// numbers, so those are formatted rather than rejected.
func claimString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return ""
	}
}

// Validator evaluates token validity against an injectable clock.
type Validator struct {
	clock Clock
}

// NewValidator constructs a Validator. A nil clock means wall-clock time.
func NewValidator(clock Clock) *Validator {
	if clock == nil {
		clock = SystemTime
	}
	return &Validator{clock: clock}
}

// IsValid reports whether raw is a well-formed, unexpired token carrying a
// subject claim and a sane header. The expiry check is strict: a token whose
// expiration instant equals the current time is already expired.
func (v *Validator) IsValid(raw string) bool {
	tok, err := Decode(raw)
	if err != nil {
		return false
	}

	exp, ok := tok.ExpiresAt()
	if !ok {
		return false
	}
	if !exp.After(v.clock.Now()) {
		return false
	}

	if tok.Subject() == "" {
		return false
	}

	_, hasAlg := tok.Header["alg"]
	_, hasTyp := tok.Header["typ"]
	if !hasAlg && !hasTyp {
		return false
	}

	return true
}
