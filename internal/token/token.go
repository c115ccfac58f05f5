// Package token reads the claims of the bearer credential issued at login.
//
// Nothing here verifies signatures; the backend is the only authority on
// whether a token is valid. The client only needs the subject to know which
// user record to fetch.
package token

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Info is what the client can read from a token without verifying it
type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DecodeSubject returns the "sub" claim of a three segment token. Malformed
// tokens yield ("", false).
func DecodeSubject(raw string) (string, bool) {
	claims, ok := parse(raw)
	if !ok {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// Claims returns subject and timing claims for display. Absent timing claims
// are left zero.
func Claims(raw string) (Info, bool) {
	sub, ok := DecodeSubject(raw)
	if !ok {
		return Info{}, false
	}
	claims, _ := parse(raw)

	info := Info{Subject: sub}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}

// parse reads the payload segment only. The header and signature are not
// looked at, so a token with an unknown or missing alg still yields claims.
func parse(raw string) (jwt.MapClaims, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 3 {
		return nil, false
	}

	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}
	return claims, true
}
