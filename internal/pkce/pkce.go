// Package pkce generates RFC 7636 verifier/challenge pairs for providers
// that bind the authorization code to a client secret of the browser flow.
package pkce

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// Method is the code challenge transform sent to the provider
type Method string

const (
	MethodS256  Method = "S256"
	MethodPlain Method = "plain"
)

// Verifier length bounds from RFC 7636 section 4.1
const (
	MinVerifierLength = 43
	MaxVerifierLength = 128
)

var (
	ErrUnsupportedMethod = errors.New("unsupported PKCE challenge method")
	ErrInvalidVerifier   = errors.New("invalid PKCE code verifier")
)

// Pair is one verifier and the challenge derived from it
type Pair struct {
	Verifier  string
	Challenge string
	Method    Method
}

// Generate creates a verifier from 32 bytes of crypto/rand output and derives
// its challenge. A broken system random source panics inside x/oauth2.
func Generate(method Method) (*Pair, error) {
	verifier := oauth2.GenerateVerifier()
	challenge, err := Challenge(verifier, method)
	if err != nil {
		return nil, err
	}
	return &Pair{
		Verifier:  verifier,
		Challenge: challenge,
		Method:    method,
	}, nil
}

// Challenge derives the challenge for a verifier. It is deterministic.
func Challenge(verifier string, method Method) (string, error) {
	if !ValidVerifier(verifier) {
		return "", ErrInvalidVerifier
	}
	switch method {
	case MethodS256:
		return oauth2.S256ChallengeFromVerifier(verifier), nil
	case MethodPlain:
		return verifier, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}

// ValidVerifier reports whether v has the RFC 7636 length and only
// unreserved characters [A-Z] / [a-z] / [0-9] / "-" / "." / "_" / "~".
func ValidVerifier(v string) bool {
	if len(v) < MinVerifierLength || len(v) > MaxVerifierLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-', c == '.', c == '_', c == '~':
		default:
			return false
		}
	}
	return true
}
