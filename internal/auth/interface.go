package auth

import "loft/internal/domain/models"

// JWTVerifier verifies bearer tokens and returns the parsed claims.
// The middleware depends on this interface, not on a concrete verifier,
// so tests can swap in a static one.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
