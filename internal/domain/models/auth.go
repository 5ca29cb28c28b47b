package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims                          // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                   `json:"email"`
	Role                 string                   `json:"role"` // "authenticated" or "anon"
	UserMetadata         map[string]interface{}   `json:"user_metadata"`
	AppMetadata          map[string]interface{}   `json:"app_metadata"`
	AAL                  string                   `json:"aal"` // Authentication Assurance Level
	AMR                  []map[string]interface{} `json:"amr"` // Authentication Method References
	SessionID            string                   `json:"session_id"`
	IsAnonymous          bool                     `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// GivenName returns the user's first name from user metadata, if present.
func (c *SupabaseClaims) GivenName() string {
	return c.metadataString("given_name")
}

// FamilyName returns the user's last name from user metadata, if present.
func (c *SupabaseClaims) FamilyName() string {
	return c.metadataString("family_name")
}

// FullName returns the user's display name from user metadata, if present.
func (c *SupabaseClaims) FullName() string {
	return c.metadataString("full_name")
}

func (c *SupabaseClaims) metadataString(key string) string {
	if c.UserMetadata == nil {
		return ""
	}
	s, _ := c.UserMetadata[key].(string)
	return s
}
