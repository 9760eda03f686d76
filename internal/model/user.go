package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Accounts are created on first OAuth login from the provider
// profile; there are no local credentials.  IsAdmin grants the capability
// to delete any booking regardless of ownership.
//
// Fields:
//
//	ID         – primary key identifier of the user.
//	ProviderID – identifier assigned by the OAuth provider (unique).
//	Email      – email address from the provider profile.
//	Name       – display name from the provider profile.
//	IsAdmin    – whether the account holds the administrative capability.
//	CreatedAt  – timestamp of creation.
//	UpdatedAt  – timestamp of last profile refresh.
type User struct {
	ID         uint64    // users.id
	ProviderID string    // users.provider_id
	Email      string    // users.email
	Name       string    // users.name
	IsAdmin    bool      // users.is_admin
	CreatedAt  time.Time // users.created_at
	UpdatedAt  time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
