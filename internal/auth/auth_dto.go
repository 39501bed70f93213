package auth

import "time"

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"omitempty,max=255"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SignInResult struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	User        IdentityResponse `json:"user"`
}

type SessionResponse struct {
	User     IdentityResponse `json:"user"`
	Role     *string          `json:"role"`
	Home     string           `json:"home"`
	Pages    []string         `json:"pages"`
	IssuedAt time.Time        `json:"issued_at"`
}

// ProvisionedIdentity is returned once to an admin who created an account
// on someone's behalf.
type ProvisionedIdentity struct {
	ID                string
	Email             string
	TemporaryPassword string
}

// ProfileSeed is what a fresh identity needs mirrored onto its profile.
type ProfileSeed struct {
	UserID   string
	Email    string
	FullName *string
	Role     *string
}
