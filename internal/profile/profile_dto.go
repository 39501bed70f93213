package profile

import "time"

const SelfDemotionNotice = "Your admin privileges have been revoked. You will be logged out shortly."

// RoleFilterNone lists profiles that have no role assigned.
const RoleFilterNone = "none"

type ListFilter struct {
	Role string `form:"role" binding:"omitempty,oneof=admin user none"`
}

type CreateProfileRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	FullName   string  `json:"full_name" binding:"required,max=255"`
	Role       string  `json:"role" binding:"required,oneof=admin user"`
	NationalID *string `json:"national_id" binding:"omitempty,len=16,numeric"`
}

type UpdateProfileRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	NationalID *string `json:"national_id" binding:"omitempty,len=16,numeric"`
}

type UpdateSelfRequest struct {
	FullName *string `json:"full_name" binding:"required,min=1,max=255"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

type ProfileResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   *string   `json:"full_name"`
	Role       *string   `json:"role"`
	NationalID *string   `json:"national_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateProfileResponse struct {
	Profile           ProfileResponse `json:"profile"`
	TemporaryPassword string          `json:"temporary_password"`
}

// RoleChangeResult tells the client whether the acting admin just removed
// their own admin role and when their session ends.
type RoleChangeResult struct {
	Profile       ProfileResponse `json:"profile"`
	SelfDemotion  bool            `json:"self_demotion"`
	SignedOutInMs int64           `json:"signed_out_in_ms,omitempty"`
	SignOutAt     *time.Time      `json:"sign_out_at,omitempty"`
}

func mapToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID.String(),
		Email:      p.Email,
		FullName:   p.FullName,
		Role:       p.Role,
		NationalID: p.NationalID,
		CreatedAt:  p.CreatedAt,
	}
}

func mapToListResponse(profiles []Profile) []ProfileResponse {
	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp
}
