package leave

import (
	"time"

	"go-leaveflow/internal/access"
)

const dateLayout = "2006-01-02"

// Actor is the authenticated caller as seen by the leave workflow.
type Actor struct {
	UserID string
	Role   *access.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role != nil && *a.Role == access.RoleAdmin
}

// ApplicantRef only carries the id. The snapshot is always rebuilt from the
// stored employee record.
type ApplicantRef struct {
	ID string `json:"id" binding:"required"`
}

type LeaveRequest struct {
	User      ApplicantRef `json:"user"`
	StartDate string       `json:"startDate" binding:"required"`
	EndDate   string       `json:"endDate" binding:"required"`
	Reason    string       `json:"reason" binding:"required"`
	Type      string       `json:"type" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type ListFilter struct {
	NationalID string `form:"nationalId" binding:"omitempty,max=16"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (f ListFilter) Paginated() bool { return f.Page > 0 || f.PageSize > 0 }

type ListResult struct {
	Items    []LeaveResponse
	Total    int64
	Page     int
	PageSize int
}

type ApplicantSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Age        *int   `json:"age"`
	NationalID string `json:"nationalId"`
	Gender     string `json:"gender"`
	Status     string `json:"status"`
}

type LeaveResponse struct {
	ID              string            `json:"id"`
	User            ApplicantSnapshot `json:"user"`
	StartDate       string            `json:"startDate"`
	EndDate         string            `json:"endDate"`
	Reason          string            `json:"reason"`
	Type            string            `json:"type"`
	SubmittedDate   string            `json:"submittedDate"`
	Status          string            `json:"status"`
	RejectionReason *string           `json:"rejectionReason"`
	DecidedBy       *string           `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time        `json:"decidedAt,omitempty"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID: l.ID.String(),
		User: ApplicantSnapshot{
			ID:         l.ApplicantID.String(),
			Name:       l.ApplicantName,
			Address:    l.ApplicantAddress,
			Age:        l.ApplicantAge,
			NationalID: l.ApplicantNationalID,
			Gender:     l.ApplicantGender,
			Status:     l.ApplicantStatus,
		},
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		Reason:          l.Reason,
		Type:            l.LeaveType,
		SubmittedDate:   l.SubmittedDate.Format(dateLayout),
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		DecidedAt:       l.DecidedAt,
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
