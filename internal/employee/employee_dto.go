package employee

import "strings"

// EmployeeRequest is used for both create and full update.
type EmployeeRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Address    string  `json:"address" binding:"required,min=5,max=200"`
	Age        *int    `json:"age" binding:"omitempty,min=0,max=120"`
	NationalID string  `json:"nationalId" binding:"required,len=16,numeric"`
	Status     string  `json:"status" binding:"required,oneofci=single married divorced widowed"`
	Gender     string  `json:"gender" binding:"required,oneofci=male female other"`
	Email      *string `json:"email" binding:"omitempty,email"`
}

// Normalize trims every field and lower cases the enumerations and email.
func (r EmployeeRequest) Normalize() EmployeeRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		if email == "" {
			r.Email = nil
		} else {
			r.Email = &email
		}
	}
	return r
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Age        *int    `json:"age"`
	NationalID string  `json:"nationalId"`
	Status     string  `json:"status"`
	Gender     string  `json:"gender"`
	Email      *string `json:"email"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Address:    e.Address,
		Age:        e.Age,
		NationalID: e.NationalID,
		Status:     e.Status,
		Gender:     e.Gender,
		Email:      e.Email,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}

func (e *Employee) apply(req EmployeeRequest) {
	e.Name = req.Name
	e.Address = req.Address
	e.Age = req.Age
	e.NationalID = req.NationalID
	e.Status = req.Status
	e.Gender = req.Gender
	e.Email = req.Email
}
