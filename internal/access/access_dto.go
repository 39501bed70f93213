package access

const (
	ReasonNoRole         = "no_role"
	ReasonPageRestricted = "page_restricted"
	ReasonUnknownPage    = "unknown_page"
)

type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type PagesResponse struct {
	Role  *Role    `json:"role"`
	Home  string   `json:"home"`
	Pages []string `json:"pages"`
}

type PageCheckResponse struct {
	Page    string `json:"page"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
