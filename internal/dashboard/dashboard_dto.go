package dashboard

// NoneKey buckets profiles without a role.
const NoneKey = "none"

type Bucket struct {
	Key        string  `json:"key"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ProfileStats struct {
	Total int64    `json:"total"`
	Roles []Bucket `json:"roles"`
}

type EmployeeStats struct {
	Total         int64    `json:"total"`
	Gender        []Bucket `json:"gender"`
	MaritalStatus []Bucket `json:"maritalStatus"`
}

type LeaveStats struct {
	Total    int64    `json:"total"`
	ByStatus []Bucket `json:"byStatus"`
}

type StatsResponse struct {
	Profiles  ProfileStats  `json:"profiles"`
	Employees EmployeeStats `json:"employees"`
	Leaves    LeaveStats    `json:"leaves"`
}
