package request

// RegisterRequest is the request body for registering a member
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	OrgSlug     string `json:"org_slug,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateOrgRequest is the request body for creating an organization
type CreateOrgRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SetRoleRequest is the request body for setting a member's role
type SetRoleRequest struct {
	Role string `json:"role"`
}

// UploadReportRequest is the request body for uploading a strengths report
type UploadReportRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// CreateChallengeRequest is the request body for creating a challenge
type CreateChallengeRequest struct {
	Title        string `json:"title"`
	WinCondition string `json:"win_condition,omitempty"`
	BoardSize    int    `json:"board_size,omitempty"`
}

// ClaimSquareRequest is the request body for claiming a board square
type ClaimSquareRequest struct {
	Row              int    `json:"row"`
	Col              int    `json:"col"`
	ClaimingMemberID string `json:"claiming_member_id"`
}

// ChatCommandRequest is the request body for an inbound chat integration command
type ChatCommandRequest struct {
	MemberID string `json:"member_id"`
	Text     string `json:"text"`
}
