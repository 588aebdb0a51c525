package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeOrgNotFound         = "ORG_NOT_FOUND"
	CodeOrgSlugTaken        = "ORG_SLUG_TAKEN"
	CodeMemberNotFound      = "MEMBER_NOT_FOUND"
	CodeMemberInactive      = "MEMBER_INACTIVE"
	CodeNotOrgMember        = "NOT_ORG_MEMBER"
	CodeLastOwner           = "LAST_OWNER"
	CodeInvalidRole         = "INVALID_ROLE"
	CodeNoAssessment        = "NO_ASSESSMENT"
	CodeMalformedReport     = "MALFORMED_REPORT"
	CodeUnknownTheme        = "UNKNOWN_THEME"
	CodeChallengeNotFound   = "CHALLENGE_NOT_FOUND"
	CodeChallengeNotActive  = "CHALLENGE_NOT_ACTIVE"
	CodeChallengeNotDraft   = "CHALLENGE_NOT_DRAFT"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeNotParticipant      = "NOT_PARTICIPANT"
	CodeInvalidBoardSize    = "INVALID_BOARD_SIZE"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeAlreadyMarked       = "ALREADY_MARKED"
	CodeFreeSpaceClaim      = "FREE_SPACE_NOT_CLAIMABLE"
	CodeIneligibleMember    = "INELIGIBLE_MEMBER"
	CodeSelfClaimDisallowed = "SELF_CLAIM_DISALLOWED"
	CodeBadgeNotFound       = "BADGE_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrOrgNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeOrgNotFound, "Organization not found"}}
	case errors.Is(err, model.ErrOrgSlugTaken):
		return &httpError{http.StatusConflict, APIError{CodeOrgSlugTaken, "Organization slug already taken"}}
	case errors.Is(err, model.ErrMemberNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMemberNotFound, "Member not found"}}
	case errors.Is(err, model.ErrMemberInactive):
		return &httpError{http.StatusForbidden, APIError{CodeMemberInactive, "Member is deactivated"}}
	case errors.Is(err, model.ErrNotOrgMember):
		return &httpError{http.StatusForbidden, APIError{CodeNotOrgMember, "Not a member of this organization"}}
	case errors.Is(err, model.ErrLastOwner):
		return &httpError{http.StatusConflict, APIError{CodeLastOwner, "Organization must retain at least one owner"}}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Invalid member role"}}
	case errors.Is(err, model.ErrNoAssessment):
		return &httpError{http.StatusNotFound, APIError{CodeNoAssessment, "Member has no strength assessment"}}
	case errors.Is(err, model.ErrMalformedReport):
		return &httpError{http.StatusBadRequest, APIError{CodeMalformedReport, "Report could not be parsed"}}
	case errors.Is(err, model.ErrUnknownTheme):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownTheme, "Unknown strength theme"}}
	case errors.Is(err, model.ErrChallengeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeChallengeNotFound, "Challenge not found"}}
	case errors.Is(err, model.ErrChallengeNotActive):
		return &httpError{http.StatusConflict, APIError{CodeChallengeNotActive, "Challenge is not active"}}
	case errors.Is(err, model.ErrChallengeNotDraft):
		return &httpError{http.StatusConflict, APIError{CodeChallengeNotDraft, "Challenge is not in draft"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this challenge"}}
	case errors.Is(err, model.ErrNotParticipant):
		return &httpError{http.StatusNotFound, APIError{CodeNotParticipant, "Not a participant in this challenge"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, "Board size must be 3 or 5"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Position is outside the board"}}
	case errors.Is(err, model.ErrAlreadyMarked):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyMarked, "Square is already marked"}}
	case errors.Is(err, model.ErrFreeSpaceClaim):
		return &httpError{http.StatusBadRequest, APIError{CodeFreeSpaceClaim, "The free space cannot be claimed"}}
	case errors.Is(err, model.ErrIneligibleMember):
		// The wrapped message carries the theme the claim named, so surface
		// it rather than a generic string.
		return &httpError{http.StatusBadRequest, APIError{CodeIneligibleMember, err.Error()}}
	case errors.Is(err, model.ErrSelfClaimDisallowed):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfClaimDisallowed, "Cannot claim a square using yourself as evidence"}}
	case errors.Is(err, model.ErrBadgeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBadgeNotFound, "Badge not found"}}

	// Map auth errors
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrForbidden):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient permissions"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
