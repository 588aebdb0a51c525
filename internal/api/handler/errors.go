package handler

import (
	"net/http"

	"github.com/strengthsync/strengthsync/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeForbidden           = apierr.CodeForbidden
	CodeInvalidCredentials  = apierr.CodeInvalidCredentials
	CodeEmailExists         = apierr.CodeEmailExists
	CodeOrgNotFound         = apierr.CodeOrgNotFound
	CodeOrgSlugTaken        = apierr.CodeOrgSlugTaken
	CodeMemberNotFound      = apierr.CodeMemberNotFound
	CodeMemberInactive      = apierr.CodeMemberInactive
	CodeNotOrgMember        = apierr.CodeNotOrgMember
	CodeLastOwner           = apierr.CodeLastOwner
	CodeInvalidRole         = apierr.CodeInvalidRole
	CodeNoAssessment        = apierr.CodeNoAssessment
	CodeMalformedReport     = apierr.CodeMalformedReport
	CodeUnknownTheme        = apierr.CodeUnknownTheme
	CodeChallengeNotFound   = apierr.CodeChallengeNotFound
	CodeChallengeNotActive  = apierr.CodeChallengeNotActive
	CodeChallengeNotDraft   = apierr.CodeChallengeNotDraft
	CodeAlreadyJoined       = apierr.CodeAlreadyJoined
	CodeNotParticipant      = apierr.CodeNotParticipant
	CodeInvalidBoardSize    = apierr.CodeInvalidBoardSize
	CodeInvalidPosition     = apierr.CodeInvalidPosition
	CodeAlreadyMarked       = apierr.CodeAlreadyMarked
	CodeFreeSpaceClaim      = apierr.CodeFreeSpaceClaim
	CodeIneligibleMember    = apierr.CodeIneligibleMember
	CodeSelfClaimDisallowed = apierr.CodeSelfClaimDisallowed
	CodeBadgeNotFound       = apierr.CodeBadgeNotFound
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
