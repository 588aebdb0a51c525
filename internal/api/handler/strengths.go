package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strengthsync/strengthsync/internal/api/middleware"
	"github.com/strengthsync/strengthsync/internal/api/request"
	"github.com/strengthsync/strengthsync/internal/api/response"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/org"
	"github.com/strengthsync/strengthsync/internal/services/report"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
)

// StrengthsHandler handles assessment and report endpoints
type StrengthsHandler struct {
	strengthsService *strengths.Service
	reportService    *report.Service
	orgService       *org.Service
}

// NewStrengthsHandler creates a new strengths handler
func NewStrengthsHandler(strengthsService *strengths.Service, reportService *report.Service, orgService *org.Service) *StrengthsHandler {
	return &StrengthsHandler{
		strengthsService: strengthsService,
		reportService:    reportService,
		orgService:       orgService,
	}
}

// UploadReport handles POST /api/v1/strengths/report
func (h *StrengthsHandler) UploadReport(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.UploadReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Content == "" {
		WriteError(w, NewInvalidRequestError("content is required"))
		return
	}

	assessment, err := h.reportService.Upload(r.Context(), member.ID, req.Filename, []byte(req.Content))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AssessmentFromModel(assessment))
}

// GetMine handles GET /api/v1/strengths/me
func (h *StrengthsHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	assessment, err := h.strengthsService.GetAssessment(r.Context(), member.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AssessmentFromModel(assessment))
}

// GetForMember handles GET /api/v1/strengths/{memberId}
// Members may only view strengths of members in their own organization.
func (h *StrengthsHandler) GetForMember(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())
	targetID := model.MemberID(mux.Vars(r)["memberId"])

	if member.OrgID == "" {
		WriteError(w, model.ErrNotOrgMember)
		return
	}

	// GetMember enforces that the target belongs to the caller's org
	if _, err := h.orgService.GetMember(r.Context(), member.OrgID, targetID); err != nil {
		WriteError(w, err)
		return
	}

	assessment, err := h.strengthsService.GetAssessment(r.Context(), targetID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AssessmentFromModel(assessment))
}
