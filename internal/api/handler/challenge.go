package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strengthsync/strengthsync/internal/api/middleware"
	"github.com/strengthsync/strengthsync/internal/api/request"
	"github.com/strengthsync/strengthsync/internal/api/response"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/auth"
	"github.com/strengthsync/strengthsync/internal/services/challenge"
	"github.com/strengthsync/strengthsync/internal/services/org"
)

// ChallengeHandler handles challenge endpoints
type ChallengeHandler struct {
	challenges challenge.ControllerInterface
	orgService *org.Service
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challenges challenge.ControllerInterface, orgService *org.Service) *ChallengeHandler {
	return &ChallengeHandler{
		challenges: challenges,
		orgService: orgService,
	}
}

// Create handles POST /api/v1/orgs/{orgId}/challenges
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	orgID := model.OrgID(mux.Vars(r)["orgId"])

	if err := auth.RequireManager(session, orgID); err != nil {
		WriteError(w, err)
		return
	}

	var req request.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}

	rules := model.ChallengeRules{
		WinCondition: req.WinCondition,
		BoardSize:    req.BoardSize,
	}

	created, err := h.challenges.Create(r.Context(), orgID, session.MemberID, req.Title, rules)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ChallengeFromModel(created))
}

// List handles GET /api/v1/orgs/{orgId}/challenges
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	orgID := model.OrgID(mux.Vars(r)["orgId"])

	if err := auth.HasRole(session, orgID, model.RoleOwner, model.RoleAdmin, model.RoleMember); err != nil {
		WriteError(w, err)
		return
	}

	challenges, err := h.challenges.ListChallenges(r.Context(), orgID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := make([]response.Challenge, len(challenges))
	for i, c := range challenges {
		resp[i] = response.ChallengeFromModel(c)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/challenges/{challengeId}
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(found))
}

// Activate handles POST /api/v1/challenges/{challengeId}/activate
func (h *ChallengeHandler) Activate(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := auth.RequireManager(session, found.OrgID); err != nil {
		WriteError(w, err)
		return
	}

	activated, err := h.challenges.Activate(r.Context(), found.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(activated))
}

// Complete handles POST /api/v1/challenges/{challengeId}/complete
func (h *ChallengeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := auth.RequireManager(session, found.OrgID); err != nil {
		WriteError(w, err)
		return
	}

	completed, err := h.challenges.Complete(r.Context(), found.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(completed))
}

// Archive handles POST /api/v1/challenges/{challengeId}/archive
func (h *ChallengeHandler) Archive(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}
	if err := auth.RequireManager(session, found.OrgID); err != nil {
		WriteError(w, err)
		return
	}

	archived, err := h.challenges.Archive(r.Context(), found.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(archived))
}

// Join handles POST /api/v1/challenges/{challengeId}/join
func (h *ChallengeHandler) Join(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}

	participant, err := h.challenges.Join(r.Context(), found.ID, session.MemberID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ParticipantFromModel(participant))
}

// GetProgress handles GET /api/v1/challenges/{challengeId}/progress
func (h *ChallengeHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}

	participant, err := h.challenges.GetParticipant(r.Context(), found.ID, session.MemberID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantFromModel(participant))
}

// Claim handles POST /api/v1/challenges/{challengeId}/claim
func (h *ChallengeHandler) Claim(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ClaimSquareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.ClaimingMemberID == "" {
		WriteError(w, NewInvalidRequestError("claiming_member_id is required"))
		return
	}

	result, err := h.challenges.ClaimSquare(
		r.Context(),
		found.ID,
		session.MemberID,
		req.Row,
		req.Col,
		model.MemberID(req.ClaimingMemberID),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClaimResponseFromResult(result))
}

// Leaderboard handles GET /api/v1/challenges/{challengeId}/leaderboard
func (h *ChallengeHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	found, err := h.loadForMember(r, session)
	if err != nil {
		WriteError(w, err)
		return
	}

	participants, err := h.challenges.Leaderboard(r.Context(), found.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	entries := make([]response.LeaderboardEntry, len(participants))
	for i, p := range participants {
		name := string(p.MemberID)
		if m, err := h.orgService.GetMember(r.Context(), found.OrgID, p.MemberID); err == nil {
			name = m.DisplayName
		}
		entries[i] = response.LeaderboardEntry{
			Rank:        i + 1,
			MemberID:    string(p.MemberID),
			DisplayName: name,
			Score:       p.Score,
			HasWon:      p.Progress.HasWon,
			CompletedAt: p.CompletedAt,
		}
	}
	response.JSON(w, http.StatusOK, entries)
}

// loadForMember resolves the challenge from the route and checks that the
// session's member belongs to its organization
func (h *ChallengeHandler) loadForMember(r *http.Request, session *auth.Session) (*model.Challenge, error) {
	challengeID := model.ChallengeID(mux.Vars(r)["challengeId"])

	found, err := h.challenges.GetChallenge(r.Context(), challengeID)
	if err != nil {
		return nil, err
	}
	if err := auth.HasRole(session, found.OrgID, model.RoleOwner, model.RoleAdmin, model.RoleMember); err != nil {
		return nil, err
	}
	return found, nil
}
