package handler

import (
	"encoding/json"
	"net/http"

	"github.com/strengthsync/strengthsync/internal/api/request"
	"github.com/strengthsync/strengthsync/internal/api/response"
	"github.com/strengthsync/strengthsync/internal/model"
	"github.com/strengthsync/strengthsync/internal/services/notify"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// BotHandler handles the chat platform's inbound command webhook.
// The chat integration authenticates at the transport level (shared
// webhook URL), so commands carry the member ID directly rather than
// a session token.
type BotHandler struct {
	bot     *notify.Bot
	storage storage.Storage
}

// NewBotHandler creates a new chat command handler
func NewBotHandler(bot *notify.Bot, storage storage.Storage) *BotHandler {
	return &BotHandler{
		bot:     bot,
		storage: storage,
	}
}

// Command handles POST /api/v1/integrations/chat/commands
func (h *BotHandler) Command(w http.ResponseWriter, r *http.Request) {
	var req request.ChatCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.MemberID == "" {
		WriteError(w, NewInvalidRequestError("member_id is required"))
		return
	}

	member, err := h.storage.GetMember(r.Context(), model.MemberID(req.MemberID))
	if err != nil {
		WriteError(w, err)
		return
	}
	if !member.IsActive() {
		WriteError(w, model.ErrMemberInactive)
		return
	}

	reply, err := h.bot.HandleCommand(r.Context(), member, req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChatCommandResponse{Text: reply})
}
