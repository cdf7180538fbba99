package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"careerpath/internal/domain"
	"careerpath/internal/middleware"
	"careerpath/internal/providers/prompt"
	"careerpath/internal/sqlinline"
)

type chatSendRequest struct {
	Message string `json:"message"`
}

// ChatSend appends the user's message to the transcript, asks the generator
// for a reply with the prior transcript as history, and stores both turns.
// The stored transcript is capped at the most recent turns.
func (a *App) ChatSend(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "message is required")
		return
	}

	chat, err := a.loadChat(r, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("select chat transcript")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load chat")
		return
	}

	history := make([]prompt.ChatTurn, 0, len(chat.Messages))
	for _, m := range chat.Messages {
		history = append(history, prompt.ChatTurn{Role: string(m.Role), Content: m.Content})
	}

	locale := middleware.LocaleFromContext(r.Context())
	reply, err := a.Generator.Chat(r.Context(), history, req.Message, locale)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("chat completion")
		if errors.Is(err, domain.ErrMalformedResponse) {
			a.error(w, http.StatusInternalServerError, "malformed_response", "assistant returned an unusable reply")
			return
		}
		a.error(w, http.StatusInternalServerError, "generation_failed", "assistant reply failed")
		return
	}

	now := time.Now().UTC()
	chat.Messages = append(chat.Messages,
		domain.ChatMessage{Role: domain.ChatRoleUser, Content: req.Message, Timestamp: now},
		domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply, Timestamp: now},
	)
	chat.TrimMessages()

	encoded, err := json.Marshal(chat.Messages)
	if err != nil {
		a.Logger.Error().Err(err).Msg("encode chat transcript")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save chat")
		return
	}
	var chatID string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QUpsertChat, userID, encoded).Scan(&chatID); err != nil {
		a.Logger.Error().Err(err).Msg("upsert chat transcript")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save chat")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"reply": reply})
}

// ChatTranscript returns the stored transcript for the caller.
func (a *App) ChatTranscript(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	chat, err := a.loadChat(r, userID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("select chat transcript")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load chat")
		return
	}
	if chat.Messages == nil {
		chat.Messages = []domain.ChatMessage{}
	}
	a.json(w, http.StatusOK, map[string]any{"messages": chat.Messages})
}

func (a *App) loadChat(r *http.Request, userID string) (*domain.Chat, error) {
	var chat domain.Chat
	chat.UserID = userID
	var encoded []byte
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectChatByUser, userID).Scan(&chat.ID, &encoded)
	if err != nil {
		if isNoRows(err) {
			return &chat, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(encoded, &chat.Messages); err != nil {
		return nil, err
	}
	return &chat, nil
}
