package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"forumd/pkg/logger"
	"forumd/pkg/models"
	"forumd/pkg/service"
	"forumd/pkg/utils"
	"forumd/pkg/validation"
)

// Fixed client-facing messages. Internal fault detail is logged, never
// returned.
const (
	msgRecordNotFound = "record not found"
	msgCreateFailed   = "failed to create record"
)

// Conversations exposes the question/reply endpoints. The service is
// injected at construction; handlers hold no other state.
type Conversations struct {
	svc service.Conversation
}

// NewConversations returns the handler set bound to the given service.
func NewConversations(svc service.Conversation) *Conversations {
	return &Conversations{svc: svc}
}

// Register registers the conversation routes on the provided router.
func (h *Conversations) Register(r *mux.Router) {
	r.HandleFunc("/questions", h.listQuestions).Methods(http.MethodGet)
	r.HandleFunc("/questions", h.createQuestion).Methods(http.MethodPost)
	r.HandleFunc("/questions/{id}", h.getQuestion).Methods(http.MethodGet)
	r.HandleFunc("/questions/{id}/reply", h.createReply).Methods(http.MethodPost)
}

// listQuestions handles GET /questions. Returns every question as its
// short view, preserving store order.
func (h *Conversations) listQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := h.svc.ListQuestions(r.Context())
	if err != nil {
		logger.Error("list_questions_failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	out := make([]models.QuestionShort, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ToShort())
	}
	logger.Info("questions_listed", "count", len(out))
	_ = utils.JSONWrite(w, http.StatusOK, out)
}

// getQuestion handles GET /questions/{id}. Returns the full question with
// its replies in creation order. An unknown id maps to 400 with the fixed
// not-found message; the contract deliberately uses 400, not 404.
func (h *Conversations) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	q, err := h.svc.FindQuestion(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Error("get_question_not_found", "id", id)
			utils.JSONError(w, http.StatusBadRequest, msgRecordNotFound)
			return
		}
		logger.Error("get_question_failed", "id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	logger.Info("question_fetched", "id", id, "replies", len(q.Replies))
	_ = utils.JSONWrite(w, http.StatusOK, q)
}

// createQuestion handles POST /questions. The body is a message payload;
// the store assigns the id.
func (h *Conversations) createQuestion(w http.ResponseWriter, r *http.Request) {
	msg, ok := decodeMessage(w, r)
	if !ok {
		return
	}
	q, err := h.svc.CreateQuestion(r.Context(), msg)
	if err != nil {
		logger.Error("create_question_failed", "content", msg.Content, "error", err)
		utils.JSONError(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	logger.Info("question_created", "id", q.ID)
	_ = utils.JSONWrite(w, http.StatusCreated, q.ToShort())
}

// createReply handles POST /questions/{id}/reply. Two-phase: the parent is
// resolved first and any resolve failure ends the request before a write is
// attempted, so a reply is never created against a nonexistent question.
func (h *Conversations) createReply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	msg, ok := decodeMessage(w, r)
	if !ok {
		return
	}

	q, err := h.svc.FindQuestion(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Error("create_reply_parent_not_found", "question", id)
			utils.JSONError(w, http.StatusBadRequest, msgRecordNotFound)
			return
		}
		logger.Error("create_reply_parent_lookup_failed", "question", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	logger.Info("reply_parent_resolved", "question", id)

	rep, err := h.svc.CreateReplyForQuestion(r.Context(), q, msg)
	if err != nil {
		logger.Error("create_reply_failed", "question", id, "content", msg.Content, "error", err)
		utils.JSONError(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	logger.Info("reply_created", "question", id, "id", rep.ID)
	_ = utils.JSONWrite(w, http.StatusCreated, rep.ToShort())
}

// pathID extracts the numeric {id} path variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		logger.Warn("invalid_question_id", "raw", raw)
		utils.JSONError(w, http.StatusBadRequest, "invalid question id")
		return 0, false
	}
	return id, true
}

// decodeMessage decodes and validates the message payload, writing a 400 on
// failure.
func decodeMessage(w http.ResponseWriter, r *http.Request) (models.Message, bool) {
	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		logger.Warn("invalid_message_body", "error", err)
		utils.JSONError(w, http.StatusBadRequest, "invalid json")
		return msg, false
	}
	if err := validation.ValidateMessage(msg); err != nil {
		logger.Warn("message_rejected", "error", err)
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return msg, false
	}
	return msg, true
}
