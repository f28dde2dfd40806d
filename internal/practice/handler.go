package practice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/speaking-practice/backend/internal/auth"
	"github.com/speaking-practice/backend/internal/models"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the practice endpoints on an authenticated router.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/modules", h.ListModules).Methods("GET")
	r.HandleFunc("/modules/{module}/next", h.NextItem).Methods("GET")
	r.HandleFunc("/modules/{module}/submissions", h.SubmitSpeech).Methods("POST")
	r.HandleFunc("/quiz", h.NewQuiz).Methods("GET")
	r.HandleFunc("/quiz/submissions", h.SubmitQuiz).Methods("POST")
	r.HandleFunc("/report", h.Report).Methods("GET")
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Modules())
}

func (h *Handler) NextItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	item, err := h.service.NextItem(r.Context(), userID, mux.Vars(r)["module"])
	if err != nil {
		h.writeError(w, "NextItem", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) NewQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	count, err := intQueryParam(r.URL.Query(), "count", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "count must be an integer"})
		return
	}

	quiz, err := h.service.NewQuiz(r.Context(), userID, count)
	if err != nil {
		h.writeError(w, "NewQuiz", err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) SubmitSpeech(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.SpeechSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = auth.SessionID(r.Context())
	}

	result, err := h.service.SubmitSpeech(r.Context(), userID, mux.Vars(r)["module"], req)
	if err != nil {
		h.writeError(w, "SubmitSpeech", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = auth.SessionID(r.Context())
	}

	result, err := h.service.SubmitQuiz(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, "SubmitQuiz", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = auth.SessionID(r.Context())
	}

	report, err := h.service.Report(r.Context(), userID, sessionID)
	if err != nil {
		h.writeError(w, "Report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed", "op", op, "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) (int, error) {
	v := query.Get(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}
