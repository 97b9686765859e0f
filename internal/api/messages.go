package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caresync/hospital-api/internal/message"
)

func sendMessageHandler(svc *message.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req message.SendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "could not parse request body")
			return
		}

		if _, err := svc.Send(r.Context(), req); err != nil {
			if errors.Is(err, message.ErrValidation) {
				writeError(w, http.StatusBadRequest, "Please fill the full form!")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Success: true,
			Message: "Message sent successfully!",
		})
	}
}

func listMessagesHandler(svc *message.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, MessageListResponse{
			Success:  true,
			Messages: msgs,
		})
	}
}

func deleteMessageHandler(svc *message.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, message.ErrMessageNotFound) {
				writeError(w, http.StatusNotFound, "Message not found!")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Success: true,
			Message: "Message deleted successfully!",
		})
	}
}
