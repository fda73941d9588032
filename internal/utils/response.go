package utils

import (
	"encoding/json"
	"net/http"

	"github.com/MassBabyGeek/SnapQuest-backend/internal/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Success répond 200 avec les données fournies
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error répond avec un message utilisateur et log l'erreur technique
func Error(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		logger.Error("%s: %v", message, err)
	} else {
		logger.Error("%s", message)
	}
	JSON(w, status, APIResponse{Success: false, Error: message})
}

// ErrorSimple répond avec un message utilisateur sans erreur technique
func ErrorSimple(w http.ResponseWriter, status int, message string) {
	Error(w, status, message, nil)
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}
