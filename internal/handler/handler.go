package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/readroom-dev/readroom/internal/config"
	"github.com/readroom-dev/readroom/internal/errors"
	"github.com/readroom-dev/readroom/internal/logger"
	"github.com/readroom-dev/readroom/internal/service"
	"github.com/readroom-dev/readroom/internal/utils"
)

type Handler struct {
	auth  service.AuthService
	forum service.ForumService
	cfg   *config.Config
}

func New(auth service.AuthService, forum service.ForumService, cfg *config.Config) *Handler {
	return &Handler{auth, forum, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeErrorAndStatusCode(w http.ResponseWriter, err error) {
	utils.WriteErrorAndStatusCode(w, err)
}

func loadAndValidateRequestBody(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}
