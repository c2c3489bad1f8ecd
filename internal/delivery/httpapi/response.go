package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/repository"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

// Error codes returned in the error envelope.
const (
	codeBadRequest       = "bad_request"
	codeNotFound         = "not_found"
	codeInsufficientData = "insufficient_data"
	codeNoAnswer         = "no_answer_selected"
	codeInvalidState     = "invalid_state"
	codeInternal         = "internal"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps domain errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, status, code, err)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInsufficientData):
		return http.StatusUnprocessableEntity, codeInsufficientData
	case errors.Is(err, entities.ErrNoAnswerSelected):
		return http.StatusConflict, codeNoAnswer
	case errors.Is(err, entities.ErrInvalidTransition):
		return http.StatusConflict, codeInvalidState
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, repository.ErrKanjiNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, entities.ErrInvalidSettings),
		errors.Is(err, entities.ErrAnswerOutOfRange):
		return http.StatusBadRequest, codeBadRequest
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
