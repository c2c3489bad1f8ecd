package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

type QuizHandler struct {
	quiz QuizService
}

func NewQuizHandler(quiz QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// POST /api/quizzes
// Creates a session from the defaults overridden by the body. With
// "start": true the session is started right away.
func (h *QuizHandler) Create(c *gin.Context) {
	var req quizSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	settings, err := req.apply(h.quiz.Defaults())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := h.quiz.Create(settings)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.Start {
		if _, err := h.quiz.Start(session.ID()); err != nil {
			h.quiz.Delete(session.ID())
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, newQuizResponse(session))
}

// GET /api/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	session, err := h.quiz.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newQuizResponse(session))
}

// PUT /api/quizzes/:id/settings
func (h *QuizHandler) Configure(c *gin.Context) {
	id := c.Param("id")

	session, err := h.quiz.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var req quizSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	settings, err := req.apply(session.Settings())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.quiz.Configure(id, settings); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newQuizResponse(session))
}

// POST /api/quizzes/:id/start
func (h *QuizHandler) Start(c *gin.Context) {
	session, err := h.quiz.Start(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newQuizResponse(session))
}

// POST /api/quizzes/:id/answer
func (h *QuizHandler) Answer(c *gin.Context) {
	id := c.Param("id")

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	if err := h.quiz.Answer(id, *req.Option); err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondSession(c, id)
}

// POST /api/quizzes/:id/advance
func (h *QuizHandler) Advance(c *gin.Context) {
	id := c.Param("id")

	finished, err := h.quiz.Advance(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := h.quiz.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, advanceResponse{Finished: finished, Quiz: newQuizResponse(session)})
}

// POST /api/quizzes/:id/stop
func (h *QuizHandler) Stop(c *gin.Context) {
	id := c.Param("id")
	if err := h.quiz.Stop(id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondSession(c, id)
}

// POST /api/quizzes/:id/reset
func (h *QuizHandler) Reset(c *gin.Context) {
	id := c.Param("id")
	if err := h.quiz.Reset(id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.respondSession(c, id)
}

// GET /api/quizzes/:id/result
func (h *QuizHandler) Result(c *gin.Context) {
	res, err := h.quiz.Result(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if res.Questions == nil {
		res.Questions = []entities.QuestionResult{}
	}
	if res.Mistakes == nil {
		res.Mistakes = []entities.QuestionResult{}
	}
	respondOK(c, resultResponse{QuizResult: res, DurationMs: res.Duration.Milliseconds()})
}

// DELETE /api/quizzes/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.quiz.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.quiz.Delete(id)
	c.Status(http.StatusNoContent)
}

func (h *QuizHandler) respondSession(c *gin.Context, id string) {
	session, err := h.quiz.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, newQuizResponse(session))
}
