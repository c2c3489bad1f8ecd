package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

var errIndexOutOfRange = errors.New("currentIndex is out of range")

type StateHandler struct {
	state StateService
}

func NewStateHandler(state StateService) *StateHandler {
	return &StateHandler{state: state}
}

// GET /api/state
func (h *StateHandler) Get(c *gin.Context) {
	h.respondState(c, h.state.Get(c.Request.Context(), clientID(c)))
}

// PUT /api/state
// Fields left out of the body keep their values.
func (h *StateHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	owner := clientID(c)

	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	var section entities.Section
	if req.CurrentSection != nil {
		s, err := entities.ParseSection(*req.CurrentSection)
		if err != nil {
			respondError(c, http.StatusBadRequest, codeBadRequest, err)
			return
		}
		section = s
	}

	st := h.state.Get(ctx, owner)
	if req.CurrentIndex != nil {
		var ok bool
		if st, ok = h.state.SetIndex(ctx, owner, *req.CurrentIndex); !ok {
			respondError(c, http.StatusBadRequest, codeBadRequest, errIndexOutOfRange)
			return
		}
	}
	if section != "" {
		var err error
		if st, err = h.state.SetSection(ctx, owner, section); err != nil {
			respondError(c, http.StatusBadRequest, codeBadRequest, err)
			return
		}
	}

	h.respondState(c, st)
}

// POST /api/state/navigate
func (h *StateHandler) Navigate(c *gin.Context) {
	ctx := c.Request.Context()
	owner := clientID(c)

	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	var st entities.AppState
	switch req.Direction {
	case "next":
		st = h.state.Next(ctx, owner)
	case "prev":
		st = h.state.Previous(ctx, owner)
	default:
		st = h.state.Random(ctx, owner)
	}
	h.respondState(c, st)
}

func (h *StateHandler) respondState(c *gin.Context, st entities.AppState) {
	respondOK(c, stateResponse{
		State:      st,
		Statistics: h.state.StudyStatistics(c.Request.Context(), clientID(c)),
	})
}
