package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

type WordsHandler struct {
	words  WordsService
	export ExportService
}

func NewWordsHandler(words WordsService, export ExportService) *WordsHandler {
	return &WordsHandler{words: words, export: export}
}

// GET /api/words?week=&day=&q=&sort=
func (h *WordsHandler) List(c *gin.Context) {
	week, day, err := weekDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	by, err := entities.ParseWordSort(c.Query("sort"))
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	words := h.words.List(service.WordQuery{
		Week:   week,
		Day:    day,
		Search: c.Query("q"),
		Sort:   by,
	})
	if words == nil {
		words = []entities.WordEntry{}
	}
	respondOK(c, wordsResponse{Total: len(words), Words: words})
}

// GET /api/words/statistics
func (h *WordsHandler) Statistics(c *gin.Context) {
	respondOK(c, h.words.Statistics())
}

// GET /api/words/export?format=json|xlsx
func (h *WordsHandler) Export(c *gin.Context) {
	var (
		doc service.Document
		err error
	)
	switch c.DefaultQuery("format", "json") {
	case "json":
		doc, err = h.export.WordsJSON()
	case "xlsx":
		doc, err = h.export.WordsWorkbook()
	default:
		respondError(c, http.StatusBadRequest, codeBadRequest, errUnknownFormat)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sendDocument(c, doc)
}
