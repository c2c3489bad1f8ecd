package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

var errInvalidFilter = errors.New("week and day must be non-negative integers")

type KanjiHandler struct {
	kanji KanjiService
}

func NewKanjiHandler(kanji KanjiService) *KanjiHandler {
	return &KanjiHandler{kanji: kanji}
}

// GET /api/kanji?week=&day=
func (h *KanjiHandler) List(c *gin.Context) {
	week, day, err := weekDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	refs := h.kanji.Filter(week, day)
	respondOK(c, kanjiListResponse{Total: len(refs), Kanji: nonNilRefs(refs)})
}

// GET /api/kanji/count
func (h *KanjiHandler) Count(c *gin.Context) {
	respondOK(c, countResponse{Count: h.kanji.Count()})
}

// GET /api/kanji/random
func (h *KanjiHandler) Random(c *gin.Context) {
	ref, err := h.kanji.Random()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ref)
}

// GET /api/kanji/:index
func (h *KanjiHandler) Get(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, errors.New("index must be an integer"))
		return
	}

	k, err := h.kanji.ByIndex(index)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entities.KanjiRef{Index: index, Kanji: k})
}

// GET /api/kanji/groups?week=&day=
func (h *KanjiHandler) Groups(c *gin.Context) {
	week, day, err := weekDayQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	out := groupsResponse{
		Groups:     []groupResponse{},
		Statistics: h.kanji.GroupStatistics(),
	}
	for _, g := range h.kanji.Groups() {
		if (week != entities.Any && g.Week != week) || (day != entities.Any && g.Day != day) {
			continue
		}

		group := groupResponse{
			Week:      g.Week,
			WeekTitle: entities.WeekTitle(g.Week),
			Day:       g.Day,
			Theme:     g.Theme,
			Kanji:     make([]entities.KanjiRef, 0, len(g.Kanji)),
		}
		for i, k := range g.Kanji {
			group.Kanji = append(group.Kanji, entities.KanjiRef{Index: g.Indexes[i], Kanji: k})
		}
		out.Groups = append(out.Groups, group)
	}

	respondOK(c, out)
}

// GET /api/kanji/search?q=
func (h *KanjiHandler) Search(c *gin.Context) {
	refs := h.kanji.Search(c.Query("q"))
	respondOK(c, kanjiListResponse{Total: len(refs), Kanji: nonNilRefs(refs)})
}

// GET /api/kanji/statistics
func (h *KanjiHandler) Statistics(c *gin.Context) {
	respondOK(c, h.kanji.Statistics())
}

// weekDayQuery reads the optional week and day filters; missing means Any.
func weekDayQuery(c *gin.Context) (int, int, error) {
	week, err := intQuery(c, "week")
	if err != nil {
		return 0, 0, err
	}
	day, err := intQuery(c, "day")
	if err != nil {
		return 0, 0, err
	}
	return week, day, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return entities.Any, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errInvalidFilter
	}
	return n, nil
}

func nonNilRefs(refs []entities.KanjiRef) []entities.KanjiRef {
	if refs == nil {
		return []entities.KanjiRef{}
	}
	return refs
}
