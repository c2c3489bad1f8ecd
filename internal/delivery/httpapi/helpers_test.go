package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/repository"
	"github.com/aliskhannn/kanji-cards/internal/service"
	"github.com/aliskhannn/kanji-cards/internal/storage"
)

type sliceSource []entities.Kanji

func (s sliceSource) Name() string { return "test" }

func (s sliceSource) Load(context.Context) ([]entities.Kanji, error) {
	return s, nil
}

// testKanji has four records in week 1 day 1 and two in week 2 day 1.
func testKanji() []entities.Kanji {
	symbols := []string{"券", "符", "片", "往", "復", "精"}
	out := make([]entities.Kanji, 0, len(symbols))
	for i, s := range symbols {
		week := 1
		if i >= 4 {
			week = 2
		}
		out = append(out, entities.Kanji{
			Symbol:   s,
			Meaning:  "значение " + string(rune('a'+i)),
			Readings: entities.FlatReadings("よみ" + string(rune('a'+i))),
			Words:    []string{"ことば" + string(rune('a'+i))},
			Week:     week,
			Day:      1,
		})
	}
	return out
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	repo := repository.NewKanjiRepository(logger, sliceSource(testKanji()))
	if _, err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	kanji := service.NewKanjiService(repo)
	words := service.NewWordsService(repo)
	state := service.NewStateService(repo, storage.NewStateStorage(), logger)
	quiz := service.NewQuizService(repo, storage.NewQuizStorage(), logger)
	export := service.NewExportService(repo, state, words, logger)

	return NewRouter(RouterConfig{
		Logger:        logger,
		KanjiHandler:  NewKanjiHandler(kanji),
		WordsHandler:  NewWordsHandler(words, export),
		QuizHandler:   NewQuizHandler(quiz),
		StateHandler:  NewStateHandler(state),
		ExportHandler: NewExportHandler(export),
	})
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rr.Code, rr.Body.String())
	}
}

func expectErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rr, status)
	env := decode[ErrorEnvelope](t, rr)
	if env.Error.Code != code || env.Error.Message == "" {
		t.Fatalf("expected error code %s, got %+v", code, env.Error)
	}
}

type refBody struct {
	Index int `json:"index"`
	Kanji struct {
		Symbol  string `json:"kanji"`
		Meaning string `json:"meaning"`
	} `json:"kanji"`
}

type listBody struct {
	Total int       `json:"total"`
	Kanji []refBody `json:"kanji"`
}
