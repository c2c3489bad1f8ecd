package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// ExportVersion is embedded in every study data export.
const ExportVersion = "2.0"

const (
	JSONContentType = "application/json"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	wordsSheet = "Sheet1"
)

type AppInfo struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	KanjiCount int       `json:"kanjiCount"`
}

// AppStatistics is the statistics block of a study export.
type AppStatistics struct {
	DataLoaded     bool             `json:"dataLoaded"`
	CurrentSection entities.Section `json:"currentSection"`
	CurrentKanji   *entities.Kanji  `json:"currentKanji"`
	entities.Statistics
}

type StudyExport struct {
	AppInfo    AppInfo            `json:"appInfo"`
	Statistics AppStatistics      `json:"statistics"`
	State      *entities.AppState `json:"state"`
}

type ExportedWord struct {
	Word    string `json:"word"`
	Kanji   string `json:"kanji"`
	Meaning string `json:"meaning"`
	Week    int    `json:"week"`
	Day     int    `json:"day"`
	Theme   string `json:"theme"`
}

type WordsExport struct {
	ExportDate time.Time      `json:"exportDate"`
	TotalWords int            `json:"totalWords"`
	Words      []ExportedWord `json:"words"`
}

// Document is a rendered export ready to be sent to a user.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders the study data and the word list for download.
type ExportService struct {
	repository KanjiRepository
	state      *StateService
	words      *WordsService
	logger     *zap.Logger
	now        func() time.Time
}

func NewExportService(
	repository KanjiRepository,
	state *StateService,
	words *WordsService,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		repository: repository,
		state:      state,
		words:      words,
		logger:     logger,
		now:        time.Now,
	}
}

// StudyData collects the owner's export. The state is saved first so the
// export reflects what a restart would restore.
func (s *ExportService) StudyData(ctx context.Context, owner string) StudyExport {
	if err := s.state.Save(ctx, owner); err != nil {
		s.logger.Warn("failed to save state before export", zap.String("owner", owner), zap.Error(err))
	}

	current := s.state.Get(ctx, owner)
	persisted := s.state.Persisted(ctx, owner)
	if persisted == nil {
		persisted = &current
	}

	count := s.repository.Count()
	out := StudyExport{
		AppInfo: AppInfo{
			Version:    ExportVersion,
			ExportDate: s.now().UTC(),
			KanjiCount: count,
		},
		Statistics: AppStatistics{
			DataLoaded:     count > 0,
			CurrentSection: current.CurrentSection,
			Statistics:     s.repository.Statistics(),
		},
		State: persisted,
	}
	if k, ok := s.repository.ByIndex(current.CurrentIndex); ok {
		out.Statistics.CurrentKanji = &k
	}

	return out
}

// StudyJSON renders StudyData as an indented JSON file.
func (s *ExportService) StudyJSON(ctx context.Context, owner string) (Document, error) {
	data, err := json.MarshalIndent(s.StudyData(ctx, owner), "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("marshal study export: %w", err)
	}

	return Document{
		Name:        s.fileName("kanji-study-data", "json"),
		ContentType: JSONContentType,
		Data:        data,
	}, nil
}

// Words returns the full word list prepared for export.
func (s *ExportService) Words() WordsExport {
	all := s.words.All()

	out := WordsExport{
		ExportDate: s.now().UTC(),
		TotalWords: len(all),
		Words:      make([]ExportedWord, 0, len(all)),
	}
	for _, w := range all {
		out.Words = append(out.Words, ExportedWord{
			Word:    w.Word,
			Kanji:   w.Kanji,
			Meaning: w.KanjiMeaning,
			Week:    w.Week,
			Day:     w.Day,
			Theme:   w.Theme,
		})
	}
	return out
}

// WordsJSON renders the word list as an indented JSON file.
func (s *ExportService) WordsJSON() (Document, error) {
	data, err := json.MarshalIndent(s.Words(), "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("marshal words export: %w", err)
	}

	return Document{
		Name:        s.fileName("kanji-words-list", "json"),
		ContentType: JSONContentType,
		Data:        data,
	}, nil
}

// WordsWorkbook renders the word list as an XLSX workbook with a header row.
func (s *ExportService) WordsWorkbook() (Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"word", "kanji", "meaning", "week", "day", "theme"}
	if err := setRow(f, 1, header); err != nil {
		return Document{}, err
	}

	for i, w := range s.Words().Words {
		row := []any{w.Word, w.Kanji, w.Meaning, w.Week, w.Day, w.Theme}
		if err := setRow(f, i+2, row); err != nil {
			return Document{}, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Document{}, fmt.Errorf("write workbook: %w", err)
	}

	return Document{
		Name:        s.fileName("kanji-words-list", "xlsx"),
		ContentType: XLSXContentType,
		Data:        buf.Bytes(),
	}, nil
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(wordsSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func (s *ExportService) fileName(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, s.now().UTC().Format("2006-01-02"), ext)
}
