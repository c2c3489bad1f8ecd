package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliskhannn/kanji-cards/internal/service"
)

var errUnknownFormat = errors.New("format must be json or xlsx")

type ExportHandler struct {
	export ExportService
}

func NewExportHandler(export ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// GET /api/export
func (h *ExportHandler) StudyData(c *gin.Context) {
	doc, err := h.export.StudyJSON(c.Request.Context(), clientID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sendDocument(c, doc)
}

// sendDocument writes doc as a file download.
func sendDocument(c *gin.Context, doc service.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
