package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/app"
	"onboardhub/internal/ingest"
	"onboardhub/internal/pkg/pdfextract"
	"onboardhub/internal/transport/http/response"
)

const maxPDFSize = 10 << 20 // 10 MB

type DocumentHandler struct {
	documentService *app.DocumentService
}

func NewDocumentHandler(documentService *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload accepts a multipart form with "file" (PDF), stages it and runs
// ingestion synchronously so rejection reasons reach the uploader.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > maxPDFSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large (max 10MB)")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	if err := h.documentService.UploadAndIngest(c.Request.Context(), file.Filename, f); err != nil {
		writeIngestError(c, err)
		return
	}

	response.OK(c, gin.H{"filename": filepath.Base(file.Filename), "status": "processed"})
}

// writeIngestError maps pipeline failures to actionable messages. Each
// rejection names both the cause and what the uploader should do about it.
func writeIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pdfextract.ErrEncrypted):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"the PDF is password-protected; remove the password and upload it again")
	case errors.Is(err, pdfextract.ErrNoExtractableText):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"the PDF contains no extractable text; it may be a scanned image, which is not supported")
	case errors.Is(err, pdfextract.ErrEmptyDocument):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"the PDF has no pages; check the file and upload it again")
	case errors.Is(err, pdfextract.ErrCorrupted):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"the PDF could not be parsed; the file may be corrupted, re-export it and upload again")
	case errors.Is(err, pdfextract.ErrFileNotFound), errors.Is(err, pdfextract.ErrPermissionDenied):
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer,
			"the uploaded file could not be read back from storage")
	case errors.Is(err, ingest.ErrStorageUnwritable):
		response.Error(c, http.StatusInternalServerError, response.CodeStorageUnwritable,
			"storage is not writable; contact an administrator ("+err.Error()+")")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeIngestionFailed,
			"ingestion failed: "+err.Error())
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	sources, err := h.documentService.Sources()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list sources failed")
		return
	}
	response.OK(c, gin.H{"documents": docs, "indexed_sources": sources})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	filename := strings.TrimSpace(c.Param("filename"))
	if filename == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing filename")
		return
	}
	removed, err := h.documentService.Delete(filename)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete document failed")
		return
	}
	if !removed {
		response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, "no indexed document with that filename")
		return
	}
	response.OK(c, gin.H{"deleted": filename})
}

// Reconcile triggers an on-demand status repair outside the background sweep.
func (h *DocumentHandler) Reconcile(c *gin.Context) {
	repaired, err := h.documentService.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "reconcile failed")
		return
	}
	response.OK(c, gin.H{"repaired": repaired})
}
