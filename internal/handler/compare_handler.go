package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"docreview/internal/domain"
	"docreview/internal/middleware"
	"docreview/internal/service"
)

// CompareHandler handles two-document comparison requests.
type CompareHandler struct {
	compareService service.CompareService
	maxFileBytes   int64
}

// NewCompareHandler creates a new CompareHandler. Uploaded parts larger than
// maxFileBytes are rejected.
func NewCompareHandler(compareService service.CompareService, maxFileBytes int64) *CompareHandler {
	return &CompareHandler{compareService: compareService, maxFileBytes: maxFileBytes}
}

// Compare handles POST /api/v1/compare
// @Summary Compare two contracts
// @Description Scans both uploads, runs one comparison over both texts and returns the model output
// @Description with filenames, caller identity and a UTC timestamp merged in. Nothing is stored.
// @Tags compare
// @Accept multipart/form-data
// @Produce json
// @Param contractA formData file true "First contract"
// @Param contractB formData file true "Second contract"
// @Success 200 {object} CompareEnvelopeDoc "Model output with comparison metadata merged in"
// @Failure 400 {object} ErrorResponseBody "Missing identity, missing file, or no text extracted"
// @Failure 502 {object} ErrorResponseBody "Scanner or model collaborator failed"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Security BearerAuth
// @Router /compare [post]
func (h *CompareHandler) Compare(c *gin.Context) {
	userUUID, err := middleware.GetUserUUID(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	contractA, err := h.readPart(c, domain.SlotContractA)
	if err != nil {
		HandleError(c, err)
		return
	}
	contractB, err := h.readPart(c, domain.SlotContractB)
	if err != nil {
		HandleError(c, err)
		return
	}

	env, err := h.compareService.Compare(c.Request.Context(), service.CompareInput{
		UserID:    userUUID,
		ContractA: contractA,
		ContractB: contractB,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, env)
}

func (h *CompareHandler) readPart(c *gin.Context, field string) (domain.DocumentPayload, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return domain.DocumentPayload{}, domain.NewValidationError("Both contractA and contractB files are required")
	}
	defer func() { _ = file.Close() }()

	content, err := readLimited(file, h.maxFileBytes)
	if err != nil {
		return domain.DocumentPayload{}, domain.NewValidationError("%s: %v", field, err)
	}

	return domain.DocumentPayload{
		Content:   content,
		Filename:  header.Filename,
		MediaType: DetectMediaType(header.Header.Get("Content-Type"), content),
	}, nil
}

func readLimited(file multipart.File, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(file)
	}
	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(content)) > maxBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", maxBytes)
	}
	return content, nil
}

// DetectMediaType keeps a specific declared media type and otherwise sniffs
// the content's magic bytes.
func DetectMediaType(declared string, content []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(content).String()
}
