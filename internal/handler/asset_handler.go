package handler

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/dto"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/middleware"
	"tanuki-quiz/internal/service"
	"tanuki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssetHandler serves the admin asset endpoints.
type AssetHandler struct {
	service   service.IngestionService
	validator *validation.Validator
}

// NewAssetHandler creates a new AssetHandler instance
func NewAssetHandler(service service.IngestionService) *AssetHandler {
	return &AssetHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Upload godoc
// @Summary Upload one image
// @Description Ingests a base64-encoded image. Failures report the pipeline stage that failed.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param upload body dto.UploadRequest true "Upload"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.UploadResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} dto.UploadResponse
// @Router /admin/upload [post]
func (h *AssetHandler) Upload(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{
			OK:      false,
			Message: "request body must be JSON with filename and data_base64",
		})
	}
	if errs := h.validator.ValidateUploadRequest(req.Filename, req.DataBase64); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{
			OK:       false,
			Message:  errs.Error(),
			Filename: req.Filename,
		})
	}

	data, err := decodeBase64Payload(req.DataBase64)
	if err != nil {
		return h.uploadFailure(c, req.Filename, domain.NewInvalidImageDataError(err))
	}

	record, err := h.service.Ingest(c.UserContext(), data, req.Filename)
	if err != nil {
		return h.uploadFailure(c, req.Filename, err)
	}
	return c.JSON(uploadSuccess(record))
}

// UploadMultipart godoc
// @Summary Upload images as multipart form data
// @Description Ingests every file part independently and reports one verdict per part, in the order the parts were sent. Filenames are checked as sent; path separators fail with UNSAFE_FILENAME.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security AdminToken
// @Param files formData file true "Image files"
// @Success 200 {object} dto.BulkUploadResponse
// @Failure 400 {object} dto.UploadResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /admin/upload/multipart [post]
func (h *AssetHandler) UploadMultipart(c *fiber.Ctx) error {
	parts, err := readFileParts(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{
			OK:      false,
			Message: "request must be multipart/form-data: " + err.Error(),
		})
	}
	if len(parts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.UploadResponse{
			OK:      false,
			Message: "no file parts in request",
		})
	}

	resp := dto.BulkUploadResponse{OK: true, Results: make([]dto.UploadResponse, len(parts))}
	items := make([]service.UploadItem, 0, len(parts))
	slots := make([]int, 0, len(parts))
	for i, part := range parts {
		if errs := h.validator.ValidateUploadFilename(part.Filename); len(errs) > 0 {
			resp.OK = false
			resp.Results[i] = dto.UploadResponse{OK: false, Filename: part.Filename, Message: errs.Error()}
			continue
		}
		items = append(items, part)
		slots = append(slots, i)
	}

	for j, r := range h.service.IngestBulk(c.UserContext(), items) {
		if r.Err != nil {
			resp.OK = false
			resp.Results[slots[j]] = failureBody(r.Filename, r.Err)
			continue
		}
		resp.Results[slots[j]] = uploadSuccess(r.Record)
	}

	logger.Get().Info("Bulk upload finished",
		zap.Int("items", len(parts)),
		zap.Bool("all_ok", resp.OK),
	)
	return c.JSON(resp)
}

// readFileParts returns the file parts of a multipart body in wire order.
// Filenames are taken verbatim from Content-Disposition so unsafe names reach
// the pipeline instead of being trimmed to their base name.
func readFileParts(c *fiber.Ctx) ([]service.UploadItem, error) {
	mediaType, params, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
	if err != nil {
		return nil, err
	}
	if mediaType != fiber.MIMEMultipartForm || params["boundary"] == "" {
		return nil, errors.New("missing multipart boundary")
	}

	reader := multipart.NewReader(bytes.NewReader(c.Body()), params["boundary"])
	var items []service.UploadItem
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		filename, ok := rawFilename(part.Header.Get(fiber.HeaderContentDisposition))
		if !ok {
			part.Close()
			continue
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, err
		}
		items = append(items, service.UploadItem{Filename: filename, Data: data})
	}
}

func rawFilename(disposition string) (string, bool) {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	return name, ok
}

// ListAssets godoc
// @Summary List or search assets
// @Description Returns catalog records whose filename contains q (case-insensitive); all records when q is empty
// @Tags admin
// @Produce json
// @Security AdminToken
// @Param q query string false "Filename substring"
// @Success 200 {object} dto.AssetListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /admin/assets [get]
func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(assetList(records))
}

// GetAsset godoc
// @Summary Get one asset
// @Description Returns the catalog record for a single asset
// @Tags admin
// @Produce json
// @Security AdminToken
// @Param filename path string true "Asset filename"
// @Success 200 {object} dto.AssetResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/assets/{filename} [get]
func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	record, err := h.service.Get(c.UserContext(), pathFilename(c))
	if err != nil {
		return err
	}
	return c.JSON(toAssetResponse(*record))
}

// DeleteAsset godoc
// @Summary Delete an asset
// @Description Removes the catalog record, the original and its thumbnail
// @Tags admin
// @Produce json
// @Security AdminToken
// @Param filename path string true "Asset filename"
// @Success 200 {object} dto.UploadResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/assets/{filename} [delete]
func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	filename := pathFilename(c)
	if err := h.service.Delete(c.UserContext(), filename); err != nil {
		return err
	}
	return c.JSON(dto.UploadResponse{OK: true, Filename: filename, Message: "deleted"})
}

// SimilarAssets godoc
// @Summary Find visually similar assets
// @Description Returns other assets within max_distance fingerprint bits, closest first
// @Tags admin
// @Produce json
// @Security AdminToken
// @Param filename path string true "Asset filename"
// @Param max_distance query int false "Maximum Hamming distance (0-64)"
// @Success 200 {object} dto.AssetListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /admin/assets/{filename}/similar [get]
func (h *AssetHandler) SimilarAssets(c *fiber.Ctx) error {
	maxDistance, errs := h.validator.ParseMaxDistance(c.Query("max_distance"))
	if len(errs) > 0 {
		return errs
	}
	records, err := h.service.FindSimilar(c.UserContext(), pathFilename(c), maxDistance)
	if err != nil {
		return err
	}
	return c.JSON(assetList(records))
}

func (h *AssetHandler) uploadFailure(c *fiber.Ctx, filename string, err error) error {
	return c.Status(middleware.StatusFor(err)).JSON(failureBody(filename, err))
}

func failureBody(filename string, err error) dto.UploadResponse {
	resp := dto.UploadResponse{OK: false, Filename: filename, Message: err.Error()}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		resp.Stage = domainErr.Stage()
	}
	return resp
}

func uploadSuccess(record *domain.AssetRecord) dto.UploadResponse {
	asset := toAssetResponse(*record)
	return dto.UploadResponse{
		OK:       true,
		Filename: record.Filename,
		Message:  "uploaded",
		Asset:    &asset,
	}
}

func assetList(records []domain.AssetRecord) dto.AssetListResponse {
	resp := dto.AssetListResponse{OK: true, Assets: make([]dto.AssetResponse, 0, len(records))}
	for _, rec := range records {
		resp.Assets = append(resp.Assets, toAssetResponse(rec))
	}
	return resp
}

func toAssetResponse(rec domain.AssetRecord) dto.AssetResponse {
	escaped := url.PathEscape(rec.Filename)
	resp := dto.AssetResponse{
		Filename:     rec.Filename,
		SizeBytes:    rec.SizeBytes,
		HasThumbnail: rec.HasThumbnail,
		Fingerprint:  rec.Fingerprint,
		UploadedAt:   rec.UploadedAt,
		URL:          service.AssetURLPrefix + "/" + escaped,
	}
	if rec.HasThumbnail {
		resp.ThumbnailURL = service.AssetURLPrefix + "/" + domain.ThumbnailDir + "/" + url.PathEscape(domain.ThumbnailName(rec.Filename))
	}
	return resp
}

func pathFilename(c *fiber.Ctx) string {
	if name, ok := c.Locals(middleware.ValidatedFilenameLocal).(string); ok && name != "" {
		return name
	}
	return c.Params("filename")
}

// decodeBase64Payload accepts plain base64 or a data URL.
func decodeBase64Payload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty payload")
	}
	return data, nil
}
