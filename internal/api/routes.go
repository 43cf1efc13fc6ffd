package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/pdfvoice/domain"
	"github.com/satriahrh/pdfvoice/domain/entities"
	"github.com/satriahrh/pdfvoice/domain/repositories"
	"github.com/satriahrh/pdfvoice/internal/websocket"
	"github.com/satriahrh/pdfvoice/usecase"
)

const (
	uploadField      = "pdf"
	contentTypeField = "content_type"
	contentField     = "content"

	sharedQRLink = "/download_qr"
)

// Handler serves the PDF to audio and QR generator pages
type Handler struct {
	documents *usecase.DocumentService
	qr        *usecase.QRService
	storage   repositories.FileStorage
	hub       *websocket.Hub
	logger    *zap.Logger
}

// NewHandler creates a new handler. hub may be nil, in which case the event
// stream is not exposed.
func NewHandler(
	documents *usecase.DocumentService,
	qr *usecase.QRService,
	storage repositories.FileStorage,
	hub *websocket.Hub,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		documents: documents,
		qr:        qr,
		storage:   storage,
		hub:       hub,
		logger:    logger,
	}
}

// InitRoutes initializes all routes
func InitRoutes(e *echo.Echo, h *Handler) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:  "ok",
			Service: "pdfvoice",
		})
	})

	// Pages
	e.GET("/", page("index.html"))
	e.GET("/pdf_to_audio", page("pdf_to_audio.html"))
	e.GET("/qr_generator", page("qr_generator.html"))

	// PDF to audio
	e.POST("/upload", h.uploadPDF)
	e.GET("/audio/:filename", h.downloadAudio)

	// QR codes
	e.POST("/generate_qr", h.generateQR)
	e.GET("/download_qr", h.downloadSharedQR)
	e.GET("/download_qr/:id", h.downloadQR)

	if h.hub != nil {
		e.GET("/ws/events", func(c echo.Context) error {
			return websocket.HandleWebSocket(h.hub, c, h.logger)
		})
	}
}

func page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, nil)
	}
}

func (h *Handler) uploadPDF(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.MsgNoFilePart})
	}

	files := form.File[uploadField]
	if len(files) == 0 {
		// A file input submitted without a file arrives as a plain value.
		if _, ok := form.Value[uploadField]; ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.MsgNoSelectedFile})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.MsgNoFilePart})
	}

	header := files[0]
	if err := usecase.ValidateFilename(header.Filename); err != nil {
		return h.uploadError(c, err)
	}

	src, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file",
			zap.String("filename", header.Filename),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: domain.FailureMessage(err)})
	}
	defer src.Close()

	// Work continues even if the client goes away.
	ctx := context.WithoutCancel(c.Request().Context())

	audio, err := h.documents.ConvertUpload(ctx, header.Filename, src)
	if err != nil {
		return h.uploadError(c, err)
	}

	return c.Redirect(http.StatusFound, "/audio/"+url.PathEscape(audio.Filename))
}

func (h *Handler) uploadError(c echo.Context, err error) error {
	if ce, ok := domain.IsClientError(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ce.Message})
	}
	if pe, ok := domain.IsProcessingError(err); ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: domain.FailureMessage(pe.Err)})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: domain.FailureMessage(err)})
}

func (h *Handler) downloadAudio(c echo.Context) error {
	filename := c.Param("filename")
	return c.Attachment(h.storage.Path(repositories.AreaAudio, filename), filename)
}

func (h *Handler) generateQR(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid form data"})
	}

	for _, field := range []string{contentTypeField, contentField} {
		if _, ok := params[field]; !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing form field: " + field})
		}
	}

	contentType := params.Get(contentTypeField)
	image, err := h.qr.Generate(c.Request().Context(), contentType, params.Get(contentField))
	if err != nil {
		cause := err
		if pe, ok := domain.IsProcessingError(err); ok {
			cause = pe.Err
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to generate QR code: " + cause.Error(),
		})
	}

	link := sharedQRLink
	if image.ID != "" {
		link = sharedQRLink + "/" + image.ID
	}

	return c.Render(http.StatusOK, "result.html", QRResultView{
		ContentType:  image.ContentType,
		DownloadLink: link,
	})
}

func (h *Handler) downloadSharedQR(c echo.Context) error {
	return c.Attachment(h.qr.SharedPath(), entities.SharedQRFilename)
}

func (h *Handler) downloadQR(c echo.Context) error {
	path, err := h.qr.ImagePath(c.Param("id"))
	if err != nil {
		if ce, ok := domain.IsClientError(err); ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ce.Message})
		}
		return err
	}
	return c.Attachment(path, entities.QRFilename(c.Param("id")))
}
