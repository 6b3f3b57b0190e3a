package applications

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cover-merge/internal/render"
	"cover-merge/internal/shared/metrics"
	"cover-merge/internal/shared/server/middleware"
	"cover-merge/internal/shared/server/respond"
	"cover-merge/internal/shared/telemetry"
)

const (
	defaultMaxUploadBytes  = 10 << 20
	defaultMultipartMemory = 8 << 20
	pageCountHeader        = "X-Page-Count"

	// statusClientClosedRequest marks requests whose client went away.
	statusClientClosedRequest = 499
)

var (
	errUploadTooLarge = errors.New("resume exceeds upload limit")
	errBadForm        = errors.New("invalid form body")
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64

	// MultipartMemory is how much of a form is held in memory; the rest
	// spools to temporary files removed when the request ends.
	MultipartMemory int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes uses 10 MiB.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes, MultipartMemory: defaultMultipartMemory}
}

// RegisterRoutes attaches the form and merge routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.form)
	r.POST("/merge", h.merge)
}

func (h *Handler) form(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(formHTML))
}

func (h *Handler) merge(c *gin.Context) {
	metrics.IncMergeRequests()
	start := time.Now()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	memory := h.MultipartMemory
	if memory <= 0 {
		memory = defaultMultipartMemory
	}
	if err := c.Request.ParseMultipartForm(memory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.fail(c, formError(err))
		return
	}
	// Requests served through the Lambda adapter skip net/http's form cleanup.
	if form := c.Request.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	sub := Submission{
		ApplicantName: c.PostForm("applicant_name"),
		CoverText:     c.PostForm("cover_text"),
		Title:         c.PostForm("title"),
	}
	fileHeader, err := c.FormFile("resume")
	if err == nil {
		sub.ResumeFileName = fileHeader.Filename
	}
	if err := ValidateFields(sub); err != nil {
		h.fail(c, err)
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		h.fail(c, err)
		return
	}
	sub.Resume = data

	res, err := h.Svc.Assemble(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, err)
		return
	}

	metrics.IncMergeCompleted()
	metrics.ObserveMergeDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.ObserveOutputPages(res.Pages)
	c.Set(middleware.OutputFileKey, res.FileName)
	c.Set(middleware.PageCountKey, res.Pages)
	c.Header(pageCountHeader, strconv.Itoa(res.Pages))
	respond.Attachment(c, pdfContentType, res.FileName, res.Data)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, message := classify(err)
	switch {
	case status == statusClientClosedRequest:
		metrics.IncMergeCanceled()
		telemetry.Info("merge.canceled", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"err":        err.Error(),
		})
	case status >= http.StatusInternalServerError:
		metrics.IncMergeFailed()
		telemetry.Error("merge.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"err":        err.Error(),
		})
	default:
		metrics.IncMergeRejected()
	}
	respond.Error(c, status, code, message)
}

// classify maps an error to its HTTP status, log code and client message.
// Server-side causes are never echoed to the client.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrMissingCoverText),
		errors.Is(err, ErrMissingResume),
		errors.Is(err, ErrNotPDF):
		return http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge, "upload_too_large", errUploadTooLarge.Error()
	case errors.Is(err, errBadForm):
		return http.StatusBadRequest, "validation_error", errBadForm.Error()
	case errors.Is(err, ErrUnreadableResume):
		return http.StatusUnprocessableEntity, "unreadable_resume", ErrUnreadableResume.Error()
	case errors.Is(err, render.ErrCoverTooLong):
		return http.StatusUnprocessableEntity, "cover_too_long", "cover_text does not fit on one page"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return statusClientClosedRequest, "request_canceled", "request canceled"
	default:
		return http.StatusInternalServerError, "internal_error", "failed to build combined PDF"
	}
}

func formError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errUploadTooLarge
	}
	return errBadForm
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, ErrMissingResume
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, formError(err)
	}
	return data, nil
}
