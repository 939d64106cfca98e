package inbound

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/gofta/internal/fta/entity"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gofta/internal/pkg/pkglog"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgrouter"
)

const (
	// DefaultMaxUploadBytes caps the size of an uploaded file.
	DefaultMaxUploadBytes int64 = 10 << 20

	// AnonymousUser acts when the request names nobody.
	AnonymousUser = "anonymous"

	usernameHeader = "X-Username"
)

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	file, filename, cleanup, err := extractUpload(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, pkgerror.NewInvalidFile(err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, pkgerror.NewInvalidInput(errors.New("file too large"))
	}

	if err := h.uc.Ingest(ctx, data, filename, pkglog.GetUsername(ctx)); err != nil {
		return nil, err
	}

	return ImportedResponse{File: filename}, nil
}

func (h *HTTPEndpoint) Generate(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.GenerateAndStore(ctx, pkglog.GetUsername(ctx)); err != nil {
		return nil, err
	}

	return GeneratedResponse{}, nil
}

func (h *HTTPEndpoint) Reset(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.Reset(ctx); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) Imports(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.PagedImports(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	imports := make([]ImportInfo, 0, len(result.Items))
	for _, info := range result.Items {
		imports = append(imports, toHTTPImport(info))
	}

	return ImportsResponse{
		Imports:  imports,
		page:     result.Page,
		pageSize: result.PageSize,
		total:    result.Total,
	}, nil
}

func (h *HTTPEndpoint) ImportDetail(ctx context.Context, r *http.Request) (any, error) {
	info, err := h.uc.ImportInfoForDate(ctx, pkgrouter.GetParam(ctx, "date"))
	if err != nil {
		return nil, err
	}

	return toHTTPImport(info), nil
}

func (h *HTTPEndpoint) DayTransactions(ctx context.Context, r *http.Request) (any, error) {
	day, err := pkgrouter.GetParamTime(ctx, "date", entity.DateLayout)
	if err != nil {
		return nil, pkgerror.NewInvalidInput(errors.New("invalid date, expected YYYY-MM-DD"))
	}

	query := r.URL.Query()
	page, pageSize, err := parsePagination(query.Get("page"), query.Get("page_size"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.PagedTransactionsForDay(ctx, day, page, pageSize)
	if err != nil {
		return nil, err
	}

	return DayTransactionsResponse{
		Date:         day.Format(entity.DateLayout),
		Transactions: toHTTPTransactions(result.Items),
		page:         result.Page,
		pageSize:     result.PageSize,
		total:        result.Total,
	}, nil
}

func (h *HTTPEndpoint) Report(ctx context.Context, r *http.Request) (any, error) {
	var month *string
	if query := r.URL.Query(); query.Has("month") {
		value := query.Get("month")
		month = &value
	}
	return NewReportResponse(h.uc.BuildMonthlyReport(ctx, month)), nil
}

func parsePagination(pageRaw, sizeRaw string) (int, int, error) {
	page := 1
	pageSize := 10

	if pageRaw != "" {
		value, err := strconv.Atoi(pageRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
		}
		page = value
	}

	if sizeRaw != "" {
		value, err := strconv.Atoi(sizeRaw)
		if err != nil || value < 1 {
			return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
		}
		if value > 100 {
			value = 100
		}
		pageSize = value
	}

	if !entity.PageInRange(page, pageSize) {
		return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
	}

	return page, pageSize, nil
}

func extractUpload(r *http.Request) (io.Reader, string, func(), error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("multipart form with a file part is required"))
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return nil, "", func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			return part, part.FileName(), func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}
