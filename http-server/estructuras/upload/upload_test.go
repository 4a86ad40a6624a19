package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"seguimiento-estructuras/internal/service/etl"
	"seguimiento-estructuras/internal/service/seguimiento"
	"seguimiento-estructuras/internal/storage"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, planning, fichajes seguimiento.Upload) (*storage.Load, error) {
	args := m.Called(ctx, planning.Name, fichajes.Name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Load), args.Error(1)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for field, name := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = io.WriteString(part, "xlsx-bytes")
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func newRequest(t *testing.T, files map[string]string) *http.Request {
	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/estructuras/upload", body)
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestUploadEstructuras_Success(t *testing.T) {
	loader := new(MockLoader)
	load := &storage.Load{ID: "L-1", Summary: storage.LoadSummary{Total: 10, Processed: 8, Skipped: 2}}
	loader.On("Load", mock.Anything, "plan.xlsx", "fich.xlsx").Return(load, nil)

	handler := UploadEstructuras(slog.Default(), loader, 1<<20, time.Second)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(t, map[string]string{FieldPlanning: "plan.xlsx", FieldFichajes: "fich.xlsx"}))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	require.NotNil(t, resp.Summary)
	assert.Equal(t, storage.LoadSummary{Total: 10, Processed: 8, Skipped: 2}, *resp.Summary)
	assert.Equal(t, "L-1", resp.Load.ID)

	loader.AssertExpectations(t)
}

func TestUploadEstructuras_MissingFile(t *testing.T) {
	loader := new(MockLoader)
	handler := UploadEstructuras(slog.Default(), loader, 1<<20, time.Second)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(t, map[string]string{FieldPlanning: "plan.xlsx"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "fichajes")
	loader.AssertNotCalled(t, "Load")
}

func TestUploadEstructuras_NotMultipart(t *testing.T) {
	loader := new(MockLoader)
	handler := UploadEstructuras(slog.Default(), loader, 1<<20, time.Second)

	req := httptest.NewRequest(http.MethodPost, "/api/estructuras/upload", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadEstructuras_MissingColumn(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("service: %w: Modelo", etl.ErrMissingColumn))

	handler := UploadEstructuras(slog.Default(), loader, 1<<20, time.Second)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(t, map[string]string{FieldPlanning: "p.xlsx", FieldFichajes: "f.xlsx"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Modelo")
}

func TestUploadEstructuras_ServiceError(t *testing.T) {
	loader := new(MockLoader)
	loader.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	handler := UploadEstructuras(slog.Default(), loader, 1<<20, time.Second)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(t, map[string]string{FieldPlanning: "p.xlsx", FieldFichajes: "f.xlsx"}))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal error")
}

func TestUploadEstructuras_NotAWorkbook(t *testing.T) {
	// реальный сервис: ETL отвергает файл раньше, чем дело доходит до хранилища
	service := seguimiento.NewService(slog.Default(), nil)
	handler := UploadEstructuras(slog.Default(), service, 1<<20, time.Second)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(t, map[string]string{FieldPlanning: "p.csv", FieldFichajes: "f.pdf"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), etl.ErrInvalidWorkbook.Error())
}
