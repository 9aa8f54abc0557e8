package importcsv_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbarnes/penny/internal/http/importcsv"
	"github.com/hbarnes/penny/internal/storage/fileslot"
	"github.com/hbarnes/penny/internal/transaction"
)

func newTestRouter(t *testing.T) (http.Handler, *transaction.Service) {
	t.Helper()

	slot, err := fileslot.New(t.TempDir())
	require.NoError(t, err)

	svc := transaction.NewService(slot)
	svc.Load(context.Background())

	router := chi.NewRouter()
	importcsv.NewHandler(svc).Routes(router)

	return router, svc
}

func uploadRequest(t *testing.T, rows ...string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "transactions.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte(strings.Join(rows, "\n")))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	return req
}

func TestImport(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t,
		"2024-05-01,Groceries,Food,-20.00,expense",
		"2024-05-02,Salary,Income,2500.00,income",
	))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, svc.List(), 2)
}

func TestImport_InvalidRowPersistsNothing(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t,
		"2024-05-01,Groceries,Food,-20.00,expense",
		"2024-05-02,Salary,Income,-50.00,income",
	))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.List())
}

func TestImport_MissingFileField(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer

	form := multipart.NewWriter(&body)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
