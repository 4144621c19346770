package student_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/aanand-mishra/students-client/internal/api"
	"github.com/aanand-mishra/students-client/internal/http/handlers/student"
	"github.com/aanand-mishra/students-client/internal/logger"
	"github.com/aanand-mishra/students-client/internal/service"
	"github.com/aanand-mishra/students-client/internal/storage"
	"github.com/aanand-mishra/students-client/internal/storage/sqlite"
	"github.com/aanand-mishra/students-client/internal/types"
)

func newServer(t *testing.T, s storage.Storage) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	student.Register(mux, s)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func memStore(t *testing.T) *sqlite.SQLite {
	t.Helper()
	s, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	return resp, sb.String()
}

func TestCreateReturnsStoredRecord(t *testing.T) {
	srv := newServer(t, memStore(t))

	resp, body := do(t, http.MethodPost, srv.URL+student.Collection,
		`{"stdname":"Asha","email":"asha@example.com","pincode":"411001"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), gjson.Get(body, "stdid").Int())
	assert.Equal(t, "Asha", gjson.Get(body, "stdname").String())
	assert.Equal(t, "", gjson.Get(body, "city").String())
}

func TestCreateValidation(t *testing.T) {
	srv := newServer(t, memStore(t))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "request body is empty"},
		{"malformed", "{", "unexpected EOF"},
		{"missing name", `{"email":"a@b.co"}`, "Name is required"},
		{"bad pincode", `{"stdname":"Asha","pincode":"12A34"}`, "Please enter a valid pincode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+student.Collection, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "error", gjson.Get(body, "status").String())
			assert.Contains(t, gjson.Get(body, "message").String(), tt.want)
		})
	}
}

func TestUnknownIDIs404(t *testing.T) {
	srv := newServer(t, memStore(t))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp, body := do(t, method, srv.URL+student.Collection+"/42", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
		assert.Contains(t, gjson.Get(body, "message").String(), "no student found")
	}

	resp, _ := do(t, http.MethodPut, srv.URL+student.Collection+"/42", `{"stdname":"Asha"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBadID(t *testing.T) {
	srv := newServer(t, memStore(t))

	resp, body := do(t, http.MethodGet, srv.URL+student.Collection+"/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, gjson.Get(body, "message").String(), "invalid id")
}

type brokenStore struct{ storage.Storage }

func (brokenStore) GetStudents(context.Context) ([]types.Student, error) {
	return nil, errors.New("database is locked")
}

func TestStorageFailureIs500(t *testing.T) {
	srv := newServer(t, brokenStore{})

	resp, body := do(t, http.MethodGet, srv.URL+student.Collection, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "database is locked", gjson.Get(body, "message").String())
}

// The client, the service and this API agree on the contract end to end.
func TestServiceAgainstSandbox(t *testing.T) {
	srv := newServer(t, memStore(t))
	client, err := api.New(srv.URL+"/api", api.WithLogger(logger.Discard()))
	require.NoError(t, err)
	svc := service.New(client, logger.Discard())
	ctx := context.Background()

	list, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := svc.Create(ctx, types.CreateStudentInput{Name: "Asha", City: "Pune"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	require.NoError(t, svc.Update(ctx, created.ID, types.CreateStudentInput{Name: "Asha", City: "Mumbai"}))
	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", got.City)
	assert.Equal(t, "Mumbai", svc.Snapshot()[0].City)

	_, err = svc.GetByID(ctx, 999)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Contains(t, svc.Error.Get(), "no student found")

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, svc.Snapshot())
	assert.Empty(t, svc.Error.Get())
}
