package command

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-client/internal/http/handlers/student"
	"github.com/aanand-mishra/students-client/internal/storage/sqlite"
	"github.com/aanand-mishra/students-client/internal/types"
)

// sandbox serves the real handlers over an in-memory database.
func sandbox(t *testing.T) string {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mux := http.NewServeMux()
	student.Register(mux, store)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// run executes the app with args and returns stdout.
func run(t *testing.T, apiBase, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = io.Discard

	full := append([]string{"students-cli", "--api", apiBase}, args...)
	err := app.Run(full)
	return out.String(), err
}

func TestAppStructure(t *testing.T) {
	app := App()

	names := make(map[string]bool)
	for _, c := range app.Commands {
		names[c.Name] = true
	}
	for _, want := range []string{"list", "get", "create", "update", "delete", "shell"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestCreateGetListUpdateDelete(t *testing.T) {
	base := sandbox(t)

	out, err := run(t, base, "", "-o", "json", "create", "--name", "Asha", "--city", "Pune", "--pincode", "411001")
	require.NoError(t, err)
	var created types.Student
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Pune", created.City)

	out, err = run(t, base, "", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "stdname")
	assert.Contains(t, out, "Asha")

	out, err = run(t, base, "", "-o", "yaml", "update", "--city", "Mumbai", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "city: Mumbai")
	assert.Contains(t, out, "pincode: \"411001\"")

	out, err = run(t, base, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mumbai")
	assert.Contains(t, out, "PINCODE")

	out, err = run(t, base, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete Asha? [y/N]")
	assert.Contains(t, out, "Cancelled.")

	out, err = run(t, base, "y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Student 1 deleted.")

	_, err = run(t, base, "", "get", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no student found")
}

func TestDeleteForceSkipsPrompt(t *testing.T) {
	base := sandbox(t)
	_, err := run(t, base, "", "create", "--name", "Ravi")
	require.NoError(t, err)

	out, err := run(t, base, "", "delete", "--force", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Student 1 deleted.")
}

func TestCreateRejectsInvalidInputLocally(t *testing.T) {
	base := sandbox(t)

	_, err := run(t, base, "", "create", "--pincode", "12A34")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "Please enter a valid pincode")

	out, err := run(t, base, "", "-o", "json", "list")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestBadArguments(t *testing.T) {
	base := sandbox(t)

	_, err := run(t, base, "", "get")
	assert.ErrorContains(t, err, "expected exactly one student ID")

	_, err = run(t, base, "", "get", "abc")
	assert.ErrorContains(t, err, `invalid student ID "abc"`)

	_, err = run(t, base, "", "-o", "xml", "list")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "not a url", "", "list")
	assert.ErrorContains(t, err, "must be absolute")
}

func TestShellCommand(t *testing.T) {
	base := sandbox(t)
	_, err := run(t, base, "", "create", "--name", "Asha")
	require.NoError(t, err)

	out, err := run(t, base, "view 1\nback\nexit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Students (1)")
	assert.Contains(t, out, "Student #1")
}
