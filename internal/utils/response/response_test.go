package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-client/internal/validation"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusNotFound, GeneralError(errors.New("no student found"))))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","message":"no student found"}`, rec.Body.String())
}

func TestValidationErrorJoinsMessages(t *testing.T) {
	r := ValidationError([]validation.FieldError{
		{Field: "stdname", Rule: validation.RuleRequired, Message: "Name is required"},
		{Field: "email", Rule: validation.RuleEmail, Message: "Please enter a valid email"},
	})

	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "Name is required, Please enter a valid email", r.Message)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
