package response

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gblsmlo/lemind/internal/core/result"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeOK, CodeOf(""))
	assert.Equal(t, CodeBadRequest, CodeOf(result.Validation))
	assert.Equal(t, CodeUnauthorized, CodeOf(result.Authorization))
	assert.Equal(t, CodeNotFound, CodeOf(result.NotFound))
	assert.Equal(t, CodeServerError, CodeOf(result.Database))
	assert.Equal(t, CodeServerError, CodeOf(result.Unknown))
}

func TestOfSuccess(t *testing.T) {
	r := Of(result.Success(map[string]string{"id": "c-1"}, "Contact created"))
	assert.Equal(t, CodeOK, r.Code)
	assert.Equal(t, "Contact created", r.Msg)

	plain := Of(result.Success(1))
	assert.Equal(t, "OK", plain.Msg)
}

func TestOfFailureHidesCause(t *testing.T) {
	r := Of(result.Fail[int](result.Failure{
		Kind:    result.Database,
		Message: "connection refused",
		Err:     errors.New("dial tcp 10.0.0.1:5432"),
		Details: "stack",
	}))

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":500,"msg":"connection refused","type":"DATABASE_ERROR","data":{}}`, string(b))
}

func TestOfValidationKeepsDetails(t *testing.T) {
	r := Of(result.Fail[int](result.Failure{Kind: result.Validation, Message: "name is required", Details: []string{"name"}}))
	assert.Equal(t, CodeBadRequest, r.Code)
	assert.Equal(t, []string{"name"}, r.Details)
}
