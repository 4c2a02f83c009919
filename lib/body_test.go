package lib

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAndValidateBody(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"ana","count":3,"extra":"ignored"}`))
	body, err := ExtractAndValidateBody[payload](r)
	require.NoError(t, err)
	assert.Equal(t, "ana", body.Name)
	assert.Equal(t, 3, body.Count)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	_, err = ExtractAndValidateBody[payload](r)
	assert.Error(t, err)

	r = httptest.NewRequest("POST", "/", strings.NewReader(""))
	_, err = ExtractAndValidateBody[payload](r)
	assert.Error(t, err)
}
