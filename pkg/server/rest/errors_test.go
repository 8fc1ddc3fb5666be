package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lintang/congestionnav/pkg/server"

	"github.com/stretchr/testify/assert"
)

func TestGetStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, getStatusCode(nil))
	assert.Equal(t, http.StatusNotFound, getStatusCode(server.WrapErrorf(nil, server.ErrNotFound, "x")))
	assert.Equal(t, http.StatusConflict, getStatusCode(server.WrapErrorf(nil, server.ErrConflict, "x")))
	assert.Equal(t, http.StatusBadRequest, getStatusCode(server.WrapErrorf(nil, server.ErrBadParamInput, "x")))
	assert.Equal(t, http.StatusInternalServerError, getStatusCode(server.WrapErrorf(nil, server.ErrInternalServerError, "x")))
	assert.Equal(t, http.StatusInternalServerError, getStatusCode(errors.New("plain")))

	wrapped := fmt.Errorf("step: %w", server.WrapErrorf(nil, server.ErrConflict, "no round"))
	assert.Equal(t, http.StatusConflict, getStatusCode(wrapped))
}

func TestErrChiHidesInternalMessage(t *testing.T) {
	resp := ErrChi(errors.New("pebble: closed")).(*ErrResponse)
	assert.Equal(t, http.StatusInternalServerError, resp.HTTPStatusCode)
	assert.Equal(t, server.MessageInternalServerError, resp.ErrorText)

	resp = ErrChi(server.WrapErrorf(nil, server.ErrNotFound, "obstacle 3 not found")).(*ErrResponse)
	assert.Equal(t, http.StatusNotFound, resp.HTTPStatusCode)
	assert.Equal(t, "obstacle 3 not found", resp.ErrorText)
}
