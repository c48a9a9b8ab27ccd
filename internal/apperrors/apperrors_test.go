package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapsWrappedErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(fmt.Errorf("challenge xyz: %w", ErrNotFound)))
	assert.Equal(t, http.StatusConflict, Status(fmt.Errorf("user already joined: %w", ErrConflict)))
	assert.Equal(t, http.StatusUnauthorized, Status(fmt.Errorf("invalid credentials: %w", ErrUnauthorized)))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("connection reset")))
}
