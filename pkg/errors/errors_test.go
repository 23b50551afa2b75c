package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	cause := stderrors.New("open failed")

	assert.Equal(t, "bad input: open failed", BadRequest("bad input", cause).Error())
	assert.Equal(t, "bad input", BadRequest("bad input", nil).Error())
	assert.Equal(t, "internal server error: open failed", Internal(cause).Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("missing file")
	assert.ErrorIs(t, NewNoData(cause), cause)
}

func TestConstructorCodes(t *testing.T) {
	cause := stderrors.New("boom")

	assert.Equal(t, ErrBadRequest, BadRequest("nope", cause).Code)
	assert.Equal(t, ErrNoData, NewNoData(cause).Code)
	assert.Equal(t, ErrInternal, Internal(cause).Code)
}
