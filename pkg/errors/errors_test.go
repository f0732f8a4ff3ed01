package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/atlas/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "descriptor",
			ID:       "ch.swisstopo.swissimage10",
		}
		assert.Equal(t, "descriptor with ID ch.swisstopo.swissimage10 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("metadata", "_meta.json")
		assert.Equal(t, "metadata with ID _meta.json not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := pkgerrors.NewParseError("json", "_meta.json", "unexpected end of JSON input", nil)
		err := &pkgerrors.NotFoundError{Resource: "metadata", ID: "_meta.json", Err: cause}
		assert.Contains(t, err.Error(), "unexpected end of JSON input")
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, pkgerrors.IsParseError(err))

		var parseErr *pkgerrors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "_meta.json", parseErr.File)
	})

	t.Run("joined error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("descriptor", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	err := pkgerrors.NewAlreadyExistsError("catalog", "./atlas")
	assert.Equal(t, "catalog ./atlas already exists", err.Error())
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "layerId",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field layerId: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid descriptor",
		}
		assert.Equal(t, "validation failed: invalid descriptor", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("layerId", "../etc", "must not contain path separators")
		assert.Contains(t, err.Error(), "layerId")
		assert.Contains(t, err.Error(), "path separators")
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file and field", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "iso8601",
			File:    "ch.test.a.json",
			Field:   "dateCreated",
			Message: "cannot parse \"yesterday\"",
		}
		assert.Contains(t, err.Error(), "ch.test.a.json")
		assert.Contains(t, err.Error(), "dateCreated")
		assert.True(t, pkgerrors.IsParseError(err))
	})

	t.Run("with file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "ch.test.a.json", "invalid character", nil)
		assert.Equal(t, "parse error in json file ch.test.a.json: invalid character", err.Error())
	})

	t.Run("field only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "iso8601", Field: "dateModified", Message: "bad"}
		assert.Equal(t, "iso8601 parse error in field dateModified: bad", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("unexpected EOF")
		err := pkgerrors.WrapParse("json", "x.json", base)
		assert.True(t, errors.Is(err, base))
		assert.True(t, pkgerrors.IsParseError(err))
		assert.Nil(t, pkgerrors.WrapParse("json", "x.json", nil))
	})
}

func TestIOError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.IOError{
			Operation: "read",
			Path:      "/tmp/atlas/_meta.json",
			Message:   "permission denied",
			Err:       errors.New("permission denied"),
		}
		assert.Contains(t, err.Error(), "read")
		assert.Contains(t, err.Error(), "/tmp/atlas/_meta.json")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/atlas/ch.test.a.json", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("list", "./atlas", errors.New("not a directory"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "list", ioErr.Operation)
		assert.Equal(t, "./atlas", ioErr.Path)
		assert.Nil(t, pkgerrors.WrapIO("list", "./atlas", nil))
	})
}

func TestResourceError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ResourceError{
			Operation: "create",
			Resource:  "catalog",
			ID:        "./atlas",
			Message:   "already exists",
			Err:       pkgerrors.ErrAlreadyExists,
		}
		assert.Contains(t, err.Error(), "create")
		assert.Contains(t, err.Error(), "catalog")
		assert.True(t, errors.Is(err, pkgerrors.ErrAlreadyExists))
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapResource("write", "descriptor", "ch.test.a", errors.New("boom"))
		resErr, ok := err.(*pkgerrors.ResourceError)
		require.True(t, ok)
		assert.Equal(t, "write", resErr.Operation)
		assert.Equal(t, "descriptor", resErr.Resource)
		assert.Nil(t, pkgerrors.WrapResource("write", "descriptor", "x", nil))
	})
}
