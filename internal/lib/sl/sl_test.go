package sl_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/canteen/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	attr := sl.Err(errors.New("something went wrong"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestNewWithWriter(t *testing.T) {
	t.Run("prod writes json and skips debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := sl.NewWithWriter("prod", &buf)
		log.Debug("hidden")
		log.Info("visible", slog.String("op", "test"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "visible", entry["msg"])
		assert.Equal(t, "test", entry["op"])
	})

	t.Run("local writes text with debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := sl.NewWithWriter("local", &buf)
		log.Debug("shown")
		assert.Contains(t, buf.String(), "msg=shown")
	})
}
