package device

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "emend/pkg/domain-errors"
)

const chromeLinuxUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestDecode(t *testing.T) {
	t.Run("no token falls back to user agent", func(t *testing.T) {
		desc, err := Decode("", chromeLinuxUA)
		require.NoError(t, err)
		assert.Empty(t, desc.DeviceID)
		assert.Equal(t, "Chrome", desc.Browser)
		assert.Equal(t, "Linux x86_64", desc.Platform)
		assert.False(t, desc.Mobile)
	})

	t.Run("decodes token header", func(t *testing.T) {
		header := base64.StdEncoding.EncodeToString(
			[]byte(`{"device_id":"dev-123","attributes":{"model":"Pixel 8"}}`))

		desc, err := Decode(header, chromeLinuxUA)
		require.NoError(t, err)
		assert.Equal(t, "dev-123", desc.DeviceID)
		assert.Equal(t, "Pixel 8", desc.Attributes["model"])
		assert.Equal(t, "Chrome", desc.Browser)
	})

	t.Run("rejects non-base64 header", func(t *testing.T) {
		_, err := Decode("%%%not-base64%%%", chromeLinuxUA)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects token without device id", func(t *testing.T) {
		header := base64.StdEncoding.EncodeToString([]byte(`{"attributes":{}}`))
		_, err := Decode(header, chromeLinuxUA)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("empty everything yields empty descriptor", func(t *testing.T) {
		desc, err := Decode("", "")
		require.NoError(t, err)
		assert.Equal(t, Descriptor{}, desc)
	})
}
