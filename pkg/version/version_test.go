package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	t.Run("linked version wins", func(t *testing.T) {
		old := version
		t.Cleanup(func() { version = old })

		version = "v1.2.3"
		assert.Equal(t, "v1.2.3", GetVersion())
	})

	t.Run("never empty", func(t *testing.T) {
		old := version
		t.Cleanup(func() { version = old })

		version = ""
		assert.NotEmpty(t, GetVersion())
	})
}
