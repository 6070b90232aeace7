package prepwise

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults with a secret from the environment", func(t *testing.T) {
		viper.Reset()
		t.Setenv("AUTH_SECRET", base64.StdEncoding.EncodeToString(testSecret))

		config, err := LoadConfig()
		require.Nil(t, err)
		require.Nil(t, config.Validate())

		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, DevMode, config.Mode)
		assert.Equal(t, []byte(testSecret), []byte(config.Auth.Secret))
		assert.Equal(t, 7*24*time.Hour, config.Auth.TokenValidity)
		assert.Equal(t, 10, config.Auth.BcryptCost)
	})

	t.Run("missing secret is a validation error", func(t *testing.T) {
		viper.Reset()

		config, err := LoadConfig()
		require.Nil(t, err)
		err = config.Validate()
		require.NotNil(t, err)
		assert.Contains(t, FormatValidationErrors(err), "secret")
	})

	t.Run("secret must not be short", func(t *testing.T) {
		viper.Reset()
		t.Setenv("AUTH_SECRET", base64.StdEncoding.EncodeToString([]byte("short")))

		config, err := LoadConfig()
		require.Nil(t, err)
		require.NotNil(t, config.Validate())
	})
}
