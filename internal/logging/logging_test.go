package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"inventory/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	prod, err := logging.New(logging.Options{Mode: "production"})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	dev, err := logging.New(logging.Options{Mode: "development"})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.log")

	flush, err := logging.Setup(logging.Options{Mode: "production", Filename: path})
	require.NoError(t, err)
	zap.L().Info("product created", zap.Uint("product_id", 21))
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"product created"`)
	assert.Contains(t, string(data), `"product_id":21`)
}
