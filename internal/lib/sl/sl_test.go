package sl_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestSetupLogger_Levels(t *testing.T) {
	ctx := context.Background()

	assert.True(t, sl.SetupLogger(sl.EnvLocal).Enabled(ctx, slog.LevelDebug))
	assert.True(t, sl.SetupLogger(sl.EnvDev).Enabled(ctx, slog.LevelDebug))
	assert.False(t, sl.SetupLogger(sl.EnvProd).Enabled(ctx, slog.LevelDebug))
	assert.True(t, sl.SetupLogger(sl.EnvProd).Enabled(ctx, slog.LevelInfo))
}
