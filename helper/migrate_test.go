package helper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/helper"
)

func TestActions(t *testing.T) {
	assert.Equal(t, []string{"down", "drop", "step-up", "up"}, helper.Actions())
}

func TestRun_UnknownActionNeverConnects(t *testing.T) {
	err := helper.Run(&config.Config{}, "sideways")

	require.ErrorIs(t, err, helper.ErrUnknownAction)
	assert.Contains(t, err.Error(), "down, drop, step-up, up")
}
