package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pending/internal/utils"
)

func TestCommandContextAccessorConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, found := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, found)

	executionContext := accessor.WithConfigurationFilePath(context.Background(), "/tmp/config.yaml")
	configurationFilePath, found := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, found)
	require.Equal(testInstance, "/tmp/config.yaml", configurationFilePath)
}
