package infra

import (
	"context"
	"testing"

	"catalog/infra/memory"
	"catalog/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepository(t *testing.T) {
	repo, err := NewRepository(context.Background(), &config.AppConfig{StorageDriver: config.StorageDriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Repository{}, repo)

	_, err = NewRepository(context.Background(), &config.AppConfig{StorageDriver: "mongo"})
	assert.EqualError(t, err, `unknown storage driver "mongo"`)
}
