package database_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-apparel/keystone/internal/database"
)

func TestNewRedis(t *testing.T) {
	ctx := context.Background()

	rdb, err := database.NewRedis(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, rdb)

	mr := miniredis.RunT(t)

	rdb, err = database.NewRedis(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()

	require.NoError(t, rdb.Set(ctx, "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))

	_, err = database.NewRedis(ctx, "not-a-url")
	assert.ErrorContains(t, err, "parsing redis url")

	addr := mr.Addr()
	mr.Close()

	_, err = database.NewRedis(ctx, "redis://"+addr)
	assert.ErrorContains(t, err, "pinging redis")
}
