package database

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client, err := ConnectRedis(context.Background(), m.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	_, err = ConnectRedis(context.Background(), "127.0.0.1:1", "", 0)
	require.Error(t, err)
}

func TestConnectMongoWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoWithRetry(ctx, "mongodb://127.0.0.1:1", 50*time.Millisecond, 3)
	require.Error(t, err)
}

func TestNewDynamoClient(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	c, err := NewDynamoClient(context.Background(), "us-west-2", "http://localhost:8001")
	require.NoError(t, err)
	require.Equal(t, "us-west-2", c.Options().Region)
	require.Equal(t, "http://localhost:8001", *c.Options().BaseEndpoint)
}
