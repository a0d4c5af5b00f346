package quota

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCounterRedis_Count(t *testing.T) {
	t.Run("missing key counts as zero", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		counter := NewScanCounterRedis(client, "scans")

		mock.ExpectGet("scans:user:42").RedisNil()

		n, err := counter.Count(context.Background(), 42)

		require.NoError(t, err)
		assert.Zero(t, n, "missing key must count as zero")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing key returns its value", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		counter := NewScanCounterRedis(client, "scans")

		mock.ExpectGet("scans:user:42").SetVal("3")

		n, err := counter.Count(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScanCounterRedis_Increment(t *testing.T) {
	client, mock := redismock.NewClientMock()
	counter := NewScanCounterRedis(client, "scans")

	mock.ExpectIncr("scans:user:42").SetVal(1)

	n, err := counter.Increment(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanCounterRedis_Reset(t *testing.T) {
	client, mock := redismock.NewClientMock()
	counter := NewScanCounterRedis(client, "scans")

	mock.ExpectDel("scans:user:42").SetVal(1)

	err := counter.Reset(context.Background(), 42)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
