package connector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConfigDefaults(t *testing.T) {
	cfg := &RedisConfig{Addr: "127.0.0.1:6379"}
	require.NoError(t, cfg.validate())

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 10, cfg.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
}

func TestRedisConfigValidate(t *testing.T) {
	assert.Error(t, (&RedisConfig{}).validate())
	assert.Error(t, (&RedisConfig{Addr: "127.0.0.1:6379", DB: -1}).validate())
}

func TestNewRedisNilConfig(t *testing.T) {
	_, err := NewRedis(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestNewRedisInvalidConfig(t *testing.T) {
	_, err := NewRedis(&RedisConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestEtcdConfigDefaults(t *testing.T) {
	cfg := &EtcdConfig{Endpoints: []string{"127.0.0.1:2379"}}
	require.NoError(t, cfg.validate())

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
}

func TestEtcdConfigValidate(t *testing.T) {
	assert.Error(t, (&EtcdConfig{}).validate())
}

func TestNewEtcdNilConfig(t *testing.T) {
	_, err := NewEtcd(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRedisConnectorLifecycle(t *testing.T) {
	conn, err := NewRedis(&RedisConfig{Name: "unit", Addr: "127.0.0.1:6379"})
	require.NoError(t, err)

	assert.Equal(t, "unit", conn.Name())
	assert.False(t, conn.IsHealthy())
	assert.NotNil(t, conn.GetClient())

	require.NoError(t, conn.Close())
	assert.Nil(t, conn.GetClient())
	// Close 是幂等的
	require.NoError(t, conn.Close())
}
