package factorcache

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"
)

const mgmtRequestTimeout = 2 * time.Second

func newManagedCache(t *testing.T) (*FactorCache, string) {
	t.Helper()

	ctx := context.Background()

	cache, err := New(ctx, 4, WithManagementHTTP("127.0.0.1:0"))
	assert.Nil(t, err)

	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), mgmtRequestTimeout)
		defer cancel()

		_ = cache.Stop(shutdownCtx)
	})

	addr := cache.ManagementHTTPAddress()
	assert.True(t, addr != "")

	return cache, "http://" + addr
}

func mgmtDo(t *testing.T, method, url string) (int, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), mgmtRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	assert.Nil(t, err)

	resp, err := http.DefaultClient.Do(req)
	assert.Nil(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	assert.Nil(t, err)

	return resp.StatusCode, string(body)
}

func TestManagementHTTP_HealthAndConfig(t *testing.T) {
	cache, base := newManagedCache(t)

	status, body := mgmtDo(t, http.MethodGet, base+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	err := cache.Put(context.Background(), "key1", "value1", 1.0)
	assert.Nil(t, err)

	status, body = mgmtDo(t, http.MethodGet, base+"/config")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, `"capacity":4`))
	assert.True(t, strings.Contains(body, `"count":1`))
	assert.True(t, strings.Contains(body, `"evictionAlgorithm":"arc"`))
}

func TestManagementHTTP_StatsAndEviction(t *testing.T) {
	cache, base := newManagedCache(t)

	ctx := context.Background()

	err := cache.Put(ctx, "key1", "value1", 1.0)
	assert.Nil(t, err)

	cache.Get(ctx, "key1")

	status, body := mgmtDo(t, http.MethodGet, base+"/stats")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, "factorcache_get_count"))

	status, body = mgmtDo(t, http.MethodGet, base+"/eviction")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, `"t2Len":1`))
}

func TestManagementHTTP_Keys(t *testing.T) {
	cache, base := newManagedCache(t)

	ctx := context.Background()

	err := cache.Put(ctx, "keyA", "value", 3.0)
	assert.Nil(t, err)

	err = cache.Put(ctx, "keyB", "value", 1.0)
	assert.Nil(t, err)

	status, body := mgmtDo(t, http.MethodGet, base+"/keys?sort=ComputeCost&order=desc")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, `"count":2`))
	assert.True(t, strings.Index(body, "keyA") < strings.Index(body, "keyB"))

	status, _ = mgmtDo(t, http.MethodDelete, base+"/keys/keyA")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, cache.Count(ctx))
}

func TestManagementHTTP_Control(t *testing.T) {
	cache, base := newManagedCache(t)

	ctx := context.Background()

	err := cache.Put(ctx, "key1", "value1", 1.0)
	assert.Nil(t, err)

	status, body := mgmtDo(t, http.MethodPost, base+"/evict")
	assert.Equal(t, http.StatusAccepted, status)
	assert.True(t, strings.Contains(body, "key1"))
	assert.Equal(t, 0, cache.Count(ctx))

	err = cache.Put(ctx, "key2", "value2", 1.0)
	assert.Nil(t, err)

	status, _ = mgmtDo(t, http.MethodPost, base+"/clear")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, cache.Count(ctx))
}

func TestManagementHTTP_Export(t *testing.T) {
	cache, base := newManagedCache(t)

	err := cache.Put(context.Background(), "key1", "value1", 1.0)
	assert.Nil(t, err)

	status, body := mgmtDo(t, http.MethodGet, base+"/export")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, "eviction"))

	status, _ = mgmtDo(t, http.MethodGet, base+"/export?format=msgpack")
	assert.Equal(t, http.StatusOK, status)

	status, _ = mgmtDo(t, http.MethodGet, base+"/export?format=unknown")
	assert.Equal(t, http.StatusBadRequest, status)
}
