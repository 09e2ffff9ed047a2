package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without Redis the service must behave as an always-miss cache: writes
// and invalidations succeed silently, reads miss, and the health surface
// reports the cache as absent.
func TestNilClientDegradesToNoOp(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	assert.False(t, svc.IsAvailable())
	assert.Error(t, svc.Ping(ctx))

	assert.NoError(t, svc.Set(ctx, PrefixDashboard+"stats", map[string]int{"total": 3}, time.Minute))

	var out map[string]int
	assert.Error(t, svc.Get(ctx, PrefixDashboard+"stats", &out))

	assert.NoError(t, svc.InvalidateByPrefix(ctx, PrefixDashboard, PrefixContent))
}
