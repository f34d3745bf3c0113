package controllers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"clinicbook-backend/config"
	"clinicbook-backend/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", nil)
	return c
}

func TestInvalidateBookingCache_DropsTodayToo(t *testing.T) {
	mr := miniredis.RunT(t)
	config.Cache = config.NewCacheStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	defer func() { config.Cache = nil }()

	ctx := context.Background()
	today := utils.DateOf(time.Now())
	require.NoError(t, config.Cache.SetJSON(ctx, config.DashboardKey(today), "today", 0))
	require.NoError(t, config.Cache.SetJSON(ctx, config.DashboardKey("2030-01-02"), "future", 0))

	// A booking on another day still changes today's monthly revenue and
	// pending counts, so both dashboard entries must go.
	invalidateBookingCache(testContext(), "2030-01-02")

	var out string
	hit, err := config.Cache.GetJSON(ctx, config.DashboardKey("2030-01-02"), &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	hit, err = config.Cache.GetJSON(ctx, config.DashboardKey(today), &out)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateBookingCache_NilCache(t *testing.T) {
	config.Cache = nil

	assert.NotPanics(t, func() {
		invalidateBookingCache(testContext(), "2030-01-02")
	})
}
