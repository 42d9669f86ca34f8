// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yonota/internal/platform/ctxutil"
	"github.com/taibuivan/yonota/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestLogger_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Absent logger falls back to the default
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}

func TestAuthUser_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: "u-1", Username: "alice", Role: "user"}
	ctx = ctxutil.WithAuthUser(ctx, claims)
	assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
}
