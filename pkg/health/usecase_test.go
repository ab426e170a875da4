package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Durgatriveni/Task-backend/pkg/health"
	"github.com/Durgatriveni/Task-backend/pkg/health/checkers"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadyWithoutCheckers(t *testing.T) {
	require.NoError(t, health.NewService().Ready(context.Background()))
}

func TestReadyReportsFailingChecker(t *testing.T) {
	down := errors.New("connection refused")
	svc := health.NewService(
		checkers.NewPostgresChecker(pingFunc(func(context.Context) error { return nil })),
		checkers.NewPostgresChecker(pingFunc(func(context.Context) error { return down })),
	)

	err := svc.Ready(context.Background())
	require.ErrorIs(t, err, down)
	require.Contains(t, err.Error(), "postgres")
}

func TestPostgresCheckerBoundsPing(t *testing.T) {
	var hasDeadline bool
	c := checkers.NewPostgresChecker(pingFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}))

	require.NoError(t, c.Check(context.Background()))
	require.True(t, hasDeadline)
}
