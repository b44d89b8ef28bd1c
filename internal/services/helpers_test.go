package services

import (
	"context"
	"testing"
	"time"

	"github.com/sjperalta/debtbook-api/internal/database"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/stretchr/testify/require"
)

const workerID = "1"

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type testEnv struct {
	repos  *repository.Repositories
	reader *snapshotReader
}

// newTestEnv returns an in-memory store, seeded unless empty is set
func newTestEnv(t *testing.T, seeded bool) testEnv {
	t.Helper()
	repos := repository.NewMemoryRepositories(repository.NewMemoryStore())
	if seeded {
		require.NoError(t, database.Seed(context.Background(), repos, database.DefaultSeed()))
	}
	return testEnv{repos: repos, reader: newSnapshotReader(repos)}
}

func newTestWorker(t *testing.T) *jobs.Worker {
	t.Helper()
	w := jobs.NewWorker(1)
	t.Cleanup(w.Shutdown)
	return w
}
