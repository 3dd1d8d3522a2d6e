package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_analyzer/internal/domain"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/internal/worker"
	"deal_analyzer/pkg/errcodes"
)

type fakeRunner struct {
	calls int
	err   error
}

func (f *fakeRunner) Run(context.Context) (entity.RunReport, error) {
	f.calls++

	if f.err != nil {
		return entity.RunReport{Error: f.err.Error()}, f.err
	}

	return entity.RunReport{TraceID: "trace", FilesProcessed: 2, DealCount: 3}, nil
}

func TestRunOnce(t *testing.T) {
	testCases := []struct {
		name      string
		runnerErr error
		expectErr bool
	}{
		{name: "Success"},
		{
			name:      "Runner error",
			runnerErr: domain.NewError(errcodes.LoadError, "data dir missing"),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			runner := &fakeRunner{err: tc.runnerErr}
			scheduler := worker.NewScheduler(runner)

			err := runOnce(context.Background(), scheduler)

			rq.Equal(1, runner.calls)
			rq.False(scheduler.Status().Running)
			rq.NotNil(scheduler.Status().LastReport)

			if tc.expectErr {
				rq.ErrorIs(err, tc.runnerErr)

				return
			}

			rq.NoError(err)
		})
	}
}
