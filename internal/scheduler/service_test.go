package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/validateme/outreach/internal/config"
)

type countingJob struct {
	calls int32
	err   error
}

func (j *countingJob) Run(ctx context.Context) error {
	atomic.AddInt32(&j.calls, 1)
	return j.err
}

func TestService_Start_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  string
	}{
		{name: "Empty schedule", schedule: "", wantErr: "no digest schedule"},
		{name: "Garbage expression", schedule: "every morning", wantErr: "invalid DIGEST_SCHEDULE"},
		{name: "Five fields", schedule: "0 9 * * *", wantErr: "invalid DIGEST_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(&config.Config{DigestSchedule: tt.schedule}, &countingJob{})
			err := service.Start()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestService_Start_RunsJob(t *testing.T) {
	job := &countingJob{}
	service := NewService(&config.Config{DigestSchedule: "* * * * * *"}, job)

	require.NoError(t, service.Start())
	defer service.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&job.calls) > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestService_runJob_LogsFailure(t *testing.T) {
	job := &countingJob{err: errors.New("boom")}
	service := NewService(&config.Config{}, job)

	assert.NotPanics(t, service.runJob)
	assert.Equal(t, int32(1), atomic.LoadInt32(&job.calls))
}
