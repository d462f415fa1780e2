package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) RefreshMirror(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestNewScheduler_RegistersJob(t *testing.T) {
	s, err := NewScheduler(&countingRefresher{}, "0 */5 * * * *", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Jobs())
}

func TestNewScheduler_EmptyScheduleHasNoJobs(t *testing.T) {
	s, err := NewScheduler(&countingRefresher{}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Jobs())
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(&countingRefresher{}, "every five minutes", nil)
	assert.Error(t, err)
}

func TestRefreshJob_CallsRefresher(t *testing.T) {
	r := &countingRefresher{err: errors.New("store down")}
	s, err := NewScheduler(r, "", nil)
	require.NoError(t, err)

	s.refreshJob(r)()
	s.refreshJob(r)()
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(&countingRefresher{}, "@every 1h", nil)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
