package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct{ calls atomic.Int32 }

func (p *countingPruner) Prune() int {
	p.calls.Add(1)
	return 1
}

func TestRunOnce(t *testing.T) {
	p := &countingPruner{}
	New(p, time.Minute).RunOnce()
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestStartRunsJob(t *testing.T) {
	p := &countingPruner{}
	s := New(p, time.Second)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartDisabled(t *testing.T) {
	s := New(nil, time.Minute)
	assert.NoError(t, s.Start())
	s.Stop()

	s = New(&countingPruner{}, 0)
	assert.NoError(t, s.Start())
	s.Stop()
}
