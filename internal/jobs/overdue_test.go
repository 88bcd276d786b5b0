package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingSource struct {
	calls atomic.Int32
	n     int
	err   error
}

func (s *countingSource) ReportOverdue(ctx context.Context) (int, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("report without deadline")
	}
	return s.n, s.err
}

func TestNewOverdueReporter_RejectsBadSpec(t *testing.T) {
	_, err := NewOverdueReporter("every now and then", &countingSource{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every now and then")
}

func TestOverdueReporter_RunLogsOutcome(t *testing.T) {
	tests := []struct {
		name  string
		src   *countingSource
		level zap.AtomicLevel
		msg   string
	}{
		{"found", &countingSource{n: 3}, zap.NewAtomicLevelAt(zap.InfoLevel), "overdue bookings reported"},
		{"none", &countingSource{}, zap.NewAtomicLevelAt(zap.DebugLevel), "no overdue bookings"},
		{"failed", &countingSource{err: errors.New("db down")}, zap.NewAtomicLevelAt(zap.ErrorLevel), "overdue report failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(tt.level)
			r, err := NewOverdueReporter("@every 1h", tt.src, zap.New(core))
			require.NoError(t, err)

			r.Run()

			assert.EqualValues(t, 1, tt.src.calls.Load())
			require.Equal(t, 1, logs.FilterMessage(tt.msg).Len())
		})
	}
}

func TestOverdueReporter_Schedules(t *testing.T) {
	src := &countingSource{}
	r, err := NewOverdueReporter("@every 1s", src, nil)
	require.NoError(t, err)

	r.Start()
	assert.Eventually(t, func() bool { return src.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
	after := src.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, after, src.calls.Load())
}
