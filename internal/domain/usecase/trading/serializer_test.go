package trading

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/mock"

	"github.com/finbharat/finbharat/internal/domain/port/usecase"
	coremocks "github.com/finbharat/finbharat/mocks/port/core"
)

func newSerializerForTest(t *testing.T) *UserSerializer {
	mockLogger := coremocks.NewMockLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return NewUserSerializer(mockLogger)
}

func TestUserSerializerRunsTradesInOrder(t *testing.T) {
	serializer := newSerializerForTest(t)
	defer serializer.Shutdown()

	const trades = 20
	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	gate := make(chan struct{})
	for i := 0; i < trades; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-gate
			// Stagger submissions so arrival order is deterministic
			time.Sleep(time.Duration(i) * 5 * time.Millisecond)
			_, err := serializer.Do(context.Background(), 1, func(ctx context.Context) (*usecase.TradeResult, error) {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return &usecase.TradeResult{}, nil
			})
			assert.NoError(t, err)
		}()
	}
	close(gate)
	wg.Wait()

	require.Len(t, order, trades)
	for i, got := range order {
		assert.Equal(t, i, got, "trade %d ran out of order", i)
	}
}

func TestUserSerializerIndependentUsers(t *testing.T) {
	serializer := newSerializerForTest(t)
	defer serializer.Shutdown()

	// User 1's queue is blocked; user 2's trade must still complete.
	release := make(chan struct{})
	blockedStarted := make(chan struct{})

	go func() {
		_, _ = serializer.Do(context.Background(), 1, func(ctx context.Context) (*usecase.TradeResult, error) {
			close(blockedStarted)
			<-release
			return &usecase.TradeResult{}, nil
		})
	}()
	<-blockedStarted

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := serializer.Do(context.Background(), 2, func(ctx context.Context) (*usecase.TradeResult, error) {
			return &usecase.TradeResult{}, nil
		})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("trade for an independent user was blocked")
	}
	close(release)
}

func TestUserSerializerSkipsCanceledTrades(t *testing.T) {
	serializer := newSerializerForTest(t)
	defer serializer.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executed := false
	_, err := serializer.Do(ctx, 1, func(ctx context.Context) (*usecase.TradeResult, error) {
		executed = true
		return &usecase.TradeResult{}, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, executed, "a canceled trade must not execute")
}

func TestUserSerializerShutdownWaitsForInFlight(t *testing.T) {
	serializer := newSerializerForTest(t)

	started := make(chan struct{})
	finished := false

	go func() {
		_, _ = serializer.Do(context.Background(), 1, func(ctx context.Context) (*usecase.TradeResult, error) {
			close(started)
			time.Sleep(100 * time.Millisecond)
			finished = true
			return &usecase.TradeResult{}, nil
		})
	}()

	<-started
	serializer.Shutdown()
	assert.True(t, finished, "Shutdown returned before the in-flight trade finished")
}
