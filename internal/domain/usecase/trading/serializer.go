package trading

import (
	"context"
	"sync"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/usecase"
)

// defaultQueueDepth bounds how many trades may wait per user before
// enqueueing blocks
const defaultQueueDepth = 100

// tradeFunc is the unit of work executed inside a user's queue
type tradeFunc func(ctx context.Context) (*usecase.TradeResult, error)

// queuedTrade is one trade waiting in a user's queue
type queuedTrade struct {
	ctx        context.Context
	run        tradeFunc
	resultChan chan *queuedResult
}

// queuedResult carries the outcome back to the enqueuer
type queuedResult struct {
	result *usecase.TradeResult
	err    error
}

// UserSerializer executes trades strictly in order per user, so two
// concurrent requests for the same user cannot interleave their
// cash/holding checks. Trades for different users run independently.
type UserSerializer struct {
	logger coreport.Logger

	userQueues sync.Map // map[uint64]chan *queuedTrade
	workers    sync.WaitGroup
	queueDepth int
}

// NewUserSerializer creates a per-user trade serializer
func NewUserSerializer(logger coreport.Logger) *UserSerializer {
	return &UserSerializer{
		logger:     logger,
		queueDepth: defaultQueueDepth,
	}
}

// Do enqueues fn on the user's queue and waits for its result. The
// caller's ctx bounds both the wait for a queue slot and the wait for
// the outcome.
func (s *UserSerializer) Do(ctx context.Context, userID uint64, fn tradeFunc) (*usecase.TradeResult, error) {
	resultChan := make(chan *queuedResult, 1)

	var queue chan *queuedTrade
	queueIface, loaded := s.userQueues.LoadOrStore(userID, make(chan *queuedTrade, s.queueDepth))
	queue, ok := queueIface.(chan *queuedTrade)
	if !ok {
		s.logger.Error("Failed to type assert trade queue channel", nil)
		return nil, errs.ErrInternalServer
	}

	if !loaded {
		s.logger.Debug("Starting trade queue worker for user", map[string]any{
			"user_id": userID,
		})
		s.workers.Add(1)
		go s.drainUserQueue(userID, queue)
	}

	trade := &queuedTrade{
		ctx:        ctx,
		run:        fn,
		resultChan: resultChan,
	}

	select {
	case queue <- trade:
	case <-ctx.Done():
		s.logger.Warn("Context canceled while enqueueing trade", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}

	select {
	case res := <-resultChan:
		return res.result, res.err
	case <-ctx.Done():
		s.logger.Warn("Context canceled while waiting for trade result", map[string]any{
			"user_id": userID,
			"error":   ctx.Err().Error(),
		})
		return nil, ctx.Err()
	}
}

// drainUserQueue is the worker goroutine processing one user's trades
// in arrival order
func (s *UserSerializer) drainUserQueue(userID uint64, queue chan *queuedTrade) {
	defer s.workers.Done()

	for trade := range queue {
		// A trade whose requester already gave up is skipped, not run:
		// executing it would commit a ledger mutation nobody observes.
		if err := trade.ctx.Err(); err != nil {
			trade.resultChan <- &queuedResult{err: err}
			close(trade.resultChan)
			continue
		}

		result, err := trade.run(trade.ctx)
		trade.resultChan <- &queuedResult{result: result, err: err}
		close(trade.resultChan)
	}

	s.logger.Debug("Trade queue worker stopped", map[string]any{
		"user_id": userID,
	})
}

// Shutdown closes all queues and waits for in-flight trades to finish
func (s *UserSerializer) Shutdown() {
	s.logger.Info("Shutting down trade serializer", nil)

	s.userQueues.Range(func(userID, queueIface any) bool {
		if queue, ok := queueIface.(chan *queuedTrade); ok {
			close(queue)
		}
		return true
	})

	s.workers.Wait()
	s.logger.Info("Trade serializer shut down", nil)
}
