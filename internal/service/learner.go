package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultLearnerWorkers   = 2
	defaultLearnerQueueSize = 64
	defaultLearnerTimeout   = 30 * time.Second
)

// FactExtractor is the work a learner job performs.
type FactExtractor interface {
	ExtractAndAdd(ctx context.Context, userMessage string) bool
}

// LearnerService runs fact extraction off the request path. Jobs never
// share the caller's context and their outcome only reaches the log.
type LearnerService struct {
	extractor FactExtractor
	logger    *zap.Logger

	workers int
	timeout time.Duration
	jobs    chan string
	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

func NewLearnerService(fe FactExtractor, workers, queueSize int, logger *zap.Logger) *LearnerService {
	if workers <= 0 {
		workers = defaultLearnerWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultLearnerQueueSize
	}
	return &LearnerService{
		extractor: fe,
		logger:    logger,
		workers:   workers,
		timeout:   defaultLearnerTimeout,
		jobs:      make(chan string, queueSize),
		stopCh:    make(chan struct{}),
	}
}

func (s *LearnerService) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Start launches the worker goroutines.
func (s *LearnerService) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.work(i)
	}
	s.logger.Info("learner started", zap.Int("workers", s.workers), zap.Int("queue_size", cap(s.jobs)))
}

// Stop signals the workers and waits for in-flight jobs to finish. Queued
// jobs that have not started are dropped.
func (s *LearnerService) Stop() {
	s.stopped.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
	if n := len(s.jobs); n > 0 {
		s.logger.Warn("learner stopped with pending jobs", zap.Int("dropped", n))
	} else {
		s.logger.Info("learner stopped")
	}
}

// Dispatch queues a message for extraction without blocking. It reports
// false when the job was dropped.
func (s *LearnerService) Dispatch(userMessage string) bool {
	select {
	case <-s.stopCh:
		s.logger.Warn("learner stopped, dropping extraction job")
		return false
	default:
	}

	select {
	case s.jobs <- userMessage:
		return true
	default:
		s.logger.Warn("learner queue full, dropping extraction job", zap.Int("queue_size", cap(s.jobs)))
		return false
	}
}

func (s *LearnerService) work(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopCh:
			return
		case msg := <-s.jobs:
			s.run(id, msg)
		}
	}
}

func (s *LearnerService) run(id int, msg string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extraction job panicked", zap.Int("worker", id), zap.Any("panic", r))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.extractor.ExtractAndAdd(ctx, msg)
}
