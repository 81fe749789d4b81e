package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"pdf_press/pdf"
	"pdf_press/store"
)

// Operation names recorded with each job.
const (
	OpCompress = "compress"
	OpMerge    = "merge"
)

// DefaultTargetMB is applied when a compress request carries no target.
const DefaultTargetMB = 9

// Options configures a Processor.
type Options struct {
	// Workers is the size of the job pool. Zero means one per CPU.
	Workers int
	// Timeout bounds a single job. Zero disables the bound.
	Timeout time.Duration
	// Store, when set, receives a record per finished job.
	Store *store.Store
	// Logger defaults to the logrus standard logger.
	Logger *logrus.Logger
}

// Processor runs merge and compression jobs on a bounded worker pool.
type Processor struct {
	pool    *ants.Pool
	timeout time.Duration
	store   *store.Store
	log     *logrus.Logger
}

// Request describes one job.
type Request struct {
	Op       string
	Buffers  [][]byte
	TargetMB float64
}

// Response carries the produced document and its processing summary.
type Response struct {
	JobID      string
	Bytes      []byte
	Outcome    pdf.Outcome
	MergedSize int
	FinalSize  int
	Attempts   int
	Duration   time.Duration
}

// NewProcessor builds a Processor with a worker pool of the configured size.
func NewProcessor(opts Options) (*Processor, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{
		pool:    pool,
		timeout: opts.Timeout,
		store:   opts.Store,
		log:     log,
	}, nil
}

// Close releases the worker pool.
func (p *Processor) Close() {
	p.pool.Release()
}

// Process runs one job on the pool. The configured timeout and any deadline
// already on ctx both bound the job; a job cut short fails with a ReduceError
// wrapping the context error.
func (p *Processor) Process(ctx context.Context, req Request) (*Response, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	type result struct {
		resp *Response
		err  error
	}
	done := make(chan result, 1)
	if err := p.pool.Submit(func() {
		resp, err := p.run(req)
		done <- result{resp, err}
	}); err != nil {
		return nil, fmt.Errorf("submit job: %w", err)
	}

	select {
	case res := <-done:
		return res.resp, res.err
	case <-ctx.Done():
		return nil, &pdf.ReduceError{Err: ctx.Err()}
	}
}

func (p *Processor) run(req Request) (*Response, error) {
	start := time.Now()
	jobID := uuid.NewString()
	logger := p.log.WithFields(logrus.Fields{
		"job":    jobID,
		"op":     req.Op,
		"inputs": len(req.Buffers),
	})

	var inputBytes int64
	for _, b := range req.Buffers {
		inputBytes += int64(len(b))
	}

	merged, err := pdf.Merge(req.Buffers)
	if err != nil {
		logger.WithError(err).Warn("merge failed")
		return nil, err
	}

	resp := &Response{
		JobID:      jobID,
		Bytes:      merged,
		Outcome:    pdf.OutcomeSuccess,
		MergedSize: len(merged),
		FinalSize:  len(merged),
	}

	if req.Op == OpCompress {
		targetMB := req.TargetMB
		if targetMB <= 0 {
			targetMB = DefaultTargetMB
		}
		res, err := pdf.Reduce(merged, targetMB*1024)
		if err != nil {
			logger.WithError(err).Warn("reduce failed")
			return nil, err
		}
		resp.Bytes = res.Bytes
		resp.Outcome = res.Outcome
		resp.FinalSize = len(res.Bytes)
		resp.Attempts = len(res.Trail)
	}

	resp.Duration = time.Since(start)
	logger.WithFields(logrus.Fields{
		"merged_size": resp.MergedSize,
		"final_size":  resp.FinalSize,
		"outcome":     resp.Outcome.String(),
		"attempts":    resp.Attempts,
		"duration":    resp.Duration,
	}).Info("job finished")

	p.record(req, resp, inputBytes)
	return resp, nil
}

// record persists a job summary. Store failures are logged, never surfaced,
// so persistence problems cannot fail a finished job.
func (p *Processor) record(req Request, resp *Response, inputBytes int64) {
	if p.store == nil {
		return
	}
	rec := &store.JobRecord{
		ID:          resp.JobID,
		Operation:   req.Op,
		InputCount:  len(req.Buffers),
		InputBytes:  inputBytes,
		OutputBytes: int64(resp.FinalSize),
		Outcome:     resp.Outcome.String(),
		Attempts:    resp.Attempts,
		DurationMS:  resp.Duration.Milliseconds(),
	}
	if err := p.store.Save(rec); err != nil {
		p.log.WithError(err).Warn("persist job record")
	}
}

// Jobs lists recent job records, newest first. Without a store it returns an
// empty list.
func (p *Processor) Jobs(limit int) ([]store.JobRecord, error) {
	if p.store == nil {
		return []store.JobRecord{}, nil
	}
	return p.store.Recent(limit)
}
