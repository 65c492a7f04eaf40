package upload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

type State int32

const (
	NotStarted State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

type Uploader interface {
	Upload(ctx context.Context, args Args) (Summary, error)
}

// Runner executes uploads on a background goroutine and waits for the outcome.
// Only one upload runs at a time: a request received while an upload is in
// progress is rejected with ErrBusy.
type Runner struct {
	uploader Uploader
	guard    *semaphore.Weighted
	state    atomic.Int32
}

func NewRunner(uploader Uploader) *Runner {
	return &Runner{
		uploader: uploader,
		guard:    semaphore.NewWeighted(1),
	}
}

func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run blocks until the upload completes and always returns a Result. There is
// no timeout: cancelling ctx is forwarded to the converter and remote service
// but Run still waits for the background upload to return.
func (r *Runner) Run(ctx context.Context, args Args) Result {
	run := uuid.NewString()
	logger := slog.With(slog.String("run", run))

	if strings.TrimSpace(args.File) == "" {
		logger.Warn("upload rejected", slog.Any("error", ErrNoFileSelected))
		return failed(run, ErrNoFileSelected)
	}

	if !r.guard.TryAcquire(1) {
		logger.Warn("upload rejected", slog.Any("error", ErrBusy))
		return failed(run, ErrBusy)
	}

	defer r.guard.Release(1)

	r.state.Store(int32(Running))
	defer r.state.Store(int32(Completed))

	logger.Info("upload started",
		slog.String("file", args.File),
		slog.String("spreadsheet", args.Spreadsheet),
		slog.String("worksheet", args.Worksheet))

	done := make(chan Result, 1)

	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- failed(run, fmt.Errorf("internal error (%v)", v))
			}
		}()

		if summary, err := r.uploader.Upload(ctx, args); err != nil {
			done <- failed(run, err)
		} else {
			done <- succeeded(run, summary)
		}
	}()

	result := <-done

	if result.OK() {
		logger.Info("upload completed", slog.String("message", result.Message))
	} else {
		logger.Warn("upload failed", slog.String("message", result.Message))
	}

	return result
}
