package reconciler

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/hub-shuttle/internal/logger"
)

// Pool fans reconciliation out over a bounded worker pool. Each fid is one
// task, so at most one reconciliation is in flight per fid.
type Pool struct {
	reconciler *Reconciler
	pool       pond.Pool
}

// NewPool creates a pool running up to workers concurrent fid reconciliations
func NewPool(r *Reconciler, workers int) *Pool {
	return &Pool{
		reconciler: r,
		pool:       pond.NewPool(workers),
	}
}

// ReconcileFids reconciles every fid and waits for all of them. Failed fids
// are logged and do not stop the others; the joined error is returned.
func (p *Pool) ReconcileFids(ctx context.Context, fids []uint64, hook Hook) error {
	tasks := make([]pond.Task, 0, len(fids))
	for _, fid := range fids {
		tasks = append(tasks, p.pool.SubmitErr(func() error {
			if err := p.reconciler.ReconcileFid(ctx, fid, hook); err != nil {
				logger.ErrorCtx(ctx, err, zap.Uint64("fid", fid))
				return err
			}
			logger.InfoCtx(ctx, "fid reconciled", zap.Uint64("fid", fid))
			return nil
		}))
	}
	var errs []error
	for _, task := range tasks {
		if err := task.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stop waits for in-flight tasks and releases the pool
func (p *Pool) Stop() {
	p.pool.StopAndWait()
}
