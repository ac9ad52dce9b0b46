package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wehubfusion/Daedalus/pkg/generator"
	"github.com/wehubfusion/Daedalus/pkg/loader"
	"github.com/wehubfusion/Daedalus/pkg/spec"
)

// EntriesParallel generates count records split across workers. Suppliers
// hold mutable cursors, so every worker gets its own generator built from
// the same canonical spec; records land at their iteration index, so the
// output order matches the sequential form. Sampling types keep their
// randomness but sequential types stay deterministic per index.
func EntriesParallel(ctx context.Context, raw spec.RawSpec, count, workers int, opts Options) ([]generator.Record, error) {
	opts.normalize()
	if workers <= 1 || count <= workers {
		return Entries(ctx, raw, count, opts)
	}

	canonical, err := ParseSpecWith(raw, opts)
	if err != nil {
		return nil, err
	}

	records := make([]generator.Record, count)
	shards := shardRange(count, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	fail := func(iteration int, err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			opts.Logger.Error("parallel generation halted",
				zap.Int("iteration", iteration), zap.Error(err))
		}
		mu.Unlock()
		cancel()
	}

	for _, shard := range shards {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()

			gen := newWorkerGenerator(canonical, opts)
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				record, err := gen.Record(i)
				if err != nil {
					fail(i, err)
					return
				}
				records[i] = record
			}
		}(shard[0], shard[1])
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// newWorkerGenerator builds one worker's private generator with the same
// options NewGenerator would apply
func newWorkerGenerator(canonical *spec.Spec, opts Options) *generator.Generator {
	genOpts := []generator.Option{generator.WithLogger(opts.Logger)}
	if opts.StrictValidation {
		genOpts = append(genOpts, generator.WithLoaderOptions(loader.WithStrictValidation()))
	}
	genOpts = append(genOpts, opts.GeneratorOptions...)
	return generator.New(canonical, opts.Registry, genOpts...)
}

// shardRange splits [0, count) into per-worker contiguous ranges
func shardRange(count, workers int) [][2]int {
	if workers > count {
		workers = count
	}
	shards := make([][2]int, 0, workers)
	size := count / workers
	extra := count % workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + size
		if w < extra {
			hi++
		}
		shards = append(shards, [2]int{lo, hi})
		lo = hi
	}
	return shards
}
