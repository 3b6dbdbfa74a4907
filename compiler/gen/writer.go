package gen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer writes one schema file per converted model, formatting the files
// in parallel.
type Writer struct {
	graph   *Graph
	outDir  string
	opts    []FormatOption
	workers int

	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
	FormatTime   int64 // nanoseconds
	WriteTime    int64 // nanoseconds
}

// NewWriter creates a writer of the models of g into outDir.
func NewWriter(g *Graph, outDir string, opts ...FormatOption) *Writer {
	return &Writer{
		graph:   g,
		outDir:  outDir,
		opts:    opts,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// WriteAll writes the files of all complete models of the graph.
func (w *Writer) WriteAll(ctx context.Context) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewGenerationError("write", w.outDir, "create output directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, t := range w.graph.Models() {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write(t)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	w.graph.log.Info("schema files written",
		"dir", w.outDir,
		"files", w.metrics.FilesWritten,
		"bytes", w.metrics.TotalBytes,
	)
	return nil
}

// write formats and writes the file of a single model.
func (w *Writer) write(t *Type) error {
	start := time.Now()
	src, err := w.graph.Format(t, w.opts...)
	if err != nil {
		return err
	}
	path := filepath.Join(w.outDir, fileName(t))
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		// Keep the unformatted source next to the target for debugging.
		_ = os.WriteFile(path+".error", src, 0o644)
		return NewGenerationError("write", path, "format source", err)
	}
	formatTime := time.Since(start)

	start = time.Now()
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("write", path, "", err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(formatted))
	w.metrics.FormatTime += formatTime.Nanoseconds()
	w.metrics.WriteTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()
	w.graph.log.Debug("schema file written", "model", t.Name, "path", path)
	return nil
}

// Write writes the models of g into the target directory of its config.
func Write(ctx context.Context, g *Graph, opts ...FormatOption) error {
	if g.Target == "" {
		return NewConfigError("Target", g.Target, "target directory is required to write files")
	}
	return NewWriter(g, g.Target, opts...).WriteAll(ctx)
}
