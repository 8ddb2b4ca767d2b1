package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/kamusis/skilldex/internal/extract"
	"github.com/kamusis/skilldex/internal/logger"
)

// BuildOptions controls a collection build.
type BuildOptions struct {
	Sources []Source
	Output  string
	Name    string
	Version string
	Extract extract.Options

	// IncludeFallbackTitles keeps skills whose name could not be discovered.
	IncludeFallbackTitles bool
	// LockTimeout bounds the wait for a concurrent build on the same output.
	LockTimeout time.Duration
	// Now stamps metadata.created; time.Now when nil.
	Now func() time.Time
}

// Report summarizes what a build indexed and skipped.
type Report struct {
	Output    string
	Skills    int
	Documents int
	Skipped   int
	// Warnings collects the non-fatal source and extraction failures.
	Warnings *multierror.Error
}

// Total returns the number of indexed entries.
func (r *Report) Total() int {
	return r.Skills + r.Documents
}

// Build scans every source, extracts each artifact and writes the resulting
// collection to opts.Output, replacing any previous collection.
//
// Unavailable sources and artifacts that fail extraction are logged and
// skipped. Only persistence failures abort the build.
func Build(ctx context.Context, opts BuildOptions) (*Collection, *Report, error) {
	if opts.Output == "" {
		return nil, nil, fmt.Errorf("output path is required")
	}
	for _, s := range opts.Sources {
		if err := s.validate(); err != nil {
			return nil, nil, err
		}
		if _, ok := extract.ParseKind(s.Type); !ok {
			return nil, nil, fmt.Errorf("source %s: unknown type %q", s.Root, s.Type)
		}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
		return nil, nil, fmt.Errorf("%w: cannot create output dir: %w", ErrPersistence, err)
	}
	unlock, err := acquireBuildLock(ctx, opts.Output, opts.LockTimeout)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	col := NewCollection(opts.Name, opts.Version, now())
	rep := &Report{Output: opts.Output}

	seq := 0
	for _, s := range opts.Sources {
		seq, err = indexSource(ctx, s, opts, col, rep, seq)
		if err != nil {
			return nil, rep, err
		}
	}
	col.Metadata.TotalItems = col.Len()

	if err := Write(opts.Output, col); err != nil {
		return nil, rep, err
	}
	logger.G(ctx).WithFields(logrus.Fields{
		"output":    opts.Output,
		"skills":    rep.Skills,
		"documents": rep.Documents,
		"skipped":   rep.Skipped,
	}).Info("collection written")
	return col, rep, nil
}

// indexSource adds the artifacts of s to col, issuing keys from seq on, and
// returns the next sequence number.
func indexSource(ctx context.Context, s Source, opts BuildOptions, col *Collection, rep *Report, seq int) (int, error) {
	kind, _ := extract.ParseKind(s.Type)
	log := logger.G(ctx).WithFields(logrus.Fields{"root": s.Root, "type": kind})

	paths, err := Discover(s)
	if err != nil {
		log.WithError(err).Warn("skipping unavailable source")
		rep.Warnings = multierror.Append(rep.Warnings, err)
		return seq, nil
	}

	for _, p := range paths {
		rec, err := extract.Extract(p, kind, opts.Extract)
		if err != nil {
			log.WithError(err).WithField("path", p).Warn("skipping artifact")
			rep.Warnings = multierror.Append(rep.Warnings, err)
			rep.Skipped++
			continue
		}
		if rec.HasFallbackTitle() && !opts.IncludeFallbackTitles {
			log.WithField("path", p).Debug("skipping skill without a name")
			rep.Skipped++
			continue
		}

		key := fmt.Sprintf("%s_%04d", s.Prefix, seq)
		if err := col.Add(key, EntryFromRecord(rec)); err != nil {
			return seq, err
		}
		seq++

		switch kind {
		case extract.KindSkill:
			rep.Skills++
		case extract.KindDocument:
			rep.Documents++
		}
	}
	return seq, nil
}
