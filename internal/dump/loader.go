package dump

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/RecursivePineapple/recex-analyzer/internal/errors"
	"github.com/RecursivePineapple/recex-analyzer/internal/logging"
)

// Container magic bytes. Dumps are often compressed before being shipped
// around; the loader accepts plain, gzip and zstd containers transparently.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Load reads, decompresses and decodes one dump file into a Snapshot.
//
// On success every machine recipe has its four descriptor lists sorted with
// the canonical total order, so recipes coming out of the loader are already
// comparable. Returns a typed error: IoError for unreadable files,
// FormatError for JSON that does not match the dump schema, MissingSource
// when the dump has no machine-recipe source.
func Load(path string, logger *logging.Logger) (*Snapshot, error) {
	logger.Info("reading dump", map[string]interface{}{"path": path})

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Newf(errors.IoError, err, "cannot open dump %q", path)
	}
	defer func() { _ = f.Close() }()

	reader, err := decompressed(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, errors.Newf(errors.IoError, err, "cannot read dump %q", path)
	}

	var snapshot Snapshot
	dec := json.NewDecoder(reader)
	if err := dec.Decode(&snapshot); err != nil {
		return nil, errors.Newf(errors.FormatError, err, "dump %q does not match the expected shape", path)
	}

	if _, ok := snapshot.Machines(); !ok {
		return nil, errors.Newf(errors.MissingSource, nil, "dump %q has no machine recipe source", path)
	}

	Normalize(&snapshot)

	logger.Info("finished loading dump", map[string]interface{}{"path": path})
	return &snapshot, nil
}

// Normalize sorts every machine recipe's descriptor lists in place using the
// canonical total order. Both snapshots of a comparison must pass through
// here, or input-signature equality across them is undefined.
func Normalize(s *Snapshot) {
	machines, ok := s.Machines()
	if !ok {
		return
	}
	for m := range machines {
		for r := range machines[m].Recipes {
			recipe := &machines[m].Recipes[r]
			sortItemStacks(recipe.ItemInputs)
			sortFluidStacks(recipe.FluidInputs)
			sortItemStacks(recipe.ItemOutputs)
			sortFluidStacks(recipe.FluidOutputs)
		}
	}
}

func sortItemStacks(stacks []ItemStack) {
	sort.SliceStable(stacks, func(i, j int) bool {
		return CompareItemStacks(&stacks[i], &stacks[j]) < 0
	})
}

func sortFluidStacks(stacks []FluidStack) {
	sort.SliceStable(stacks, func(i, j int) bool {
		return CompareFluidStacks(&stacks[i], &stacks[j]) < 0
	})
}

// LoadPair loads the before and after dumps concurrently and joins on both.
// The two loads share no mutable state; the first error encountered aborts
// the other via the group context and is returned.
//
// When afterPath is empty the tool runs in self-diff mode: the after
// snapshot is a deep copy of the before snapshot.
func LoadPair(ctx context.Context, beforePath, afterPath string, logger *logging.Logger) (*Snapshot, *Snapshot, error) {
	if afterPath == "" {
		before, err := Load(beforePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return before, before.Clone(), nil
	}

	var before, after *Snapshot

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		before, err = Load(beforePath, logger)
		return err
	})
	g.Go(func() error {
		var err error
		after, err = Load(afterPath, logger)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// decompressed sniffs the stream's magic bytes and wraps it in the matching
// decompressor, passing plain streams through untouched.
func decompressed(r *bufio.Reader) (io.Reader, error) {
	head, err := r.Peek(4)
	if err != nil && len(head) < 2 {
		// Tiny files cannot be a compressed container; let the JSON
		// decoder produce the shape error.
		return r, nil
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return gzip.NewReader(r)
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return r, nil
	}
}
