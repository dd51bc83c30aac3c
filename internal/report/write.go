package report

import (
	"os"
	"path/filepath"

	"github.com/RecursivePineapple/recex-analyzer/internal/errors"
)

// Write encodes the report and writes it to path atomically: the bytes land
// in a temp file in the target directory first and are renamed into place,
// so a failed run never leaves a partial report behind.
func (r *Report) Write(path string) error {
	data, err := r.Encode()
	if err != nil {
		return errors.New(errors.InternalError, "cannot encode report", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".recex-analyzer-*.json")
	if err != nil {
		return errors.Newf(errors.IoError, err, "cannot create report in %q", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Newf(errors.IoError, err, "cannot write report %q", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Newf(errors.IoError, err, "cannot write report %q", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Newf(errors.IoError, err, "cannot move report into place at %q", path)
	}
	return nil
}
