package latex

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Fixed file names inside a compile job's working directory. The compiler
// and the sync engine must agree on these, since synctex records the source
// file name inside its data file.
const (
	SourceName   = "resume.tex"
	PDFName      = "resume.pdf"
	LogName      = "resume.log"
	SyncDataName = "resume.synctex.gz"
)

// Failure kinds recovered at the component boundary. Callers match with
// errors.Is and translate into a structured response.
var (
	ErrToolNotFound        = errors.New("required tool not found")
	ErrTimeout             = errors.New("operation timed out")
	ErrSyncDataMissing     = errors.New("sync data missing for job")
	ErrMalformedToolOutput = errors.New("malformed tool output")
)

// JobDir returns the working directory for a compile job under root.
func JobDir(root, jobID string) string {
	return filepath.Join(root, jobID)
}

// CleanBefore removes job directories whose contents have not been touched
// since cutoff. Nothing calls it on a schedule; it exists for operators to
// reclaim disk on long-running hosts. Returns the number of directories
// removed.
func CleanBefore(root string, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read work root: %s", root)
	}
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return removed, errors.Wrapf(err, "failed to remove job dir: %s", e.Name())
		}
		removed++
	}
	return removed, nil
}
