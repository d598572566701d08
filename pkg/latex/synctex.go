package latex

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// synctexLocations mirror the pdflatex search list; the synctex binary ships
// with the same TeX distribution.
var synctexLocations = []string{
	"/Library/TeX/texbin/synctex",
	"/usr/bin/synctex",
	"/usr/local/bin/synctex",
}

// ForwardResult maps a source line onto a rectangle of a rendered page.
// When Found is false all positional fields hold their defaults (page 1,
// zero rectangle) so callers never see garbage coordinates.
type ForwardResult struct {
	Found  bool    `json:"found"`
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ReverseResult maps a page coordinate back to a source line. Line 0 is the
// tool's not-found sentinel, reported here as Found=false.
type ReverseResult struct {
	Found bool `json:"found"`
	Line  int  `json:"line"`
}

// SyncEngine answers position queries against a compiled job by shelling
// out to the synctex utility and parsing its line-oriented report.
type SyncEngine struct {
	WorkRoot string
	Timeout  time.Duration

	// binary overrides tool discovery; used by tests.
	binary string
}

func NewSyncEngine(workRoot string) *SyncEngine {
	return &SyncEngine{WorkRoot: workRoot, Timeout: 5 * time.Second}
}

// Locate resolves a source line to a page rectangle (forward sync). Both
// the sync data file and the compiled PDF must exist for the job, otherwise
// the mapping could silently describe a stale artifact.
func (e *SyncEngine) Locate(ctx context.Context, jobID string, line int) (ForwardResult, error) {
	res := ForwardResult{Page: 1}
	if line < 1 {
		return res, errors.Errorf("invalid source line: %d", line)
	}

	jobDir := JobDir(e.WorkRoot, jobID)
	pdfPath := filepath.Join(jobDir, PDFName)
	syncPath := filepath.Join(jobDir, SyncDataName)
	for _, p := range []string{syncPath, pdfPath} {
		if _, err := os.Stat(p); err != nil {
			return res, errors.Wrapf(ErrSyncDataMissing, "job %s: %s not found", jobID, filepath.Base(p))
		}
	}

	out, err := e.run(ctx, "view",
		"-i", fmt.Sprintf("%d:1:%s", line, filepath.Join(jobDir, SourceName)),
		"-o", pdfPath,
	)
	if err != nil {
		return res, err
	}
	return parseForward(out)
}

// LocateSource resolves a page coordinate to a source line (reverse sync).
func (e *SyncEngine) LocateSource(ctx context.Context, jobID string, page int, x, y float64) (ReverseResult, error) {
	res := ReverseResult{}

	jobDir := JobDir(e.WorkRoot, jobID)
	pdfPath := filepath.Join(jobDir, PDFName)
	if _, err := os.Stat(pdfPath); err != nil {
		return res, errors.Wrapf(ErrSyncDataMissing, "job %s: %s not found", jobID, PDFName)
	}

	out, err := e.run(ctx, "edit", "-o", fmt.Sprintf("%d:%f:%f:%s", page, x, y, pdfPath))
	if err != nil {
		return res, err
	}
	return parseReverse(out)
}

func (e *SyncEngine) run(ctx context.Context, mode string, args ...string) (string, error) {
	bin := e.binary
	if bin == "" {
		found, err := findSynctex()
		if err != nil {
			return "", err
		}
		bin = found
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, append([]string{mode}, args...)...)
	out, runErr := cmd.CombinedOutput()
	if runCtx.Err() == context.DeadlineExceeded {
		return "", errors.Wrapf(ErrTimeout, "synctex %s exceeded %s", mode, timeout)
	}
	if runErr != nil {
		return "", errors.Wrapf(runErr, "synctex %s failed: %s", mode, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

func findSynctex() (string, error) {
	if p, err := exec.LookPath("synctex"); err == nil {
		return p, nil
	}
	for _, p := range synctexLocations {
		if isExecutable(p) {
			return p, nil
		}
	}
	return "", errors.Wrap(ErrToolNotFound, "synctex not found (it ships with TeX Live / MiKTeX)")
}

// parseForward scans a synctex view report. The first block opened by a
// "Page:" marker is authoritative; later blocks for the same query are
// ignored because the caller highlights exactly one region. The block is
// complete once "H:" has been seen. A numeric parse failure inside the
// matched block is a tool-contract violation, never silently defaulted.
func parseForward(out string) (ForwardResult, error) {
	res := ForwardResult{Page: 1}
	inBlock := false
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "Page:"):
			if inBlock {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Page:")))
			if err != nil {
				return ForwardResult{Page: 1}, errors.Wrapf(ErrMalformedToolOutput, "bad page value %q", line)
			}
			res.Page = n
			inBlock = true
		case inBlock && strings.HasPrefix(line, "x:"):
			if err := parseFloatInto(line, "x:", &res.X); err != nil {
				return ForwardResult{Page: 1}, err
			}
		case inBlock && strings.HasPrefix(line, "y:"):
			if err := parseFloatInto(line, "y:", &res.Y); err != nil {
				return ForwardResult{Page: 1}, err
			}
		case inBlock && strings.HasPrefix(line, "W:"):
			if err := parseFloatInto(line, "W:", &res.Width); err != nil {
				return ForwardResult{Page: 1}, err
			}
		case inBlock && strings.HasPrefix(line, "H:"):
			if err := parseFloatInto(line, "H:", &res.Height); err != nil {
				return ForwardResult{Page: 1}, err
			}
			res.Found = true
			return res, nil
		}
	}
	if inBlock {
		// Page seen but the block never completed with H:.
		return ForwardResult{Page: 1}, errors.Wrap(ErrMalformedToolOutput, "forward sync block truncated")
	}
	return ForwardResult{Page: 1}, nil
}

func parseFloatInto(line, prefix string, dst *float64) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, prefix)), 64)
	if err != nil {
		return errors.Wrapf(ErrMalformedToolOutput, "bad %s value %q", strings.TrimSuffix(prefix, ":"), line)
	}
	*dst = v
	return nil
}

// parseReverse scans a synctex edit report for the first "Line:" marker.
func parseReverse(out string) (ReverseResult, error) {
	for _, raw := range strings.Split(out, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "Line:") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Line:")))
		if err != nil {
			return ReverseResult{}, errors.Wrapf(ErrMalformedToolOutput, "bad line value %q", line)
		}
		if n <= 0 {
			return ReverseResult{}, nil
		}
		return ReverseResult{Found: true, Line: n}, nil
	}
	return ReverseResult{}, nil
}
