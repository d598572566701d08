package latex

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const installInstructions = `pdflatex not found. Please install LaTeX:
  macOS:   brew install --cask mactex-no-gui
  Ubuntu:  sudo apt install texlive-full
  Windows: install MiKTeX from miktex.org`

// pdflatexLocations are checked after PATH lookup fails. TeX Live on macOS
// does not put itself on PATH for GUI-launched processes.
var pdflatexLocations = []string{
	"/Library/TeX/texbin/pdflatex",
	"/usr/local/texlive/2024/bin/universal-darwin/pdflatex",
	"/usr/local/texlive/2025/bin/universal-darwin/pdflatex",
	"/usr/bin/pdflatex",
	"/usr/local/bin/pdflatex",
}

const maxDiagnosticLines = 5

// CompileResult is the immutable outcome of one compile job.
type CompileResult struct {
	Success     bool     `json:"success"`
	JobID       string   `json:"job_id"`
	PDFPath     string   `json:"pdf_path,omitempty"`
	Message     string   `json:"message"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Compiler runs pdflatex against caller-supplied LaTeX source. Each call
// gets a fresh working directory keyed by a generated job id, so concurrent
// compiles never share files.
type Compiler struct {
	WorkRoot string
	Timeout  time.Duration

	// binary overrides tool discovery; used by tests.
	binary string
}

func NewCompiler(workRoot string) *Compiler {
	return &Compiler{WorkRoot: workRoot, Timeout: 60 * time.Second}
}

// PDFPath returns the artifact location for a previously compiled job.
func (c *Compiler) PDFPath(jobID string) string {
	return filepath.Join(JobDir(c.WorkRoot, jobID), PDFName)
}

// Compile writes source into a fresh job directory and runs pdflatex twice.
// Two passes are required for cross-references to resolve. Success is judged
// only by the presence of the PDF afterwards: pdflatex exit codes are
// unreliable when the document merely has warnings.
//
// Callers must reject empty source before calling; the compiler assumes
// non-empty input.
func (c *Compiler) Compile(ctx context.Context, source string) (CompileResult, error) {
	res := CompileResult{}

	bin := c.binary
	if bin == "" {
		found, err := findPDFLatex()
		if err != nil {
			return res, err
		}
		bin = found
	}

	res.JobID = uuid.New().String()
	jobDir := JobDir(c.WorkRoot, res.JobID)
	if err := os.MkdirAll(jobDir, 0750); err != nil {
		return res, errors.Wrapf(err, "failed to create job directory: %s", jobDir)
	}

	texPath := filepath.Join(jobDir, SourceName)
	if err := os.WriteFile(texPath, []byte(source), 0600); err != nil {
		return res, errors.Wrapf(err, "failed to write source file: %s", texPath)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	pdfPath := filepath.Join(jobDir, PDFName)
	for pass := 1; pass <= 2; pass++ {
		passCtx, cancel := context.WithTimeout(ctx, timeout)
		cmd := exec.CommandContext(passCtx, bin,
			"-interaction=nonstopmode",
			"-synctex=1",
			"-output-directory", jobDir,
			texPath,
		)
		_, runErr := cmd.CombinedOutput()
		timedOut := passCtx.Err() == context.DeadlineExceeded
		cancel()

		if timedOut {
			return res, errors.Wrapf(ErrTimeout, "pdflatex pass %d exceeded %s", pass, timeout)
		}
		// A failed second pass is tolerated when the first pass already
		// produced the artifact; non-timeout exit errors are otherwise
		// resolved by the artifact check below.
		_ = runErr
	}

	if _, err := os.Stat(pdfPath); err == nil {
		res.Success = true
		res.PDFPath = pdfPath
		res.Message = "PDF generated successfully!"
		return res, nil
	}

	res.Diagnostics = readLogDiagnostics(filepath.Join(jobDir, LogName))
	if len(res.Diagnostics) > 0 {
		res.Message = strings.Join(res.Diagnostics, "\n")
	} else {
		res.Message = "Compilation failed."
	}
	return res, nil
}

// findPDFLatex locates the pdflatex executable on PATH or in well-known
// install locations.
func findPDFLatex() (string, error) {
	if p, err := exec.LookPath("pdflatex"); err == nil {
		return p, nil
	}
	for _, p := range pdflatexLocations {
		if isExecutable(p) {
			return p, nil
		}
	}
	return "", errors.Wrap(ErrToolNotFound, installInstructions)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

// readLogDiagnostics extracts the first few error lines from a pdflatex log:
// lines starting with the "!" error marker or containing "Error". Returns
// nil when the log is absent or has no matching lines.
func readLogDiagnostics(logPath string) []string {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return nil
	}
	return extractLogErrors(string(data), maxDiagnosticLines)
}

func extractLogErrors(content string, max int) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "!") || strings.Contains(line, "Error") {
			out = append(out, line)
			if len(out) >= max {
				break
			}
		}
	}
	return out
}
