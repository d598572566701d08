package latex

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeFakeTool installs a shell script standing in for an external binary.
func writeFakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0700); err != nil {
		t.Fatalf("failed to write fake tool: %v", err)
	}
	return path
}

// fakePDFLatex emits a resume.pdf into the -output-directory argument.
const fakePDFLatexOK = `
dir=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-output-directory" ]; then dir="$2"; fi
  shift
done
printf '%%PDF-1.4 fake' > "$dir/resume.pdf"
`

// fakePDFLatexFail writes only a log with error lines.
const fakePDFLatexFail = `
dir=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-output-directory" ]; then dir="$2"; fi
  shift
done
cat > "$dir/resume.log" <<'LOG'
This is pdfTeX, Version 3.14
! Undefined control sequence.
l.5 \badmacro
Some harmless context line
! LaTeX Error: Environment itemize undefined.
LOG
`

func TestCompileSuccess(t *testing.T) {
	tmp := t.TempDir()
	c := NewCompiler(tmp)
	c.binary = writeFakeTool(t, tmp, "pdflatex", fakePDFLatexOK)

	res, err := c.Compile(context.Background(), `\documentclass{article}\begin{document}hi\end{document}`)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got: %s", res.Message)
	}
	if res.JobID == "" {
		t.Error("expected a job id")
	}
	// Success means the artifact exists at return time.
	if _, err := os.Stat(res.PDFPath); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
	// The source must have been written into the job directory.
	if _, err := os.Stat(filepath.Join(JobDir(tmp, res.JobID), SourceName)); err != nil {
		t.Errorf("source file missing: %v", err)
	}
}

func TestCompileJobIsolation(t *testing.T) {
	tmp := t.TempDir()
	c := NewCompiler(tmp)
	c.binary = writeFakeTool(t, tmp, "pdflatex", fakePDFLatexOK)

	first, err := c.Compile(context.Background(), "doc one")
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	second, err := c.Compile(context.Background(), "doc two")
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if first.JobID == second.JobID {
		t.Error("job ids must be unique per invocation")
	}
	if first.PDFPath == second.PDFPath {
		t.Error("artifacts must not alias across jobs")
	}
}

func TestCompileFailureDiagnostics(t *testing.T) {
	tmp := t.TempDir()
	c := NewCompiler(tmp)
	c.binary = writeFakeTool(t, tmp, "pdflatex", fakePDFLatexFail)

	res, err := c.Compile(context.Background(), "broken doc")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected diagnostics from the log")
	}
	for _, line := range res.Diagnostics {
		if !strings.HasPrefix(line, "!") && !strings.Contains(line, "Error") {
			t.Errorf("diagnostic does not match error shape: %q", line)
		}
	}
}

func TestCompileFailureNoLog(t *testing.T) {
	tmp := t.TempDir()
	c := NewCompiler(tmp)
	c.binary = writeFakeTool(t, tmp, "pdflatex", "exit 0\n")

	res, err := c.Compile(context.Background(), "doc")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if res.Success {
		t.Fatal("expected failure without an artifact")
	}
	if res.Message != "Compilation failed." {
		t.Errorf("expected generic message, got %q", res.Message)
	}
}

func TestCompileTimeout(t *testing.T) {
	tmp := t.TempDir()
	c := NewCompiler(tmp)
	c.Timeout = 100 * time.Millisecond
	c.binary = writeFakeTool(t, tmp, "pdflatex", "sleep 5\n")

	_, err := c.Compile(context.Background(), "doc")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExtractLogErrors(t *testing.T) {
	log := strings.Join([]string{
		"This is pdfTeX",
		"! Undefined control sequence.",
		"context line",
		"! Missing $ inserted.",
		"LaTeX Error: something",
		"! one",
		"! two",
		"! three",
		"! four",
	}, "\n")

	got := extractLogErrors(log, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 diagnostics, got %d", len(got))
	}
	if got[0] != "! Undefined control sequence." {
		t.Errorf("unexpected first diagnostic: %q", got[0])
	}
	if got[2] != "LaTeX Error: something" {
		t.Errorf("expected Error-substring line kept, got %q", got[2])
	}

	if out := extractLogErrors("all fine here\nno problems", 5); out != nil {
		t.Errorf("expected no diagnostics, got %v", out)
	}
}
