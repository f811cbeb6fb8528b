// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpreter

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // name -> whether LookPath succeeds
	runFunc       func(name string, args []string, streams Streams) error

	runs [][]string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func (m *mockExecutor) Run(_ context.Context, name string, args []string, streams Streams) error {
	m.runs = append(m.runs, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(name, args, streams)
	}
	return nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		bins      map[string]bool
		preferred string
		wantName  string
		wantPath  string
		wantErr   string
	}{
		{
			name:     "python3 available",
			bins:     map[string]bool{"python3": true},
			wantName: "python3",
			wantPath: "/usr/bin/python3",
		},
		{
			name:     "python fallback when python3 missing",
			bins:     map[string]bool{"python": true},
			wantName: "python",
			wantPath: "/usr/bin/python",
		},
		{
			name:     "both available, python3 preferred",
			bins:     map[string]bool{"python3": true, "python": true},
			wantName: "python3",
		},
		{
			name:      "explicit interpreter wins",
			bins:      map[string]bool{"python3": true, "python3.11": true},
			preferred: "python3.11",
			wantName:  "python3.11",
			wantPath:  "/usr/bin/python3.11",
		},
		{
			name:      "explicit interpreter missing does not fall back",
			bins:      map[string]bool{"python3": true},
			preferred: "pypy3",
			wantErr:   "interpreter pypy3 is not usable",
		},
		{
			name:    "nothing available",
			bins:    map[string]bool{},
			wantErr: "no python interpreter available: tried python3, python",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &mockExecutor{availableBins: tt.bins}
			interp, err := detect(ex, tt.preferred)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error should contain %q, got: %v", tt.wantErr, err)
				}
				if !errors.Is(err, exec.ErrNotFound) {
					t.Errorf("error should wrap exec.ErrNotFound, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if interp.Name() != tt.wantName {
				t.Errorf("got interpreter %q, want %q", interp.Name(), tt.wantName)
			}
			if tt.wantPath != "" && interp.Path() != tt.wantPath {
				t.Errorf("got path %q, want %q", interp.Path(), tt.wantPath)
			}
			if len(ex.runs) != 0 {
				t.Errorf("detection spawned %d processes, want 0", len(ex.runs))
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		runFunc func(string, []string, Streams) error
		wantOut string
		wantErr bool
	}{
		{
			name: "runs resolved path with args",
			runFunc: func(name string, args []string, s Streams) error {
				if name != "/usr/bin/python3" {
					return errors.New("expected resolved path, got " + name)
				}
				_, _ = s.Stdout.Write([]byte(strings.Join(args, " ")))
				return nil
			},
			wantOut: "-- convert.py a.pth b.pth",
		},
		{
			name: "failure returns wrapped error",
			runFunc: func(string, []string, Streams) error {
				return errors.New("exit status 1")
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &mockExecutor{availableBins: map[string]bool{"python3": true}, runFunc: tt.runFunc}
			interp, err := detect(ex, "")
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			var out bytes.Buffer
			err = interp.Run(context.Background(), []string{"--", "convert.py", "a.pth", "b.pth"}, Streams{Stdout: &out})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "running python3") {
					t.Errorf("error should name the interpreter, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != tt.wantOut {
				t.Errorf("got output %q, want %q", got, tt.wantOut)
			}
			if len(ex.runs) != 1 {
				t.Errorf("got %d runs, want 1", len(ex.runs))
			}
		})
	}
}

func TestDetectExplicitNotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	script := filepath.Join(t.TempDir(), "python-no-exec")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Detect(script)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "interpreter "+script+" is not usable") {
		t.Errorf("error should name the unusable interpreter, got: %v", err)
	}
	if strings.Contains(err.Error(), "no python interpreter available") {
		t.Errorf("explicit interpreter error should not claim none are available, got: %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("error should wrap fs.ErrPermission, got: %v", err)
	}
}

func TestOSExecutorPropagatesExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-python")
	body := "#!/bin/sh\necho \"$@\"\nexit 7\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	interp, err := Detect(script)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	var out bytes.Buffer
	err = interp.Run(context.Background(), []string{"--", "x.py"}, Streams{Stdout: &out})

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %v", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Errorf("exit code = %d, want 7", exitErr.ExitCode())
	}
	if got := strings.TrimSpace(out.String()); got != "-- x.py" {
		t.Errorf("child saw args %q, want %q", got, "-- x.py")
	}
}
