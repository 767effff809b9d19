package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/1broseidon/primecycle/internal/platform"
)

func device(id string, x, y int, primary bool) platform.MemoryDevice {
	return platform.MemoryDevice{
		Device:   platform.Device{ID: id, Attached: true, Primary: primary},
		Settings: platform.Settings{Position: platform.Point{X: x, Y: y}, Width: 1920, Height: 1080},
	}
}

func openMemory(m *platform.MemoryBackend) opener {
	return func() (platform.Backend, error) { return m, nil }
}

func execute(t *testing.T, args []string, open opener) (int, string, string) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out, errw bytes.Buffer
	code := run(args, &out, &errw, open)
	return code, out.String(), errw.String()
}

func TestRun_RotateNoArgs(t *testing.T) {
	m := platform.NewMemoryBackend(
		device("A", 0, 0, true),
		device("B", 1920, 0, false),
		device("C", -1920, 0, false),
	)

	code, out, errOut := execute(t, nil, openMemory(m))
	if code != 0 {
		t.Fatalf("exit = %d, want 0 (stderr %q)", code, errOut)
	}
	if out != "primary: B\n" {
		t.Fatalf("stdout = %q, want %q", out, "primary: B\n")
	}
	if m.Primary() != "B" || m.Position("C") != (platform.Point{X: -3840, Y: 0}) {
		t.Fatalf("primary = %s, C at %v; want B and -3840,0", m.Primary(), m.Position("C"))
	}
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		open    opener
		want    int
		wantErr string
	}{
		{
			name: "no displays",
			open: openMemory(platform.NewMemoryBackend()),
			want: 1,
		},
		{
			name: "unsupported platform",
			open: func() (platform.Backend, error) { return nil, platform.ErrUnsupported },
			want: 1,
		},
		{
			name: "connection failure",
			open: func() (platform.Backend, error) { return nil, errors.New("cannot open display :0") },
			want: 1,
		},
		{
			name: "indeterminate primary",
			open: openMemory(platform.NewMemoryBackend(device("A", 0, 0, false), device("B", 1920, 0, false))),
			want: 2,
		},
		{
			name: "two primaries",
			open: openMemory(platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, true))),
			want: 2,
		},
		{
			name: "target write",
			open: func() opener {
				m := platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, false))
				m.WriteCodes["B"] = platform.ChangeBadFlags
				return openMemory(m)
			}(),
			want: 3,
		},
		{
			name: "other write",
			open: func() opener {
				m := platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, false))
				m.WriteCodes["A"] = platform.ChangeBadParam
				return openMemory(m)
			}(),
			want: 4,
		},
		{
			name: "apply",
			open: func() opener {
				m := platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, false))
				m.ApplyCode = platform.ChangeRestart
				return openMemory(m)
			}(),
			want: 5,
		},
		{
			name: "single display",
			open: openMemory(platform.NewMemoryBackend(device("A", 0, 0, true))),
			want: 0,
		},
		{
			name:    "unknown command",
			args:    []string{"rotate"},
			want:    exitUsage,
			wantErr: `primecycle: unknown command "rotate"`,
		},
		{
			name:    "bad order",
			args:    []string{"-order", "spiral"},
			want:    exitUsage,
			wantErr: "primecycle: order: unknown order",
		},
		{
			name:    "stray argument",
			args:    []string{"-v", "extra"},
			want:    exitUsage,
			wantErr: "primecycle: unexpected arguments: extra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open := tt.open
			if open == nil {
				open = func() (platform.Backend, error) {
					t.Fatal("backend opened for a usage error")
					return nil, nil
				}
			}
			code, out, errOut := execute(t, tt.args, open)
			if code != tt.want {
				t.Fatalf("exit = %d, want %d (stderr %q)", code, tt.want, errOut)
			}
			if code != 0 && out != "" {
				t.Fatalf("stdout = %q on failure, want empty", out)
			}
			if tt.wantErr != "" && !strings.Contains(errOut, tt.wantErr) {
				t.Fatalf("stderr = %q, want it to contain %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"help", "-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			code, out, _ := execute(t, []string{arg}, nil)
			if code != 0 {
				t.Fatalf("exit = %d, want 0", code)
			}
			if !strings.Contains(out, "Usage: primecycle") {
				t.Fatalf("stdout = %q, want usage", out)
			}
		})
	}
}

func TestRun_List(t *testing.T) {
	m := platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, false))

	code, out, errOut := execute(t, []string{"list"}, openMemory(m))
	if code != 0 {
		t.Fatalf("exit = %d, want 0 (stderr %q)", code, errOut)
	}
	for _, want := range []string{"id: A", "id: B", "primary: true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
	if len(m.Writes()) != 0 {
		t.Fatal("list issued writes")
	}
}

func TestRun_Plan(t *testing.T) {
	m := platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, false))

	code, out, errOut := execute(t, []string{"plan", "-order", "geometric"}, openMemory(m))
	if code != 0 {
		t.Fatalf("exit = %d, want 0 (stderr %q)", code, errOut)
	}
	for _, want := range []string{"order: geometric", "target: B", "op: write", "op: apply"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
	if len(m.Writes()) != 0 || m.Applied() || m.Primary() != "A" {
		t.Fatal("plan changed the display service")
	}
}

func TestRun_VerboseTracesWrites(t *testing.T) {
	m := platform.NewMemoryBackend(device("A", 0, 0, true), device("B", 1920, 0, false))

	code, _, errOut := execute(t, []string{"-v"}, openMemory(m))
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !strings.Contains(errOut, "staging display settings") {
		t.Fatalf("stderr = %q, want debug trace", errOut)
	}
}
