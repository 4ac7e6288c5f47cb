package probes

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonwraymond/launchgate/health"
)

func probe(t *testing.T, p health.Probe) health.Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcome, err := p.Probe(ctx)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	return outcome
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/healthz":
			w.WriteHeader(http.StatusOK)
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		probe  HTTP
		passed bool
	}{
		{"ok", HTTP{URL: srv.URL + "/healthz"}, true},
		{"expected status", HTTP{URL: srv.URL + "/empty", ExpectStatus: http.StatusNoContent}, true},
		{"unexpected status", HTTP{URL: srv.URL + "/down"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := probe(t, tt.probe)
			if outcome.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v (%s)", outcome.Passed, tt.passed, outcome.Message)
			}
			if outcome.Details["status_code"] == nil {
				t.Error("expected status_code detail")
			}
		})
	}
}

func TestHTTP_RetriesUntilReady(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	outcome := probe(t, HTTP{URL: srv.URL, Retry: Retry{Attempts: 3, Backoff: time.Millisecond}})
	if !outcome.Passed {
		t.Fatalf("Passed = false: %s", outcome.Message)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if outcome.Details["attempts"] != 3 {
		t.Errorf("attempts detail = %v, want 3", outcome.Details["attempts"])
	}
}

func TestHTTP_DetailsRedactCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	u := strings.Replace(srv.URL, "http://", "http://deploy:hunter2@", 1)
	outcome := probe(t, HTTP{URL: u})

	if got, _ := outcome.Details["url"].(string); strings.Contains(got, "hunter2") {
		t.Errorf("url detail leaks the password: %s", got)
	}
}

func TestHTTP_MalformedURLIsError(t *testing.T) {
	_, err := HTTP{URL: "http://[::1"}.Probe(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	if outcome := probe(t, TCP{Address: addr}); !outcome.Passed {
		t.Errorf("open port: Passed = false: %s", outcome.Message)
	}

	_ = ln.Close()
	if outcome := probe(t, TCP{Address: addr}); outcome.Passed {
		t.Error("closed port: Passed = true")
	}
}

func TestCommand(t *testing.T) {
	self, err := os.Executable()
	if err != nil {
		t.Skipf("os.Executable: %v", err)
	}

	if outcome := probe(t, Command{Name: self}); !outcome.Passed {
		t.Errorf("existing binary: %s", outcome.Message)
	}
	if outcome := probe(t, Command{Name: "launchgate-no-such-binary"}); outcome.Passed {
		t.Error("missing binary: Passed = true")
	}
}

func TestCommand_VersionConstraint(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	printing := func(output, constraint string) Command {
		return Command{Name: "sh", Constraint: constraint, VersionArgs: []string{"-c", "echo " + output}}
	}

	tests := []struct {
		name    string
		probe   Command
		passed  bool
		message string
	}{
		{"satisfied", printing("tool version 2.43.0", ">= 2.30, < 3"), true, "sh 2.43.0"},
		{"v prefix", printing("tool v1.8.0 (linux)", "~> 1.8"), true, "sh 1.8.0"},
		{"too old", printing("tool version 2.20.1", ">= 2.30"), false, "does not satisfy >= 2.30"},
		{"no version", printing("tool (unknown build)", ">= 1"), false, "printed no version"},
		{"command fails", Command{Name: "sh", Constraint: ">= 1", VersionArgs: []string{"-c", "exit 3"}}, false, "exit status 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := probe(t, tt.probe)
			if outcome.Passed != tt.passed {
				t.Fatalf("Passed = %v, message %q", outcome.Passed, outcome.Message)
			}
			if !strings.Contains(outcome.Message, tt.message) {
				t.Errorf("Message = %q, want it to contain %q", outcome.Message, tt.message)
			}
		})
	}
}

func TestCommand_InvalidConstraint(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, err := Command{Name: "sh", Constraint: "newer than 2"}.Probe(context.Background())
	if !errors.Is(err, ErrInvalidConstraint) {
		t.Fatalf("Probe() error = %v, want ErrInvalidConstraint", err)
	}
}

func TestDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		probe  Directory
		passed bool
	}{
		{"readable", Directory{Path: dir}, true},
		{"writable", Directory{Path: dir, Writable: true}, true},
		{"missing", Directory{Path: filepath.Join(dir, "absent")}, false},
		{"not a directory", Directory{Path: file}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := probe(t, tt.probe)
			if outcome.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v (%s)", outcome.Passed, tt.passed, outcome.Message)
			}
		})
	}
}

func TestDirectory_ReadOnly(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	if outcome := probe(t, Directory{Path: dir}); !outcome.Passed {
		t.Errorf("read access: %s", outcome.Message)
	}
	if outcome := probe(t, Directory{Path: dir, Writable: true}); outcome.Passed {
		t.Error("write access on read-only directory: Passed = true")
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE jobs (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	outcome := probe(t, SQLite{DSN: "file:" + path + "?mode=ro", QuickCheck: true})
	if !outcome.Passed {
		t.Fatalf("Passed = false: %s", outcome.Message)
	}
	if outcome.Details["quick_check"] != "ok" {
		t.Errorf("quick_check = %v", outcome.Details["quick_check"])
	}

	missing := probe(t, SQLite{DSN: "file:" + filepath.Join(t.TempDir(), "absent.db") + "?mode=ro"})
	if missing.Passed {
		t.Error("missing database: Passed = true")
	}

	if outcome := probe(t, SQLite{DSN: ":memory:", QuickCheck: true}); !outcome.Passed {
		t.Errorf("in-memory database: Passed = false: %s", outcome.Message)
	}
}

func TestSQLite_MissingFileNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.db")

	for _, dsn := range []string{path, "file:" + path, "file:" + path + "?_pragma=busy_timeout(100)"} {
		outcome := probe(t, SQLite{DSN: dsn})
		if outcome.Passed {
			t.Errorf("%s: Passed = true", dsn)
		}
		if !strings.Contains(outcome.Message, "does not exist") {
			t.Errorf("%s: Message = %q", dsn, outcome.Message)
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s: database file created (stat err = %v)", dsn, err)
		}
	}
}

func TestMemory(t *testing.T) {
	stats := func(heap, sys uint64) func(*runtime.MemStats) {
		return func(m *runtime.MemStats) {
			m.HeapAlloc = heap
			m.Sys = sys
		}
	}

	tests := []struct {
		name   string
		probe  Memory
		passed bool
	}{
		{"below threshold", Memory{readStats: stats(50, 100)}, true},
		{"above default threshold", Memory{readStats: stats(95, 100)}, false},
		{"custom threshold", Memory{MaxHeapRatio: 0.4, readStats: stats(50, 100)}, false},
		{"explicit budget", Memory{MaxHeapBytes: 1000, readStats: stats(95, 100)}, true},
		{"stats unavailable", Memory{readStats: stats(0, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := probe(t, tt.probe)
			if outcome.Passed != tt.passed {
				t.Errorf("Passed = %v, want %v (%s)", outcome.Passed, tt.passed, outcome.Message)
			}
		})
	}
}

func TestMemory_RealStats(t *testing.T) {
	if outcome := probe(t, Memory{MaxHeapRatio: 0.99}); !outcome.Passed {
		t.Errorf("Passed = false: %s", outcome.Message)
	}
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Memory{}).Probe(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Probe() error = %v, want context.Canceled", err)
	}
}

func TestEnv(t *testing.T) {
	env := map[string]string{"DATABASE_URL": "postgres://db", "EMPTY": ""}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	if outcome := probe(t, Env{Vars: []string{"DATABASE_URL"}, Lookup: lookup}); !outcome.Passed {
		t.Errorf("set variable: %s", outcome.Message)
	}

	outcome := probe(t, Env{Vars: []string{"DATABASE_URL", "EMPTY", "ABSENT"}, Lookup: lookup})
	if outcome.Passed {
		t.Fatal("Passed = true with missing variables")
	}
	if outcome.Message != "missing EMPTY, ABSENT" {
		t.Errorf("Message = %q", outcome.Message)
	}
}
