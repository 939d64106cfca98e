package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewWithMemoryStore(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: memory\n")

	a, err := New(Options{ConfigPath: path, WithoutHTTP: true})
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	defer a.Stop(context.Background())

	if a.db != nil {
		t.Fatal("memory driver should not open a database")
	}
	if a.httpServer != nil {
		t.Fatal("http server should not be built")
	}
	if a.FTA() == nil {
		t.Fatal("fta module should be enabled by default")
	}

	if err := a.FTA().Usecase.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() err = %v", err)
	}
}

func TestNewWithSQLiteAndHTTP(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "gofta.db")
	path := writeConfig(t, "server:\n  address:\n    http: 127.0.0.1:0\n"+
		"database:\n  driver: sqlite\n  sqlite:\n    path: "+dbPath+"\n")

	a, err := New(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}

	if a.db == nil {
		t.Fatal("sqlite driver should open a database")
	}
	if a.httpServer == nil || a.httpServer.Addr != "127.0.0.1:0" {
		t.Fatalf("http server = %+v", a.httpServer)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file: %v", err)
	}

	a.Stop(context.Background())
}

func TestNewModuleDisabled(t *testing.T) {
	path := writeConfig(t, "modules:\n  fta:\n    enabled: false\ndatabase:\n  driver: memory\n")

	a, err := New(Options{ConfigPath: path, WithoutHTTP: true})
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	defer a.Stop(context.Background())

	if a.FTA() != nil {
		t.Fatal("fta module should be disabled")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown driver", body: "database:\n  driver: postgres\n", want: "unsupported database driver"},
		{name: "bad threshold", body: "database:\n  driver: memory\nfraud:\n  threshold:\n    account: lots\n", want: "fraud.threshold.account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{ConfigPath: writeConfig(t, tt.body), WithoutHTTP: true})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("New() err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestDefaultsFromEnvironment(t *testing.T) {
	t.Setenv("GOFTA_DATABASE_DRIVER", "memory")
	t.Setenv("GOFTA_GENERATOR_BANKS", "BANCO A, BANCO B")

	a, err := New(Options{ConfigPath: writeConfig(t, "tz: UTC\n"), WithoutHTTP: true})
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	defer a.Stop(context.Background())

	if a.db != nil {
		t.Fatal("environment should select the memory driver")
	}
	if got := a.config.GetArray("generator.banks"); len(got) != 2 || got[1] != "BANCO B" {
		t.Fatalf("generator.banks = %v", got)
	}
}
