package app

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/config"
	"github.com/blackwell-systems/shelflog/internal/devserver"
	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func init() {
	color.NoColor = true
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"The Brothers Karamazov", 12, "The Brother…"},
		{"Война и мир навсегда", 10, "Война и м…"},
	}
	for _, c := range cases {
		if got := truncate(c.in, c.n); got != c.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestPrintShelf(t *testing.T) {
	var buf bytes.Buffer
	printShelf(&buf, nil)
	if !strings.Contains(buf.String(), "No books") {
		t.Errorf("empty shelf output = %q", buf.String())
	}

	buf.Reset()
	printShelf(&buf, []catalog.SummaryBook{
		{ID: 7, Title: "The Master and Margarita", Author: "Bulgakov"},
		{ID: 5, Title: "Dead Souls", Author: "Gogol"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "7") || !strings.Contains(lines[0], "Bulgakov") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestPrintRecords(t *testing.T) {
	book := int64(3)
	page := catalog.Page[catalog.Record]{
		Items: []catalog.Record{
			{ID: 1, Title: "", Author: "Anon", RecordedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Title: "Dead Souls", Author: "Gogol", Sentence: "<p>Troika &amp; road</p>",
				RecordedAt: time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC), BookID: &book},
		},
		Page:       1,
		TotalPages: 3,
	}
	var buf bytes.Buffer
	printRecords(&buf, page)
	out := buf.String()

	for _, want := range []string{"(untitled)", "2024-04-01", "○", "●", "Troika & road", "Page 2 of 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<p>") {
		t.Error("markup leaked into output")
	}

	buf.Reset()
	printRecords(&buf, catalog.Page[catalog.Record]{})
	if !strings.Contains(buf.String(), "No records found.") {
		t.Errorf("empty page output = %q", buf.String())
	}
}

func TestIsOffline(t *testing.T) {
	byPath := map[string]bool{
		"version":     true,
		"config init": true,
		"serve-dev":   true,
		"completion":  true,
		"shelf":       false,
		"records":     false,
		"covers":      false,
	}
	for path, want := range byPath {
		cmd, _, err := rootCmd.Find(strings.Fields(path))
		if err != nil {
			t.Fatalf("Find(%q): %v", path, err)
		}
		if got := isOffline(cmd); got != want {
			t.Errorf("isOffline(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSetVersion(t *testing.T) {
	defer SetVersion("dev")
	SetVersion("v1.2.3")
	if appVersion != "v1.2.3" || rootCmd.Version != "v1.2.3" {
		t.Errorf("version = %q / %q", appVersion, rootCmd.Version)
	}
	SetVersion("")
	if appVersion != "v1.2.3" {
		t.Errorf("empty version overwrote %q", appVersion)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	if _, err := captureStdout(t, rootCmd.Execute); err != nil {
		t.Fatalf("config init: %v", err)
	}

	got, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := config.Default()
	if got.UI != want.UI || got.API.BaseURL != want.API.BaseURL || got.Dev.Addr != want.Dev.Addr {
		t.Errorf("written config differs from defaults:\n got %+v\nwant %+v", got, want)
	}

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	if _, err := captureStdout(t, rootCmd.Execute); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init: err = %v, want already exists", err)
	}
}

func TestRecordsCmd_RequiresToken(t *testing.T) {
	t.Setenv("SHELFLOG_TOKEN", "")
	t.Setenv("SHELFLOG_LOG_FILE", filepath.Join(t.TempDir(), "shelflog.log"))

	rootCmd.SetArgs([]string{"records", "--no-interactive", "--config", filepath.Join(t.TempDir(), "none.yml")})
	_, err := captureStdout(t, rootCmd.Execute)
	if err == nil || !strings.Contains(err.Error(), "SHELFLOG_TOKEN") {
		t.Errorf("err = %v, want missing token error naming SHELFLOG_TOKEN", err)
	}
}

func TestCommandsAgainstDevServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store, err := devserver.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	seed, err := devserver.SampleSeed()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Seed(ctx, seed); err != nil {
		t.Fatal(err)
	}

	secret := []byte("app-test")
	log := logrus.New()
	log.SetOutput(io.Discard)
	srv := httptest.NewServer(devserver.NewRouter(store, secret, log))
	defer srv.Close()

	tok, err := devserver.IssueToken(secret, 1, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	t.Setenv("SHELFLOG_TOKEN", tok)
	t.Setenv("SHELFLOG_API_BASE_URL", srv.URL)
	t.Setenv("SHELFLOG_LOG_FILE", filepath.Join(dir, "shelflog.log"))
	t.Setenv("SHELFLOG_CACHE_DIR", filepath.Join(dir, "cache"))
	cfgPath := filepath.Join(dir, "none.yml")

	rootCmd.SetArgs([]string{"shelf", "--no-interactive", "--config", cfgPath})
	out, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("shelf: %v", err)
	}
	if !strings.Contains(out, "(4 books)") || !strings.Contains(out, "The Master and Margarita") {
		t.Errorf("shelf output:\n%s", out)
	}

	rootCmd.SetArgs([]string{"records", "--no-interactive", "--config", cfgPath, "--q", "tolstoy", "--size", "6"})
	out, err = captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if !strings.Contains(out, "War and Peace") || !strings.Contains(out, "Anna Karenina") || strings.Contains(out, "Dead Souls") {
		t.Errorf("records output:\n%s", out)
	}

	rootCmd.SetArgs([]string{"records", "--no-interactive", "--config", cfgPath, "--size", "7"})
	if _, err := captureStdout(t, rootCmd.Execute); err == nil {
		t.Error("expected error for --size 7")
	}
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	runErr := fn()
	_ = w.Close()
	return <-done, runErr
}
