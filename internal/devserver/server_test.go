package devserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/shelflog/internal/api"
	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(NewRouter(newSeededStore(t), testSecret, log))
	t.Cleanup(srv.Close)

	tok, err := IssueToken(testSecret, 1, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return srv, api.New(tok, srv.URL, api.Options{Timeout: 5 * time.Second})
}

func TestRouter_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/me/records")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	bad := api.New("nope", srv.URL, api.Options{})
	if _, err := bad.FetchMySummaryBooks(context.Background()); !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv, client := newTestServer(t)

	// generate at least one labelled sample
	if _, err := client.FetchMySummaryBooks(context.Background()); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("no request id echoed")
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "shelflog_dev_requests_total") {
		t.Error("request counter missing from /metrics")
	}
}

func TestClient_AgainstDevServer(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	books, err := client.FetchMySummaryBooks(ctx)
	if err != nil {
		t.Fatalf("FetchMySummaryBooks: %v", err)
	}
	if len(books) != 4 {
		t.Errorf("shelf has %d books, want 4", len(books))
	}

	page, err := client.FetchMyRecords(ctx, catalog.Query{Page: 1, Size: catalog.SizeCompact})
	if err != nil {
		t.Fatalf("FetchMyRecords: %v", err)
	}
	if page.Page != 1 || page.TotalPages != 2 || !page.HasPrev || page.HasNext || len(page.Items) != 2 {
		t.Errorf("page = %+v", page)
	}

	cands, err := client.FetchCandidates(ctx, "karamazov", "")
	if err != nil {
		t.Fatalf("FetchCandidates: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("candidates = %+v", cands)
	}

	if err := client.LinkRecord(ctx, 3, cands[0]); err != nil {
		t.Fatalf("LinkRecord: %v", err)
	}
	books, err = client.FetchMySummaryBooks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 5 {
		t.Errorf("shelf has %d books after link, want 5", len(books))
	}

	if err := client.RemoveMatch(ctx, 3); err != nil {
		t.Fatalf("RemoveMatch: %v", err)
	}
	if err := client.RemoveMatch(ctx, 999); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("unlink missing: err = %v, want ErrNotFound", err)
	}
}

func TestRouter_BadRequests(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	var se *api.StatusError
	if err := client.LinkRecord(ctx, 3, catalog.BookCandidate{Author: "anon"}); !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Errorf("untitled book: err = %v, want 400", err)
	}

	tok, _ := IssueToken(testSecret, 1, time.Hour)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/me/records/abc/book", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", resp.StatusCode)
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, "127.0.0.1:0", http.NotFoundHandler(), log) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
