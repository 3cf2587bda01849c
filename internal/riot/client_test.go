package riot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// testClient points both API and CDN roots at the given test server.
func testClient(server *httptest.Server) *Client {
	c := NewClient(Config{APIKey: "test-key"})
	c.http = server.Client()
	c.baseURL = server.URL
	c.ddragonURL = server.URL
	return c
}

func TestVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/versions.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Riot-Token") != "" {
			t.Error("API key sent to the public CDN")
		}
		fmt.Fprint(w, `["14.11.1","14.10.1"]`)
	}))
	defer server.Close()

	c := testClient(server)
	current, err := c.CurrentVersion(context.Background())
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if current != "14.11.1" {
		t.Errorf("current = %q, want 14.11.1", current)
	}
}

func TestVersionsEmptyListIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	_, err := testClient(server).Versions(context.Background())
	if err == nil {
		t.Fatal("expected error for empty version list")
	}
	if !IsTransient(err) {
		t.Errorf("empty version list should be transient: %v", err)
	}
}

func TestItemsTypedDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/cdn/14.11.1/data/en_US/item.json") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":{
			"3031":{"name":"Infinity Edge"},
			"1038":{"name":"B. F. Sword","into":["3031"]}
		}}`)
	}))
	defer server.Close()

	defs, err := testClient(server).Items(context.Background(), "14.11.1")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 items, got %d", len(defs))
	}
	// Sorted ascending by id.
	if defs[0].ID != 1038 || defs[1].ID != 3031 {
		t.Errorf("ids = [%d %d], want [1038 3031]", defs[0].ID, defs[1].ID)
	}
	if !defs[0].HasUpgradePath() {
		t.Error("component should have an upgrade path")
	}
	if defs[1].HasUpgradePath() {
		t.Error("final item should have no upgrade path")
	}
}

func TestItemsNonNumericIDIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"not-a-number":{"name":"Broken"}}}`)
	}))
	defer server.Close()

	_, err := testClient(server).Items(context.Background(), "14.11.1")
	if err == nil {
		t.Fatal("expected error for non-numeric item id")
	}
	if !IsTransient(err) {
		t.Errorf("malformed payload should be transient: %v", err)
	}
}

func TestRunesFlattened(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"slots":[{"runes":[{"id":8005,"name":"Press the Attack"},{"id":8008,"name":"Lethal Tempo"}]}]},
			{"slots":[{"runes":[{"id":8112,"name":"Electrocute"}]}]}
		]`)
	}))
	defer server.Close()

	names, err := testClient(server).Runes(context.Background(), "14.11.1")
	if err != nil {
		t.Fatalf("Runes: %v", err)
	}
	want := map[int]string{8005: "Press the Attack", 8008: "Lethal Tempo", 8112: "Electrocute"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("runes = %v, want %v", names, want)
	}
}

func TestAccountSendsAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "test-key" {
			t.Error("missing API key header on account lookup")
		}
		fmt.Fprint(w, `{"puuid":"p1","gameName":"Faker","tagLine":"KR1"}`)
	}))
	defer server.Close()

	account, err := testClient(server).Account(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if account.PUUID != "p1" {
		t.Errorf("puuid = %q", account.PUUID)
	}
}

func TestDraftMatchIDsFiltersQueues(t *testing.T) {
	queues := map[string]int{
		"m1": 400, // draft
		"m2": 430, // blind, dropped
		"m3": 420, // ranked solo
		"m4": 900, // URF, dropped
		"m5": 440, // ranked flex
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ids") {
			fmt.Fprint(w, `["m1","m2","m3","m4","m5"]`)
			return
		}
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		fmt.Fprintf(w, `{"info":{"queueId":%d}}`, queues[id])
	}))
	defer server.Close()

	ids, err := testClient(server).DraftMatchIDs(context.Background(), "puuid-1", 5)
	if err != nil {
		t.Fatalf("DraftMatchIDs: %v", err)
	}
	want := []string{"m1", "m3", "m5"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v (supported queues, upstream order)", ids, want)
	}
}

func TestStatusErrorClassification(t *testing.T) {
	cases := []struct {
		code      int
		transient bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusForbidden, false},
		{http.StatusNotFound, false},
	}
	for _, c := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.code)
		}))

		_, err := testClient(server).Match(context.Background(), "m1")
		server.Close()
		if err == nil {
			t.Fatalf("HTTP %d: expected error", c.code)
		}
		var se *StatusError
		if !errors.As(err, &se) || se.Code != c.code {
			t.Errorf("HTTP %d: err = %v, want StatusError", c.code, err)
		}
		if IsTransient(err) != c.transient {
			t.Errorf("HTTP %d: transient = %v, want %v", c.code, IsTransient(err), c.transient)
		}
	}
}

func TestIsSupportedQueue(t *testing.T) {
	for _, q := range []int{QueueDraft, QueueRankedSolo, QueueRankedFlex} {
		if !IsSupportedQueue(q) {
			t.Errorf("queue %d should be supported", q)
		}
	}
	for _, q := range []int{0, 430, 450, 900, 1700} {
		if IsSupportedQueue(q) {
			t.Errorf("queue %d should not be supported", q)
		}
	}
}
