package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

const emptyList = `{"items":[],"total":0,"limit":20,"offset":0}`

// newTestServer starts an httptest server and returns a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "test-key"), server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

///////////////////////////////
// Request building
///////////////////////////////

func TestTrailingSlashIdempotent(t *testing.T) {
	var urls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urls = append(urls, r.URL.String())
		writeJSON(w, http.StatusOK, emptyList)
	}))
	defer server.Close()

	for _, baseURL := range []string{server.URL, server.URL + "/"} {
		client := New(baseURL, "test-key")
		if _, err := client.ListChannels(context.Background(), ChannelListParams{}); err != nil {
			t.Fatalf("ListChannels error for base URL %q: %v", baseURL, err)
		}
	}

	if len(urls) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(urls))
	}
	if urls[0] != urls[1] {
		t.Errorf("Trailing slash changed the outbound URL: %q vs %q", urls[0], urls[1])
	}
	if urls[0] != "/api/v1/channels" {
		t.Errorf("Unexpected request URL: %s", urls[0])
	}
}

func TestListQueryOmitsEmptyFilters(t *testing.T) {
	var query url.Values
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(w, http.StatusOK, emptyList)
	})

	params := ChannelListParams{
		ListParams: ListParams{Limit: 20, Offset: 0},
		Title:      "",
	}
	if _, err := client.ListChannels(context.Background(), params); err != nil {
		t.Fatalf("ListChannels error: %v", err)
	}

	if got := query.Get("limit"); got != "20" {
		t.Errorf("Expected limit=20, got %q", got)
	}
	if got := query.Get("offset"); got != "0" {
		t.Errorf("Expected offset=0, got %q", got)
	}
	if _, present := query["title"]; present {
		t.Errorf("Empty title filter should be omitted, query was %v", query)
	}
	if _, present := query["subscribed"]; present {
		t.Errorf("Nil subscribed filter should be omitted, query was %v", query)
	}
}

func TestListQueryKeepsNonEmptyFilters(t *testing.T) {
	var query url.Values
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(w, http.StatusOK, emptyList)
	})

	subscribed := true
	params := ChannelListParams{
		ListParams: ListParams{Limit: 20, Offset: 40},
		Title:      "Acme",
		Subscribed: &subscribed,
	}
	if _, err := client.ListChannels(context.Background(), params); err != nil {
		t.Fatalf("ListChannels error: %v", err)
	}

	expected := map[string]string{
		"limit":      "20",
		"offset":     "40",
		"title":      "Acme",
		"subscribed": "true",
	}
	for key, want := range expected {
		if got := query.Get(key); got != want {
			t.Errorf("Expected %s=%s, got %q", key, want, got)
		}
	}
}

func TestRequestHeaders(t *testing.T) {
	var headers http.Header
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		writeJSON(w, http.StatusCreated, `{"id":1,"video_id":"v1","reason":"spam","created_at":"2026-01-02T03:04:05Z"}`)
	})

	req := CreateBlockedVideoRequest{VideoID: "v1", Reason: "spam"}
	if _, err := client.CreateBlockedVideo(context.Background(), req); err != nil {
		t.Fatalf("CreateBlockedVideo error: %v", err)
	}

	if got := headers.Get("X-API-Key"); got != "test-key" {
		t.Errorf("Expected API key header, got %q", got)
	}
	if headers.Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
	if got := headers.Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected JSON content type on create, got %q", got)
	}
	if got := headers.Get("Accept"); got != "application/json" {
		t.Errorf("Expected JSON accept header, got %q", got)
	}
}

///////////////////////////////
// Response handling
///////////////////////////////

func TestDeleteNoContent(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteChannel(context.Background(), "UC123"); err != nil {
		t.Fatalf("Expected 204 to succeed, got %v", err)
	}
}

func TestJSONErrorDetailSurfaced(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Unauthorized"}`)
	})

	_, err := client.ListChannels(context.Background(), ChannelListParams{})
	if err == nil {
		t.Fatal("Expected an error for a 401 response")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected *Error in chain, got %T: %v", err, err)
	}
	if apiErr.Message != "Unauthorized" {
		t.Errorf("Expected message 'Unauthorized', got %q", apiErr.Message)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", apiErr.Status)
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized should report true")
	}
}

func TestHTMLErrorSanitized(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<!DOCTYPE html><html><body><h1>502 Bad Gateway</h1></body></html>"))
	})

	_, err := client.ListChannels(context.Background(), ChannelListParams{})
	if err == nil {
		t.Fatal("Expected an error for a 502 response")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected *Error in chain, got %T: %v", err, err)
	}
	if apiErr.Message != "Server error (502 Bad Gateway). The API may be unavailable." {
		t.Errorf("Unexpected sanitized message: %q", apiErr.Message)
	}
	if strings.Contains(apiErr.Message, "<") {
		t.Errorf("Sanitized message leaked markup: %q", apiErr.Message)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", apiErr.Status)
	}
}

func TestPlainTextErrorSurfaced(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("channel not found"))
	})

	_, err := client.GetChannel(context.Background(), "UC404")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if apiErr.Message != "channel not found" {
		t.Errorf("Expected raw text message, got %q", apiErr.Message)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should report true")
	}
}

func TestEmptyErrorBodyFallsBackToStatusLine(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListJobs(context.Background(), JobListParams{})
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if apiErr.Message != "HTTP 500: Internal Server Error" {
		t.Errorf("Unexpected fallback message: %q", apiErr.Message)
	}
}

func TestTransportErrorHasNoStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(server.URL, "test-key")
	_, err := client.ListChannels(context.Background(), ChannelListParams{})
	if err == nil {
		t.Fatal("Expected an error against a closed server")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("Expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Transport errors must not carry a status, got %d", apiErr.Status)
	}
}

func TestNonJSONSuccessRejected(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	_, err := client.ListChannels(context.Background(), ChannelListParams{})
	if err == nil {
		t.Fatal("Expected a decoding error for a non-JSON success body")
	}
	if !strings.Contains(err.Error(), "not JSON") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLegacyNullsNormalizedInResponses(t *testing.T) {
	body := `{"items":[
		{"id":1,"video_id":"v1","reason":"spam","created_at":"2026-01-02T03:04:05Z","created_by":{"String":"admin","Valid":true}},
		{"id":2,"video_id":"v2","reason":"dmca","created_at":"2026-01-02T03:04:05Z","created_by":{"String":"","Valid":false}}
	],"total":2,"limit":20,"offset":0}`
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	})

	list, err := client.ListBlockedVideos(context.Background(), BlockedVideoListParams{})
	if err != nil {
		t.Fatalf("ListBlockedVideos error: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(list.Items))
	}

	if list.Items[0].CreatedBy == nil || *list.Items[0].CreatedBy != "admin" {
		t.Errorf("Expected wrapped value to collapse to 'admin', got %v", list.Items[0].CreatedBy)
	}
	if list.Items[1].CreatedBy != nil {
		t.Errorf("Expected invalid wrapper to collapse to nil, got %q", *list.Items[1].CreatedBy)
	}
}

///////////////////////////////
// Local validation
///////////////////////////////

func TestCreateValidatedBeforeSending(t *testing.T) {
	calls := 0
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusCreated, `{}`)
	})

	_, err := client.CreateChannel(context.Background(), CreateChannelRequest{Title: "No ID"})
	if err == nil {
		t.Fatal("Expected a validation error for a missing channel id")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("Unexpected validation error: %v", err)
	}
	if calls != 0 {
		t.Errorf("Invalid request must not reach the server, saw %d calls", calls)
	}

	_, err = client.CreateChannelFromURL(context.Background(), CreateChannelFromURLRequest{URL: "not a url"})
	if err == nil {
		t.Fatal("Expected a validation error for a malformed URL")
	}
	if calls != 0 {
		t.Errorf("Invalid request must not reach the server, saw %d calls", calls)
	}
}
