package mirror

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wine-cx/wine-pricing-system/internal/config"
)

func newTestClient(apiBase string) *Client {
	return NewClient(config.MirrorConfig{
		Enabled: true,
		APIBase: apiBase,
		Repo:    "wine-cx/backup",
		Branch:  "main",
		Path:    "cleaned_data.xlsx",
		Token:   "test-token",
	})
}

func TestPushCreatesWhenRemoteMissing(t *testing.T) {
	var gotPut putRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization=%q", r.Header.Get("Authorization"))
		}
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&gotPut); err != nil {
				t.Errorf("decode put: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Push([]byte("hello"), "backup"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	if gotPut.SHA != "" {
		t.Fatalf("远端不存在时不应带 sha: %q", gotPut.SHA)
	}
	decoded, _ := base64.StdEncoding.DecodeString(gotPut.Content)
	if string(decoded) != "hello" {
		t.Fatalf("content=%q", decoded)
	}
	if gotPut.Branch != "main" {
		t.Fatalf("branch=%q", gotPut.Branch)
	}
}

func TestPushUpdatesWithExistingSHA(t *testing.T) {
	var gotPut putRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{"sha": "abc123"})
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&gotPut)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).Push([]byte("v2"), "backup"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if gotPut.SHA != "abc123" {
		t.Fatalf("更新应带现有 sha: %q", gotPut.SHA)
	}
}

func TestPushReportsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).Push([]byte("x"), "backup"); err == nil {
		t.Fatalf("401 应返回错误")
	}
}

func TestEnabledRequiresRepoAndToken(t *testing.T) {
	c := NewClient(config.MirrorConfig{Enabled: true})
	if c.Enabled() {
		t.Fatalf("缺 repo/token 不应可用")
	}
}
