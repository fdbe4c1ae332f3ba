package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

func TestHTTPChecker_StatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("hello world"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	att := chk.Check(context.Background(), domain.Target{URL: s.URL})
	if att.Outcome.Kind != domain.KindSuccess {
		t.Fatalf("want success, got %+v", att.Outcome)
	}
	if att.Outcome.StatusCode != 200 {
		t.Fatalf("want status 200, got %d", att.Outcome.StatusCode)
	}
	if att.Elapsed < 0 {
		t.Fatalf("elapsed should be >= 0, got %v", att.Elapsed)
	}
}

func TestHTTPChecker_ServerErrorIsStillAResponse(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	att := chk.Check(context.Background(), domain.Target{URL: s.URL})
	// 500 is a received response: the probe succeeded, the status says what it said
	if att.Outcome.Kind != domain.KindSuccess || att.Outcome.StatusCode != 500 {
		t.Fatalf("want success with status 500, got %+v", att.Outcome)
	}
}

func TestHTTPChecker_HeaderMismatch(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "unit-test")
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)

	att := chk.Check(context.Background(), domain.Target{
		URL:    s.URL,
		Header: &domain.HeaderCheck{Name: "Server", Value: "unit-test"},
	})
	if att.Outcome.Kind != domain.KindSuccess {
		t.Fatalf("matching header should pass, got %+v", att.Outcome)
	}

	att = chk.Check(context.Background(), domain.Target{
		URL:    s.URL,
		Header: &domain.HeaderCheck{Name: "Server", Value: "nginx"},
	})
	if att.Outcome.Kind != domain.KindHeaderMismatch {
		t.Fatalf("want header_mismatch, got %+v", att.Outcome)
	}
	if att.Outcome.StatusCode != 200 {
		t.Fatalf("mismatch should keep the status code, got %d", att.Outcome.StatusCode)
	}
	if !strings.Contains(att.Outcome.Reason, "Server") {
		t.Fatalf("reason should name the header, got %q", att.Outcome.Reason)
	}
}

func TestHTTPChecker_MissingHeaderIsMismatch(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	att := chk.Check(context.Background(), domain.Target{
		URL:    s.URL,
		Header: &domain.HeaderCheck{Name: "Server", Value: "nginx"},
	})
	if att.Outcome.Kind != domain.KindHeaderMismatch {
		t.Fatalf("want header_mismatch for absent header, got %+v", att.Outcome)
	}
}

func TestHTTPChecker_BodyContains(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("foo bar baz"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)

	att := chk.Check(context.Background(), domain.Target{URL: s.URL, BodyContains: "bar"})
	if att.Outcome.Kind != domain.KindSuccess {
		t.Fatalf("want success, got %+v", att.Outcome)
	}

	att = chk.Check(context.Background(), domain.Target{URL: s.URL, BodyContains: "nope"})
	if att.Outcome.Kind != domain.KindBodyMismatch {
		t.Fatalf("want body_mismatch, got %+v", att.Outcome)
	}
}

func TestHTTPChecker_Timeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50 * time.Millisecond)
	att := chk.Check(context.Background(), domain.Target{URL: s.URL})
	if att.Outcome.Kind != domain.KindTimeout {
		t.Fatalf("want timeout, got %+v", att.Outcome)
	}
	if att.Outcome.Reason == "" {
		t.Fatalf("want non-empty reason")
	}
}

func TestHTTPChecker_RedirectLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	mux.HandleFunc("/hop1", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/hop2", http.StatusFound)
	})
	mux.HandleFunc("/hop2", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})
	s := httptest.NewServer(mux)
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)

	// two hops is within the limit
	att := chk.Check(context.Background(), domain.Target{URL: s.URL + "/hop1"})
	if att.Outcome.Kind != domain.KindSuccess || att.Outcome.StatusCode != 200 {
		t.Fatalf("two redirects should pass, got %+v", att.Outcome)
	}

	// a loop burns through the cap and fails as a transport error
	att = chk.Check(context.Background(), domain.Target{URL: s.URL + "/loop"})
	if att.Outcome.Kind != domain.KindTransportError {
		t.Fatalf("want transport_error past the redirect cap, got %+v", att.Outcome)
	}
	if !strings.Contains(att.Outcome.Reason, "redirects") {
		t.Fatalf("reason should mention redirects, got %q", att.Outcome.Reason)
	}
}

func TestHTTPChecker_TransportError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close() // nothing listening anymore

	chk := NewHTTPChecker(time.Second)
	att := chk.Check(context.Background(), domain.Target{URL: url})
	if att.Outcome.Kind != domain.KindTransportError {
		t.Fatalf("want transport_error, got %+v", att.Outcome)
	}
}
