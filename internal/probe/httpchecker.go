package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// maxBodyBytes caps how much of a response we read for the
// body-substring check.
const maxBodyBytes = 1 << 20

// maxRedirects caps redirect chains per attempt; past that the target
// is treated as a transport failure.
const maxRedirects = 2

// HTTPChecker issues one GET per attempt with a per-attempt deadline.
// Any HTTP response that passes the configured header and body checks
// is a success, whatever the status code; up/down policy on status
// codes is left to consumers of the result.
type HTTPChecker struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPChecker{
		Client: &http.Client{
			// per-attempt deadline comes from the context, not the client
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		Timeout: timeout,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, t domain.Target) Attempt {
	cctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(cctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return Attempt{
			Outcome: domain.Outcome{Kind: domain.KindTransportError, Reason: err.Error()},
			Elapsed: time.Since(start),
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return Attempt{Outcome: classifyErr(err), Elapsed: time.Since(start)}
	}
	defer resp.Body.Close()

	if hc := t.Header; hc != nil {
		if got := resp.Header.Get(hc.Name); got != hc.Value {
			return Attempt{
				Outcome: domain.Outcome{
					Kind:       domain.KindHeaderMismatch,
					StatusCode: resp.StatusCode,
					Reason:     fmt.Sprintf("header %s: want %q, got %q", hc.Name, hc.Value, got),
				},
				Elapsed: time.Since(start),
			}
		}
	}

	if t.BodyContains != "" {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return Attempt{Outcome: classifyErr(err), Elapsed: time.Since(start)}
		}
		if !strings.Contains(string(body), t.BodyContains) {
			return Attempt{
				Outcome: domain.Outcome{
					Kind:       domain.KindBodyMismatch,
					StatusCode: resp.StatusCode,
					Reason:     fmt.Sprintf("body missing substring %q", t.BodyContains),
				},
				Elapsed: time.Since(start),
			}
		}
	}

	return Attempt{
		Outcome: domain.Outcome{Kind: domain.KindSuccess, StatusCode: resp.StatusCode},
		Elapsed: time.Since(start),
	}
}

func classifyErr(err error) domain.Outcome {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return domain.Outcome{Kind: domain.KindTimeout, Reason: err.Error()}
	}
	return domain.Outcome{Kind: domain.KindTransportError, Reason: err.Error()}
}
