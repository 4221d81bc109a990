package core

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	jshttprouter "github.com/julienschmidt/httprouter"

	"github.com/caasmo/tablebook/config"
	"github.com/caasmo/tablebook/db/mock"
	"github.com/caasmo/tablebook/router/httprouter"
)

// testJwtSecret is exactly 32 bytes, the minimum the validator accepts.
const testJwtSecret = "0123456789abcdef0123456789abcdef"

// notifierFunc adapts a function to the Notifier interface so tests can
// observe or fail email delivery.
type notifierFunc func(ctx context.Context, to, subject, htmlBody string) error

func (f notifierFunc) Send(ctx context.Context, to, subject, htmlBody string) error {
	return f(ctx, to, subject, htmlBody)
}

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Jwt.AuthSecret = testJwtSecret
	return cfg
}

// newTestApp builds an App on the mock database with a discard logger and
// a notifier that accepts everything.
func newTestApp(t *testing.T, mdb *mock.Db) *App {
	t.Helper()

	app, err := NewApp(
		WithConfig(testConfig()),
		WithDb(mdb),
		WithRouter(httprouter.New()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNotifier(notifierFunc(func(ctx context.Context, to, subject, htmlBody string) error {
			return nil
		})),
	)
	if err != nil {
		t.Fatalf("failed to build test app: %v", err)
	}
	return app
}

// withPathParam attaches a path parameter the way the router would before
// invoking the handler.
func withPathParam(req *http.Request, name, value string) *http.Request {
	params := jshttprouter.Params{{Key: name, Value: value}}
	ctx := context.WithValue(req.Context(), jshttprouter.ParamsKey, params)
	return req.WithContext(ctx)
}

// checkResponse asserts the recorded status and code match the expected
// precomputed response.
func checkResponse(t *testing.T, rr *httptest.ResponseRecorder, want jsonResponse) {
	t.Helper()

	if rr.Code != want.status {
		t.Errorf("expected status %d, got %d", want.status, rr.Code)
	}

	var gotBody, wantBody map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&gotBody); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if err := json.Unmarshal(want.body, &wantBody); err != nil {
		t.Fatalf("failed to decode expected body: %v", err)
	}
	if gotBody["code"] != wantBody["code"] {
		t.Errorf("expected code %q, got %q", wantBody["code"], gotBody["code"])
	}
}
