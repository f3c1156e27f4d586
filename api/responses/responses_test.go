package responses

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/types"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return body.Error
}

func TestWriteSuccessWrapsData(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessStatus(w, http.StatusCreated, map[string]int{"created": 2})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"data":{"created":2}}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestWriteErrorMessages(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		status      int
		message     string
		wantDetails bool
	}{
		{
			name:        "validation keeps message and details",
			err:         pkgerrors.Invalid("bad input", map[string]string{"case_count": "must be at least 1"}),
			status:      http.StatusBadRequest,
			message:     "bad input",
			wantDetails: true,
		},
		{
			name:    "forbidden keeps message",
			err:     fmt.Errorf("opt in: %w", pkgerrors.New(pkgerrors.CodeForbidden, "store HRA103 is not yours")),
			status:  http.StatusForbidden,
			message: "store HRA103 is not yours",
		},
		{
			name:    "dependency hides message",
			err:     pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("dial tcp"), "load catalog"),
			status:  http.StatusServiceUnavailable,
			message: "dependency unavailable",
		},
		{
			name:    "untyped becomes internal",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
		{
			name:    "nil error still renders",
			err:     nil,
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(context.Background(), nil, w, tc.err)

			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, w.Code)
			}
			got := decodeError(t, w)
			if got.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, got.Message)
			}
			if (got.Details != nil) != tc.wantDetails {
				t.Fatalf("details presence mismatch: %v", got.Details)
			}
		})
	}
}

func TestWriteErrorLogsByStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("info"), Format: "json", Output: buf})

	WriteError(context.Background(), logg, httptest.NewRecorder(), errors.New("boom"))
	for _, want := range []string{`"message":"request.error"`, `"status":500`} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %s in %s", want, buf.String())
		}
	}

	buf.Reset()
	WriteError(context.Background(), logg, httptest.NewRecorder(), pkgerrors.NotFound("deal", "9"))
	if !strings.Contains(buf.String(), `"message":"request.rejected"`) {
		t.Fatalf("expected rejected log, got %s", buf.String())
	}

	buf.Reset()
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "test_users_email_key", TableName: "test_users"}
	WriteError(context.Background(), logg, httptest.NewRecorder(), pkgerrors.Wrap(pkgerrors.CodeConflict, pgErr, "email taken"))
	if !strings.Contains(buf.String(), `"pg_constraint":"test_users_email_key"`) {
		t.Fatalf("expected pg constraint field, got %s", buf.String())
	}
}

func TestWriteAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAttachment(w, "text/csv; charset=utf-8", "deal-1-signups.csv", []byte("Store\n"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("unexpected cache control %q", cc)
	}
	if w.Body.String() != "Store\n" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}

	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	if err != nil {
		t.Fatalf("parse disposition: %v", err)
	}
	if disposition != "attachment" || params["filename"] != "deal-1-signups.csv" {
		t.Fatalf("unexpected disposition %s %v", disposition, params)
	}
}

func TestWriteAttachmentKeepsCallerCacheControl(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("Cache-Control", "public, max-age=3600")
	WriteAttachment(w, "image/png", "", []byte("\x89PNG"))

	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Fatalf("unexpected cache control %q", cc)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "" {
		t.Fatalf("expected inline body, got disposition %q", cd)
	}
}
