package requestutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizeRequestID(t *testing.T) {
	tooLong := strings.Repeat("a", 65)
	cases := map[string]bool{
		"valid-123": true,
		"abc_DEF":   true,
		"":          false,
		"bad id":    false,
		"id;drop":   false,
		tooLong:     false,
	}
	for in, keep := range cases {
		got := SanitizeRequestID(in)
		if keep && got != in {
			t.Fatalf("SanitizeRequestID(%q) = %q, want pass-through", in, got)
		}
		if !keep {
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("SanitizeRequestID(%q) = %q, want fresh uuid", in, got)
			}
		}
	}
}

func TestNewRequestIDFallsBackWhenRandomFails(t *testing.T) {
	orig := newUUID
	defer func() { newUUID = orig }()
	newUUID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }

	got := NewRequestID()
	if got == "" || SanitizeRequestID(got) != got {
		t.Fatalf("expected fallback id usable as a request id, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": " 4.4.4.4 "}, "9.9.9.9:1", "4.4.4.4"},
		{"remote host", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"remote without port", nil, "unix", "unix"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.remote
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		if got := ClientIP(req); got != tc.want {
			t.Fatalf("%s: ClientIP = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		query   string
		value   int
		present bool
		ok      bool
	}{
		{query: "", value: 0, present: false, ok: true},
		{query: "limit=20", value: 20, present: true, ok: true},
		{query: "limit=%2012%20", value: 12, present: true, ok: true},
		{query: "limit=0", value: 0, present: true, ok: true},
		{query: "limit=-1", value: 0, present: true, ok: false},
		{query: "limit=abc", value: 0, present: true, ok: false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/games?"+tt.query, nil)
		value, present, ok := IntParam(req, "limit")
		if value != tt.value || present != tt.present || ok != tt.ok {
			t.Fatalf("IntParam(%q) = (%d, %v, %v), want (%d, %v, %v)", tt.query, value, present, ok, tt.value, tt.present, tt.ok)
		}
	}
}

func TestBoolParam(t *testing.T) {
	cases := map[string]bool{
		"reload=1":     true,
		"reload=true":  true,
		"reload=YES":   true,
		"reload=0":     false,
		"reload=maybe": false,
		"":             false,
	}
	for q, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/genres?"+q, nil)
		if got := BoolParam(req, "reload"); got != want {
			t.Fatalf("BoolParam(%q) = %v, want %v", q, got, want)
		}
	}
}
