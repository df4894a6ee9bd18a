package router

import (
	"testing"

	"github.com/bthrall/pistache/method"
	"github.com/bthrall/pistache/parser"
	"github.com/bthrall/pistache/response"
)

func noopHandler(req *parser.Request, resp *response.Response, params []Param) error {
	return nil
}

func TestRouterMatch(t *testing.T) {
	r := New()
	r.Get("/api/v1/user", noopHandler)
	r.Get("/api/v1/order", noopHandler)
	r.Get("/api/v1/user/:id", noopHandler)

	tests := []struct {
		name       string
		path       string
		wantHandle bool
		wantParams map[string]string
	}{
		{"static match", "/api/v1/user", true, nil},
		{"static match order", "/api/v1/order", true, nil},
		{"param match", "/api/v1/user/123", true, map[string]string{"id": "123"}},
		{"no match", "/api/v1/unknown", false, nil},
		{"partial match", "/api/v1", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, params := r.Match(method.GET, tt.path, nil)

			if (h != nil) != tt.wantHandle {
				t.Fatalf("Match() gotHandler = %v, want %v", h != nil, tt.wantHandle)
			}
			for _, p := range params {
				if want, ok := tt.wantParams[p.Key]; ok && want != p.Value {
					t.Errorf("param %s: got %s, want %s", p.Key, p.Value, want)
				}
			}
		})
	}
}

func TestRouterDistinguishesMethod(t *testing.T) {
	r := New()
	r.Get("/thing", noopHandler)

	if h, _ := r.Match(method.POST, "/thing", nil); h != nil {
		t.Fatal("expected no handler for POST on a GET-only route")
	}
	if h, _ := r.Match(method.GET, "/thing", nil); h == nil {
		t.Fatal("expected a handler for GET on a GET-only route")
	}
}

func BenchmarkRouterMatchStatic(b *testing.B) {
	r := New()
	r.Get("/api/v1/user/profile/settings", noopHandler)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Match(method.GET, "/api/v1/user/profile/settings", nil)
	}
}

func BenchmarkRouterMatchParam(b *testing.B) {
	r := New()
	r.Get("/api/v1/user/:id/posts/:post_id", noopHandler)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Match(method.GET, "/api/v1/user/123/posts/456", nil)
	}
}
