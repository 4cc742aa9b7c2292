package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce_backend/internal/models"
	"ecommerce_backend/internal/service"
)

func TestCart_RequiresToken(t *testing.T) {
	s, _, cart := authedService("u-1")
	r := newTestRouter(s)

	for _, req := range []*http.Request{
		doJSON(http.MethodGet, "/cart", "", nil),
		doJSON(http.MethodPost, "/cart", `{"itemId":"i1"}`, nil),
		doJSON(http.MethodDelete, "/cart/ci1", "", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", req.Method, req.URL.Path, w.Code)
		}
	}
	if cart.lastUserID != "" {
		t.Fatalf("cart must not be touched without a token")
	}
}

func TestGetCart(t *testing.T) {
	s, _, cart := authedService("u-1")
	cart.items = []models.CartItem{{ID: "ci1", ItemID: "i1", Name: "Book", Price: 10}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, doJSON(http.MethodGet, "/cart", "", authHeader("t")))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cart.lastUserID != "u-1" {
		t.Fatalf("cart looked up for %q, want token owner", cart.lastUserID)
	}

	var got []models.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ci1" || got[0].ItemID != "i1" {
		t.Fatalf("unexpected cart: %+v", got)
	}
}

func TestGetCart_EmptyIsArray(t *testing.T) {
	s, _, cart := authedService("u-1")
	cart.items = []models.CartItem{}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, doJSON(http.MethodGet, "/cart", "", authHeader("t")))
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected 200 [], got %d %s", w.Code, w.Body.String())
	}
}

func TestAddToCart(t *testing.T) {
	s, _, cart := authedService("u-1")
	cart.items = []models.CartItem{{ID: "ci1", ItemID: "i1"}}
	r := newTestRouter(s)

	w := postJSON(r, "/cart", `{"itemId":"i1"}`, authHeader("t"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if cart.lastUserID != "u-1" || cart.lastItemID != "i1" {
		t.Fatalf("unexpected add args: user=%q item=%q", cart.lastUserID, cart.lastItemID)
	}
}

func TestAddToCart_Errors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing itemId", `{}`, nil, http.StatusBadRequest, ""},
		{"unknown item", `{"itemId":"nope"}`, service.ErrItemNotFound, http.StatusNotFound, errItemNotFound},
		{"store failure", `{"itemId":"i1"}`, errBoom, http.StatusInternalServerError, errInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, cart := authedService("u-1")
			cart.addErr = tc.err
			r := newTestRouter(s)

			w := postJSON(r, "/cart", tc.body, authHeader("t"))
			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d (body=%s)", tc.wantCode, w.Code, w.Body.String())
			}
			if tc.wantMsg != "" {
				if m := decodeBody(t, w); m["error"] != tc.wantMsg {
					t.Fatalf("error: got %v, want %q", m["error"], tc.wantMsg)
				}
			}
		})
	}
}

func TestRemoveFromCart(t *testing.T) {
	s, _, cart := authedService("u-1")
	cart.items = []models.CartItem{}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, doJSON(http.MethodDelete, "/cart/ci1", "", authHeader("t")))
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected 200 [], got %d %s", w.Code, w.Body.String())
	}
	if cart.lastItemID != "ci1" || cart.lastUserID != "u-1" {
		t.Fatalf("unexpected remove args: user=%q item=%q", cart.lastUserID, cart.lastItemID)
	}

	cart.removeErr = service.ErrCartNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, doJSON(http.MethodDelete, "/cart/ci1", "", authHeader("t")))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when there is no cart, got %d", w.Code)
	}
	if m := decodeBody(t, w); m["error"] != errCartNotFound {
		t.Fatalf("unexpected body: %v", m)
	}
}
