package trello

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func newFakeAPI(t *testing.T, creds Credentials) *httptest.Server {
	t.Helper()

	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("key") != creds.APIKey || q.Get("token") != creds.Token {
				http.Error(w, "invalid key", http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			next(w, r)
		}
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/1").Subrouter()
	api.HandleFunc("/members/me/boards", authorized(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "b1", "name": "Work", "closed": false},
			{"id": "b2", "name": "Home", "closed": false},
		})
	})).Methods("GET")
	api.HandleFunc("/boards/{id}/lists", authorized(func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": id + "-l1", "name": "Todo", "idBoard": id},
		})
	})).Methods("GET")
	api.HandleFunc("/lists/{id}/cards", authorized(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "c1", "name": "Task", "idList": mux.Vars(r)["id"], "price": 42},
			{"id": "c2", "name": "Other"},
		})
	})).Methods("GET")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL+"/" {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL+"/")
	}

	u, err = parseBaseURL("example.com:1234/1?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/1/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesDrillDown(t *testing.T) {
	t.Parallel()

	creds := Credentials{APIKey: "k", Token: "t"}
	server := newFakeAPI(t, creds)

	c, err := NewClient(server.URL+"/1", creds)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	boards, err := c.FetchBoards(ctx)
	if err != nil {
		t.Fatalf("FetchBoards returned error: %v", err)
	}
	if len(boards) != 2 || boards[0] != (Board{ID: "b1", Name: "Work"}) {
		t.Fatalf("FetchBoards = %#v, want Work and Home", boards)
	}

	lists, err := c.FetchLists(ctx, "b1")
	if err != nil {
		t.Fatalf("FetchLists returned error: %v", err)
	}
	if len(lists) != 1 || lists[0].ID != "b1-l1" {
		t.Fatalf("FetchLists = %#v, want b1-l1", lists)
	}

	cards, err := c.FetchCards(ctx, "b1-l1")
	if err != nil {
		t.Fatalf("FetchCards returned error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("FetchCards returned %d cards, want 2", len(cards))
	}
	for _, card := range cards {
		if card.Price != 0 || card.Checked {
			t.Fatalf("card %q = %#v, want zero price and unchecked", card.ID, card)
		}
	}
}

func TestClient_RejectsEmptyParentIDs(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", Credentials{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchLists(context.Background(), " "); err == nil {
		t.Fatalf("FetchLists returned nil error, want error")
	}
	if _, err := c.FetchCards(context.Background(), ""); err == nil {
		t.Fatalf("FetchCards returned nil error, want error")
	}
}

func TestClient_BadCredentialsFailWithErrAuth(t *testing.T) {
	t.Parallel()

	server := newFakeAPI(t, Credentials{APIKey: "k", Token: "t"})
	c, err := NewClient(server.URL+"/1", Credentials{APIKey: "k", Token: "wrong"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchBoards(context.Background())
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("FetchBoards error = %v, want ErrAuth", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusUnauthorized || fe.Reason != ReasonStatus {
		t.Fatalf("FetchBoards error = %#v, want status 401 FetchError", err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/members/me/boards":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/boards/b1/lists":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Credentials{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchBoards(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Reason != ReasonDecode {
		t.Fatalf("FetchBoards error = %v, want decode FetchError", err)
	}

	_, err = c.FetchLists(context.Background(), "b1")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchLists error = %v, want status 500 error", err)
	}
	if errors.Is(err, ErrAuth) {
		t.Fatalf("FetchLists error = %v, should not match ErrAuth", err)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(url, Credentials{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchBoards(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Reason != ReasonNetwork {
		t.Fatalf("FetchBoards error = %v, want network FetchError", err)
	}
	if !IsFetchFailure(err) {
		t.Fatalf("IsFetchFailure(%v) = false, want true", err)
	}
}
