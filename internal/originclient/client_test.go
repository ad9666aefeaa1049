package originclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestServer поднимает httptest-сервер с фиксированными ответами.
func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"userId":1,"id":1,"title":"first","body":"body one"},
			{"userId":2,"id":2,"title":"second","body":"body two"}
		]`))
	})
	mux.HandleFunc("/posts/1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":1,"id":1,"title":"first","body":"body one"}`))
	})
	mux.HandleFunc("/posts/999", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	mux.HandleFunc("/posts/500", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

// TestClient_ListPosts проверяет получение и декодирование списка.
func TestClient_ListPosts(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, slog.Default())

	posts, err := client.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts ошибка: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("постов = %d, ожидалось 2", len(posts))
	}
	if posts[0].ID != 1 || posts[0].Title != "first" {
		t.Errorf("posts[0] = %+v, ожидался id=1 title=first", posts[0])
	}
	if posts[1].UserID != 2 {
		t.Errorf("posts[1].UserID = %d, ожидался 2", posts[1].UserID)
	}
}

// TestClient_GetPost проверяет получение одного поста.
func TestClient_GetPost(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, slog.Default())

	post, err := client.GetPost(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetPost ошибка: %v", err)
	}
	if post.ID != 1 || post.Body != "body one" {
		t.Errorf("post = %+v, ожидался id=1 body='body one'", post)
	}
}

// TestClient_GetPost_NotFound проверяет маппинг 404 → ErrNotFound.
func TestClient_GetPost_NotFound(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, slog.Default())

	_, err := client.GetPost(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ошибка = %v, ожидалась ErrNotFound", err)
	}
}

// TestClient_GetPost_ServerError проверяет, что 5xx от origin — это
// обычная ошибка, а не ErrNotFound.
func TestClient_GetPost_ServerError(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	client := New(srv.URL, 5*time.Second, slog.Default())

	_, err := client.GetPost(context.Background(), 500)
	if err == nil {
		t.Fatal("ожидалась ошибка при 500 от origin")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("5xx не должен маппиться в ErrNotFound")
	}
}

// TestClient_Timeout проверяет bounded timeout: зависший origin — ошибка.
func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, 50*time.Millisecond, slog.Default())

	if _, err := client.ListPosts(context.Background()); err == nil {
		t.Fatal("ожидалась ошибка таймаута")
	}
}
