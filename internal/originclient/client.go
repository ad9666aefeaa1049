// Пакет originclient — HTTP-клиент внешнего API постов
// (JSONPlaceholder-совместимый источник).
// Origin — авторитетный источник внешнего контента, зеркалируемого
// в кэш. Все запросы с bounded timeout: зависший origin — это ошибка,
// а не бесконечное ожидание. Ретраев нет.
package originclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bigkaa/content-api/internal/domain/model"
)

// Ошибки origin-клиента.
var (
	// ErrNotFound — origin вернул 404 для запрошенного поста.
	ErrNotFound = errors.New("пост не найден во внешнем API")
)

// Client — HTTP-клиент внешнего API постов.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// New создаёт origin-клиент.
// baseURL — базовый URL внешнего API (CA_ORIGIN_URL).
// timeout — таймаут HTTP-запросов (CA_ORIGIN_TIMEOUT).
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With(slog.String("component", "origin_client")),
	}
}

// ListPosts запрашивает полный список постов.
// GET {baseURL}/posts
func (c *Client) ListPosts(ctx context.Context) ([]model.ExternalPost, error) {
	reqURL := c.baseURL + "/posts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса ListPosts: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос ListPosts к %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("origin вернул статус %d для списка постов", resp.StatusCode)
	}

	var posts []model.ExternalPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("декодирование списка постов: %w", err)
	}

	c.logger.Debug("Список постов получен из origin",
		slog.Int("count", len(posts)),
	)
	return posts, nil
}

// GetPost запрашивает один пост по идентификатору.
// GET {baseURL}/posts/{id}
// Возвращает ErrNotFound при 404 от origin.
func (c *Client) GetPost(ctx context.Context, id int64) (*model.ExternalPost, error) {
	reqURL := fmt.Sprintf("%s/posts/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса GetPost: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос GetPost к %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("origin вернул статус %d для поста %d", resp.StatusCode, id)
	}

	post := &model.ExternalPost{}
	if err := json.NewDecoder(resp.Body).Decode(post); err != nil {
		return nil, fmt.Errorf("декодирование поста: %w", err)
	}
	return post, nil
}
