// ExternalPostService — cache-aside чтение внешнего контента.
// Единственный писатель кэша — сам сервис: записи появляются только
// как следствие промаха при чтении, фоновой прогрузки нет.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/content-api/internal/cache"
	"github.com/bigkaa/content-api/internal/domain/model"
	"github.com/bigkaa/content-api/internal/originclient"
)

// Ошибки сервиса внешних постов.
var (
	// ErrExternalPostNotFound — пост отсутствует в origin.
	ErrExternalPostNotFound = errors.New("внешний пост не найден")
)

// Ключи кэша.
const (
	cacheKeyAllPosts = "external_posts"
	cacheKeyPostFmt  = "external_post:%d"
)

// Метрики кэша внешних постов.
var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ca_cache_hits_total",
		Help: "Количество попаданий в кэш внешних постов",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ca_cache_misses_total",
		Help: "Количество промахов кэша внешних постов (включая вынужденные)",
	})
)

// OriginClient — контракт клиента внешнего API постов.
type OriginClient interface {
	ListPosts(ctx context.Context) ([]model.ExternalPost, error)
	GetPost(ctx context.Context, id int64) (*model.ExternalPost, error)
}

// ExternalPostService — сервис внешних постов с cache-aside чтением.
// Путь чтения: кэш → (промах) → origin → запись снимка в кэш → ответ.
// Недоступность кэша трактуется как вынужденный промах: ошибка бэкенда
// логируется и никогда не доходит до клиента (fail open). Ошибка origin,
// напротив, возвращается вызывающему и в кэш не попадает.
// Защиты от cache stampede нет: при одновременных промахах несколько
// запросов сходят в origin независимо. Для этого источника данных
// лишний GET дешевле координации.
type ExternalPostService struct {
	origin OriginClient
	store  cache.Store
	logger *slog.Logger
}

// NewExternalPostService создаёт сервис внешних постов.
func NewExternalPostService(origin OriginClient, store cache.Store, logger *slog.Logger) *ExternalPostService {
	return &ExternalPostService{
		origin: origin,
		store:  store,
		logger: logger.With(slog.String("component", "external_post_service")),
	}
}

// ListPosts возвращает полный список внешних постов (cache-aside).
func (s *ExternalPostService) ListPosts(ctx context.Context) ([]model.ExternalPost, error) {
	if raw, ok := s.cacheGet(ctx, cacheKeyAllPosts); ok {
		var posts []model.ExternalPost
		if err := json.Unmarshal([]byte(raw), &posts); err == nil {
			cacheHits.Inc()
			return posts, nil
		}
		// Битый снимок — трактуем как промах и перезаписываем.
		s.logger.Warn("Повреждённый снимок в кэше, перечитываю origin",
			slog.String("key", cacheKeyAllPosts),
		)
	}
	cacheMisses.Inc()

	posts, err := s.origin.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение постов из origin: %w", err)
	}

	s.cacheSet(ctx, cacheKeyAllPosts, posts)
	return posts, nil
}

// GetPost возвращает один внешний пост по идентификатору (cache-aside).
// Возвращает ErrExternalPostNotFound, если пост отсутствует в origin.
func (s *ExternalPostService) GetPost(ctx context.Context, id int64) (*model.ExternalPost, error) {
	key := fmt.Sprintf(cacheKeyPostFmt, id)

	if raw, ok := s.cacheGet(ctx, key); ok {
		post := &model.ExternalPost{}
		if err := json.Unmarshal([]byte(raw), post); err == nil {
			cacheHits.Inc()
			return post, nil
		}
		s.logger.Warn("Повреждённый снимок в кэше, перечитываю origin",
			slog.String("key", key),
		)
	}
	cacheMisses.Inc()

	post, err := s.origin.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, originclient.ErrNotFound) {
			return nil, ErrExternalPostNotFound
		}
		return nil, fmt.Errorf("получение поста %d из origin: %w", id, err)
	}

	s.cacheSet(ctx, key, post)
	return post, nil
}

// cacheGet читает ключ из кэша. Ошибка бэкенда — вынужденный промах:
// логируется и возвращается (_, false).
func (s *ExternalPostService) cacheGet(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Кэш недоступен при чтении, вынужденный промах",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return raw, ok
}

// cacheSet сериализует значение и пишет в кэш best-effort:
// любая ошибка логируется и глотается, ответ клиенту не страдает.
func (s *ExternalPostService) cacheSet(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Не удалось сериализовать снимок для кэша",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.store.Set(ctx, key, string(raw)); err != nil {
		s.logger.Warn("Кэш недоступен при записи, снимок не сохранён",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
