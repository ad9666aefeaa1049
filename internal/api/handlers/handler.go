// handler.go — основной обработчик API Content API.
// Объединяет бизнес-обработчики и health endpoints, регистрирует
// маршруты на chi-роутере и разделяет их на публичные,
// аутентифицированные и административные группы.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/bigkaa/content-api/internal/api/errors"
	"github.com/bigkaa/content-api/internal/api/middleware"
	"github.com/bigkaa/content-api/internal/service"
)

// APIHandler — основной обработчик API Content API.
// Делегирует запросы в сервисный слой.
type APIHandler struct {
	auth     *service.AuthService
	posts    *service.PostService
	external *service.ExternalPostService
	admin    *service.AdminService
	gate     *middleware.AuthGate
	health   *HealthHandler
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	auth *service.AuthService,
	posts *service.PostService,
	external *service.ExternalPostService,
	admin *service.AdminService,
	gate *middleware.AuthGate,
	health *HealthHandler,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		auth:     auth,
		posts:    posts,
		external: external,
		admin:    admin,
		gate:     gate,
		health:   health,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With(slog.String("component", "api_handler")),
	}
}

// Routes регистрирует все маршруты API на роутере.
func (h *APIHandler) Routes(r chi.Router) {
	// Health и метрики — без аутентификации
	r.Get("/health/live", h.health.HealthLive)
	r.Get("/health/ready", h.health.HealthReady)
	r.Get("/metrics", h.health.GetMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные endpoints
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		// Требуют валидный access-токен
		r.Group(func(r chi.Router) {
			r.Use(h.gate.Middleware())

			r.Get("/profile/me", h.GetProfile)

			r.Post("/posts", h.CreatePost)
			r.Get("/posts/my", h.MyPosts)
			r.Delete("/posts/{id}", h.DeletePost)

			r.Get("/external-posts", h.ListExternalPosts)
			r.Get("/external-posts/{id}", h.GetExternalPost)

			// Только для администраторов
			r.Group(func(r chi.Router) {
				r.Use(h.gate.RequireAdmin())

				r.Get("/admin/users", h.ListUsers)
				r.Post("/admin/users/{id}/deactivate", h.DeactivateUser)
			})
		})
	})
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON разбирает тело запроса в dst и валидирует его.
// При ошибке пишет 400 и возвращает false.
func (h *APIHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apierrors.ValidationError(w, "Некорректное тело запроса")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		apierrors.ValidationError(w, validationMessage(err))
		return false
	}
	return true
}

// validationMessage формирует человекочитаемое сообщение из ошибок валидатора.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Некорректные входные данные"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, "поле "+field+" обязательно")
		case "email":
			parts = append(parts, "поле "+field+" должно быть корректным email")
		case "min":
			parts = append(parts, "поле "+field+" короче минимальной длины "+fe.Param())
		case "max":
			parts = append(parts, "поле "+field+" длиннее максимальной длины "+fe.Param())
		default:
			parts = append(parts, "поле "+field+" не прошло проверку "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// urlParamID извлекает числовой {id} из пути.
// При ошибке пишет 400 и возвращает false.
func urlParamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierrors.ValidationError(w, "Некорректный идентификатор в пути")
		return 0, false
	}
	return id, true
}

// queryInt читает целочисленный query-параметр с значением по умолчанию
// и ограничениями. Значения вне диапазона приводятся к границам.
func queryInt(r *http.Request, name string, def, minVal, maxVal int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
