// Пакет auth — выпуск и проверка подписанных bearer-токенов
// и хэширование паролей.
// Токены — JWT HS256 с симметричным секретом из конфигурации.
// Алгоритм фиксирован, негосиация per-token не поддерживается
// (защита от downgrade-атак).
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки пакета auth.
var (
	// ErrInvalidToken — токен не прошёл проверку.
	// Намеренно единая ошибка для всех случаев (битый формат, неверная
	// подпись, истёкший срок) — вызывающий не должен узнать причину.
	ErrInvalidToken = errors.New("невалидный или просроченный токен")
)

// TokenKind — тип токена. Access и refresh кодируются одинаково
// и различаются только временем жизни.
type TokenKind string

const (
	// KindAccess — короткоживущий токен для доступа к API.
	KindAccess TokenKind = "access"
	// KindRefresh — долгоживущий токен для обновления пары.
	KindRefresh TokenKind = "refresh"
)

// TokenPair — пара access + refresh токенов, выдаваемая при логине.
type TokenPair struct {
	// AccessToken — короткоживущий токен
	AccessToken string
	// RefreshToken — долгоживущий токен
	RefreshToken string
}

// TokenService — выпуск и проверка JWT-токенов.
// Чистая функция от (токен, секрет, текущее время) — состояния нет,
// токены не персистятся и не отзываются до истечения срока.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration

	// now — источник времени; подменяется в тестах.
	now func() time.Time
}

// NewTokenService создаёт сервис токенов.
// secret — симметричный секрет HS256 (CA_JWT_SECRET).
// accessTTL, refreshTTL — время жизни токенов; accessTTL < refreshTTL.
// leeway — допустимое отклонение часов при проверке exp.
func NewTokenService(secret string, accessTTL, refreshTTL, leeway time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		leeway:     leeway,
		now:        time.Now,
	}
}

// ttl возвращает время жизни для указанного типа токена.
func (s *TokenService) ttl(kind TokenKind) time.Duration {
	if kind == KindRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}

// Issue выпускает подписанный токен для пользователя.
// Claims: sub = userID (строкой), exp = now + TTL(kind).
func (s *TokenService) Issue(userID int64, kind TokenKind) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(kind))),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// IssuePair выпускает пару access + refresh токенов.
func (s *TokenService) IssuePair(userID int64) (*TokenPair, error) {
	access, err := s.Issue(userID, KindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Issue(userID, KindRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify проверяет подпись и срок действия токена.
// Возвращает идентификатор пользователя (sub) или ErrInvalidToken.
// Детали отказа вызывающему не сообщаются.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
