// password.go — одностороннее хэширование паролей через bcrypt.
// Соль генерируется bcrypt'ом случайно на каждый вызов, сравнение —
// constant-time внутри самого примитива.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword возвращает bcrypt-хэш пароля.
// Два вызова для одного пароля дают разные хэши (случайная соль).
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword проверяет пароль против хэша.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
