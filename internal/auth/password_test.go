package auth

import "testing"

// TestHashPassword_UniqueSalt проверяет, что два хэша одного пароля
// различаются (случайная соль), но оба проходят проверку.
func TestHashPassword_UniqueSalt(t *testing.T) {
	h1, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword ошибка: %v", err)
	}
	h2, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword ошибка: %v", err)
	}

	if h1 == h2 {
		t.Error("хэши совпадают — соль не рандомизируется")
	}
	if !CheckPassword("pw123456", h1) {
		t.Error("CheckPassword = false для первого хэша")
	}
	if !CheckPassword("pw123456", h2) {
		t.Error("CheckPassword = false для второго хэша")
	}
}

// TestCheckPassword_Wrong проверяет отклонение неверного пароля.
func TestCheckPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword ошибка: %v", err)
	}

	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword = true для неверного пароля")
	}
	if CheckPassword("", hash) {
		t.Error("CheckPassword = true для пустого пароля")
	}
}
