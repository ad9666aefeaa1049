package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/content-api/internal/domain/model"
)

// userColumns — список столбцов таблицы users для SELECT-запросов.
// DRY: одно место для всех SELECT'ов.
const userColumns = `id, email, full_name, hashed_password, is_active, is_admin, created_at`

// UserListParams — параметры admin-листинга пользователей.
// Поля-фильтры — указатели, nil = фильтр не применяется.
type UserListParams struct {
	// Search — подстрочный поиск по email (case-insensitive ILIKE)
	Search *string
	// Active — фильтр по флагу is_active (точное совпадение)
	Active *bool
	// Limit — количество результатов
	Limit int
	// Offset — смещение
	Offset int
}

// UserRepository — интерфейс доступа к учётным записям.
type UserRepository interface {
	// GetByID возвращает пользователя по идентификатору.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail возвращает пользователя по email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Create вставляет нового пользователя. При занятом email — ErrDuplicate.
	Create(ctx context.Context, email string, fullName *string, hashedPassword string, isAdmin bool) (*model.User, error)
	// Deactivate выставляет is_active=false (односторонняя операция).
	// Идемпотентна: повторный вызов для неактивного пользователя не ошибка.
	Deactivate(ctx context.Context, id int64) error
	// List возвращает страницу пользователей по фильтрам.
	// Возвращает: список, общее количество по тем же фильтрам, ошибка.
	List(ctx context.Context, params UserListParams) ([]*model.User, int, error)
}

// userRepo — реализация UserRepository через pgx.
type userRepo struct {
	db DBTX
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

// GetByID возвращает пользователя по идентификатору или ErrNotFound.
func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsActive, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return u, nil
}

// GetByEmail возвращает пользователя по email или ErrNotFound.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsActive, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя по email: %w", err)
	}
	return u, nil
}

// Create вставляет пользователя и возвращает созданную запись.
// Уникальность email обеспечивается ограничением БД — при гонке
// двух регистраций проигравшая получает ErrDuplicate.
func (r *userRepo) Create(ctx context.Context, email string, fullName *string, hashedPassword string, isAdmin bool) (*model.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (email, full_name, hashed_password, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, userColumns)

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, email, fullName, hashedPassword, isAdmin).Scan(
		&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsActive, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return u, nil
}

// Deactivate выставляет is_active=false.
// ErrNotFound только если пользователя нет вовсе; повторная
// деактивация уже неактивного — не ошибка.
func (r *userRepo) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET is_active = FALSE
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка деактивации пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List возвращает страницу пользователей с фильтрами и общее количество.
func (r *userRepo) List(ctx context.Context, params UserListParams) ([]*model.User, int, error) {
	// Построение WHERE-условия
	where, args := buildUserListWhere(params, 1)
	argNum := len(args) + 1

	// Запрос данных с пагинацией
	dataQuery := fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		userColumns, where, argNum, argNum+1,
	)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.db.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка листинга пользователей: %w", err)
	}
	defer rows.Close()

	var result []*model.User
	for rows.Next() {
		u := &model.User{}
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsActive, &u.IsAdmin, &u.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	// Запрос общего количества (с теми же фильтрами, без LIMIT/OFFSET)
	countWhere, countArgs := buildUserListWhere(params, 1)
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, countWhere)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}

	return result, total, nil
}

// buildUserListWhere строит WHERE-условие и аргументы для листинга пользователей.
// startArg — номер первого $-параметра (для корректной нумерации).
func buildUserListWhere(params UserListParams, startArg int) (whereClause string, args []any) {
	var conditions []string
	argNum := startArg

	// Подстрочный поиск по email (case-insensitive)
	if params.Search != nil && *params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("email ILIKE $%d", argNum))
		args = append(args, "%"+*params.Search+"%")
		argNum++
	}

	// Фильтр по активности
	if params.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argNum))
		args = append(args, *params.Active)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}
