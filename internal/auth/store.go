package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/speaking-practice/backend/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("an account with this email already exists")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, email, username, passwordHash string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (email, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, username, created_at`,
		email, username, passwordHash, time.Now().UTC(),
	).Scan(&user.ID, &user.Email, &user.Username, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, email, username, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (s *Store) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, email, username, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
