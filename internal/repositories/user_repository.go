package repositories

import (
	"context"
	"errors"
	"fmt"

	"blog-backend/internal/db"
	"blog-backend/internal/models"
	"blog-backend/internal/query"

	"github.com/jackc/pgx/v5"
)

const userColumnsSQL = `id, name, email, password_hash, bio, profile_pic, created_at`

type userRepository struct {
	db db.DBTX
}

func NewUserRepository(conn db.DBTX) UserRepository {
	return &userRepository{db: conn}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Bio, &u.ProfilePic, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	stmt := `INSERT INTO users (id, name, email, password_hash, bio, profile_pic, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, stmt, user.ID, user.Name, user.Email, user.PasswordHash, user.Bio, user.ProfilePic, user.CreatedAt)
	if pgCode(err) == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumnsSQL+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumnsSQL+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumnsSQL+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, name, bio, profilePic *string) (*models.User, error) {
	stmt := `UPDATE users SET
			name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			profile_pic = COALESCE($4, profile_pic)
		WHERE id = $1
		RETURNING ` + userColumnsSQL
	return scanUser(r.db.QueryRow(ctx, stmt, id, name, bio, profilePic))
}

func (r *userRepository) Search(ctx context.Context, q query.UserQuery) ([]models.UserSummary, error) {
	sql, args, err := RenderUserQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(userScanDest(&u, q.Select)...); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
