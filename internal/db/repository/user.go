package repository

import (
	"context"
	"database/sql"
	"time"

	"pingsocial/internal/domain"
)

const userColumns = `id, email, display_name, active, latitude, longitude, created_at, last_login_at`

// UserRepo implements domain.UserRepository using SQLite.
type UserRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, now: time.Now}
}

func (r *UserRepo) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	u := &domain.User{
		ID:          domain.NewID(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Active:      req.Active,
		CreatedAt:   r.now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, boolToInt(u.Active), formatTime(u.CreatedAt))
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapDBError(err)
	}
	return u, nil
}

func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// ListActive returns every activated user ordered by registration time.
func (r *UserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE active = 1 ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateLocation(ctx context.Context, id string, loc domain.UpdateLocationRequest) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET latitude = ?, longitude = ? WHERE id = ?`, loc.Latitude, loc.Longitude, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

// SetActive toggles the activation flag. Activation itself is owned by the
// identity provider; this exists for bootstrap tooling.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return mapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*domain.User, error) {
	var (
		u         domain.User
		active    int64
		lat, lon  sql.NullFloat64
		createdAt string
		lastLogin sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Email, &u.DisplayName, &active, &lat, &lon, &createdAt, &lastLogin); err != nil {
		return nil, err
	}
	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.LastLoginAt, err = parseNullTime(lastLogin); err != nil {
		return nil, err
	}
	u.Active = active == 1
	u.Latitude = floatPtr(lat)
	u.Longitude = floatPtr(lon)
	return &u, nil
}
