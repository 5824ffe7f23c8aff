package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/user"
	"userable/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, email, password_hash, salt, created_at, activated_at, last_login_at`

type PgxUserRepository struct {
	db db.Querier
}

func NewPgxRepository(db db.Querier) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, password_hash, salt, created_at, activated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		string(input.Email),
		encodePasswordHash(input.Credential.PasswordHash),
		string(input.Credential.Salt),
		input.CreatedAt,
		encodeOptionalTime(input.ActivatedAt),
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE id = $1`,
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Activate(ctx context.Context, id user.ID, at time.Time) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET activated_at = $2
		 WHERE id = $1 AND activated_at IS NULL
		 RETURNING `+userColumns,
		int64(id),
		at,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the user does not exist or it is already active.
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return u, getErr
		}
		if existing.IsActive() {
			return u, user.ErrUserAlreadyActive
		}
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetCredential(ctx context.Context, id user.ID, credential user.Credential) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2, salt = $3 WHERE id = $1`,
		int64(id),
		encodePasswordHash(credential.PasswordHash),
		string(credential.Salt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLoginAt(ctx context.Context, id user.ID, at time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET last_login_at = $2 WHERE id = $1`,
		int64(id),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	if !input.DoEmailUpdate {
		return r.GetByID(ctx, input.ID)
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET email = $2 WHERE id = $1 RETURNING `+userColumns,
		int64(input.ID),
		string(input.Email),
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func encodePasswordHash(ph c.Optional[user.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		passwordHash sql.NullString
		salt         string
		createdAt    time.Time
		activatedAt  sql.NullTime
		lastLoginAt  sql.NullTime
	)
	err = row.Scan(&id, &email, &passwordHash, &salt, &createdAt, &activatedAt, &lastLoginAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:    user.ID(id),
		Email: c.Email(email),
		Credential: user.Credential{
			PasswordHash: c.NewOptional(user.PasswordHash(passwordHash.String), passwordHash.Valid),
			Salt:         user.Salt(salt),
		},
		CreatedAt:   createdAt,
		ActivatedAt: c.NewOptional(activatedAt.Time, activatedAt.Valid),
		LastLoginAt: c.NewOptional(lastLoginAt.Time, lastLoginAt.Valid),
	}, nil
}
