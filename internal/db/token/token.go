package token

import (
	"context"
	"errors"
	"time"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
	"userable/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const CODE_CONSTRAINT_NAME = "token_pkey"

type PgxTokenRepository struct {
	db db.Querier
}

func NewPgxRepository(db db.Querier) *PgxTokenRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxTokenRepository{db: db}
}

func (r *PgxTokenRepository) Create(ctx context.Context, input token.CreateTokenInput) (t token.Token, err error) {
	_, err = r.db.Exec(
		ctx,
		`INSERT INTO token (code, owner_id, purpose, created_by, issued_at, valid_until)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(input.Code),
		int64(input.OwnerID),
		string(input.Purpose),
		input.CreatedBy,
		input.IssuedAt,
		input.ValidUntil,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == CODE_CONSTRAINT_NAME {
			return t, token.ErrCodeAlreadyExists
		}
	}
	if err != nil {
		return t, err
	}
	return token.Token{
		Code:       input.Code,
		OwnerID:    input.OwnerID,
		Purpose:    input.Purpose,
		CreatedBy:  input.CreatedBy,
		IssuedAt:   input.IssuedAt,
		ValidUntil: input.ValidUntil,
	}, nil
}

func (r *PgxTokenRepository) GetByCode(ctx context.Context, code token.Code) (t token.Token, err error) {
	var (
		ownerID    int64
		purpose    string
		createdBy  string
		issuedAt   time.Time
		validUntil time.Time
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT owner_id, purpose, created_by, issued_at, valid_until FROM token WHERE code = $1`,
		string(code),
	).Scan(&ownerID, &purpose, &createdBy, &issuedAt, &validUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, token.ErrTokenDoesNotExist
	}
	if err != nil {
		return t, err
	}
	return token.Token{
		Code:       code,
		OwnerID:    user.ID(ownerID),
		Purpose:    token.Purpose(purpose),
		CreatedBy:  createdBy,
		IssuedAt:   issuedAt,
		ValidUntil: validUntil,
	}, nil
}

// DeleteByCode reports whether this call removed the row, so concurrent
// redemptions of the same code see exactly one true.
func (r *PgxTokenRepository) DeleteByCode(ctx context.Context, code token.Code) (deleted bool, err error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM token WHERE code = $1`, string(code))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxTokenRepository) DeleteByOwner(ctx context.Context, ownerID user.ID, purpose token.Purpose) error {
	_, err := r.db.Exec(
		ctx,
		`DELETE FROM token WHERE owner_id = $1 AND purpose = $2`,
		int64(ownerID),
		string(purpose),
	)
	return err
}
