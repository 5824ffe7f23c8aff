package group

import (
	"context"
	"database/sql"
	"errors"
	"time"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/group"
	"userable/internal/core/domain/user"
	"userable/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const NAME_CONSTRAINT_NAME = "group_name_idx"

type PgxGroupRepository struct {
	db db.Querier
}

func NewPgxRepository(db db.Querier) *PgxGroupRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxGroupRepository{db: db}
}

func (r *PgxGroupRepository) Create(ctx context.Context, input group.CreateGroupInput) (g group.Group, err error) {
	var id int64
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO "group" (name, description, created_at) VALUES ($1, $2, $3) RETURNING id`,
		string(input.Name),
		encodeDescription(input.Description),
		input.CreatedAt,
	).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == NAME_CONSTRAINT_NAME {
			return g, group.ErrGroupNameAlreadyExists
		}
	}
	if err != nil {
		return g, err
	}
	return group.Group{
		ID:          group.ID(id),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   input.CreatedAt,
	}, nil
}

func (r *PgxGroupRepository) GetByName(ctx context.Context, name group.Name) (g group.Group, err error) {
	var (
		id          int64
		description sql.NullString
		createdAt   time.Time
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT id, description, created_at FROM "group" WHERE name = $1`,
		string(name),
	).Scan(&id, &description, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return g, group.ErrGroupDoesNotExist
	}
	if err != nil {
		return g, err
	}
	return group.Group{
		ID:          group.ID(id),
		Name:        name,
		Description: c.NewOptional(description.String, description.Valid),
		CreatedAt:   createdAt,
	}, nil
}

func (r *PgxGroupRepository) AddUser(ctx context.Context, groupID group.ID, userID user.ID) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO user_group (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		int64(groupID),
		int64(userID),
	)
	return err
}

func (r *PgxGroupRepository) ListUserGroups(ctx context.Context, userID user.ID) ([]group.Group, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT g.id, g.name, g.description, g.created_at
		 FROM "group" AS g JOIN user_group AS ug ON ug.group_id = g.id
		 WHERE ug.user_id = $1
		 ORDER BY g.id`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]group.Group, 0)
	for rows.Next() {
		var (
			id          int64
			name        string
			description sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &name, &description, &createdAt); err != nil {
			return nil, err
		}
		groups = append(groups, group.Group{
			ID:          group.ID(id),
			Name:        group.Name(name),
			Description: c.NewOptional(description.String, description.Valid),
			CreatedAt:   createdAt,
		})
	}
	return groups, rows.Err()
}

func encodeDescription(d c.Optional[string]) sql.NullString {
	return sql.NullString{String: d.Value, Valid: d.IsPresent}
}
