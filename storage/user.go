package storage

import (
	"context"
	"time"

	"github.com/DillonStreator/identifiable/domain"
	"github.com/DillonStreator/identifiable/entityid"
	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/eleanorhealth/milo"
	"github.com/go-pg/pg/v10"
)

type user struct {
	ID         string    `pg:"id,pk"`
	PublicID   string    `pg:"public_id,unique"`
	Email      string    `pg:"email,unique,notnull"`
	Password   string    `pg:"password,notnull"`
	CreatedAt  time.Time `pg:"created_at,notnull"`
	LastSeenAt time.Time `pg:"last_seen_at"`

	assigner *identifiable.Assigner `pg:"-"`
}

var (
	_ milo.Model          = (*user)(nil)
	_ pg.BeforeInsertHook = (*user)(nil)
	_ identifiable.Record = (*user)(nil)
)

type todo struct {
	ID          string    `pg:"id,pk"`
	PublicID    string    `pg:"public_id,unique"`
	UserID      string    `pg:"user_id,notnull"`
	Title       string    `pg:"title"`
	Description string    `pg:"description"`
	Completed   bool      `pg:"completed,use_zero"`
	CreatedAt   time.Time `pg:"created_at,notnull"`
	UpdatedAt   time.Time `pg:"updated_at"`

	assigner *identifiable.Assigner `pg:"-"`
}

var (
	_ pg.BeforeInsertHook = (*todo)(nil)
	_ identifiable.Record = (*todo)(nil)
)

func (u *user) FromEntity(e interface{}) error {
	entity := e.(*domain.User)

	u.ID = entity.ID.String()
	u.PublicID = entity.PublicID
	u.Email = entity.Email
	u.Password = entity.Password

	u.CreatedAt = entity.CreatedAt
	u.LastSeenAt = entity.LastSeenAt

	return nil
}

func (u *user) ToEntity() (interface{}, error) {
	entity := &domain.User{}

	entity.ID = entityid.ID(u.ID)
	entity.PublicID = u.PublicID
	entity.Email = u.Email
	entity.Password = u.Password

	entity.CreatedAt = u.CreatedAt
	entity.LastSeenAt = u.LastSeenAt

	return entity, nil
}

// BeforeInsert assigns the public identifier.
func (u *user) BeforeInsert(ctx context.Context) (context.Context, error) {
	return ctx, ensure(ctx, u.assigner, u)
}

func (u *user) IdentifierField(column string) string {
	return stringField(u, column)
}

func (u *user) SetIdentifierField(column, value string) {
	setStringField(u, column, value)
}

func (t *todo) fromEntity(entity *domain.Todo) {
	t.ID = entity.ID.String()
	t.PublicID = entity.PublicID
	t.UserID = entity.UserID.String()
	t.Title = entity.Title
	t.Description = entity.Description
	t.Completed = entity.Completed
	t.CreatedAt = entity.CreatedAt
	t.UpdatedAt = entity.UpdatedAt
}

func (t *todo) toEntity() *domain.Todo {
	return &domain.Todo{
		ID:          entityid.ID(t.ID),
		PublicID:    t.PublicID,
		UserID:      entityid.ID(t.UserID),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (t *todo) BeforeInsert(ctx context.Context) (context.Context, error) {
	return ctx, ensure(ctx, t.assigner, t)
}

func (t *todo) IdentifierField(column string) string {
	return stringField(t, column)
}

func (t *todo) SetIdentifierField(column, value string) {
	setStringField(t, column, value)
}
