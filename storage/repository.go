package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/DillonStreator/identifiable/domain"
	"github.com/DillonStreator/identifiable/entityid"
	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/stylist"
	"github.com/eleanorhealth/milo"
	"github.com/go-pg/pg/v10"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = identifiable.ErrNotFound

// Declarations holds the public id declaration of each table.
type Declarations struct {
	Users identifiable.DeclarationConfig `yaml:"users"`
	Todos identifiable.DeclarationConfig `yaml:"todos"`
}

func DefaultDeclarations() Declarations {
	return Declarations{
		Users: identifiable.DeclarationConfig{
			Column: identifiable.DefaultColumn,
			Style:  string(stylist.Numeric),
			Length: 8,
		},
		Todos: identifiable.DeclarationConfig{
			Column: identifiable.DefaultColumn,
			Style:  string(stylist.Alphanumeric),
			Length: 12,
		},
	}
}

type Repository struct {
	db    *pg.DB
	store *milo.Store
	users *identifiable.Assigner
	todos *identifiable.Assigner
}

// New registers the users and todos tables with their declarations. An
// invalid declaration fails here, before anything is inserted.
func New(db *pg.DB, decls Declarations, opts ...identifiable.Option) (*Repository, error) {
	users, err := register(db, usersTable, (*user)(nil), decls.Users, opts)
	if err != nil {
		return nil, err
	}
	todos, err := register(db, todosTable, (*todo)(nil), decls.Todos, opts)
	if err != nil {
		return nil, err
	}

	return &Repository{
		db:    db,
		store: milo.NewStore(db, MiloEntityModelMap),
		users: users,
		todos: todos,
	}, nil
}

// ValidateDeclarations checks decls against the table schemas without
// touching the database.
func ValidateDeclarations(decls Declarations) error {
	if _, err := registerType(usersTable, (*user)(nil), decls.Users, nil); err != nil {
		return err
	}
	_, err := registerType(todosTable, (*todo)(nil), decls.Todos, nil)
	return err
}

func register(db *pg.DB, table string, model interface{}, decl identifiable.DeclarationConfig, opts []identifiable.Option) (*identifiable.Assigner, error) {
	typ, err := registerType(table, model, decl, opts)
	if err != nil {
		return nil, err
	}
	return typ.Bind(existence{db: db, model: model}), nil
}

func registerType(table string, model interface{}, decl identifiable.DeclarationConfig, opts []identifiable.Option) (*identifiable.Type, error) {
	typ, err := identifiable.RegisterConfig(schemaOf(table, model), decl, opts...)
	if err != nil {
		return nil, err
	}
	if err := requireStringColumn(model, typ.Declaration().Column()); err != nil {
		return nil, err
	}
	return typ, nil
}

func (r *Repository) Users() *identifiable.Type { return r.users.Type() }

func (r *Repository) Todos() *identifiable.Type { return r.todos.Type() }

// CreateUser inserts u and fills in its generated public id.
func (r *Repository) CreateUser(ctx context.Context, u *domain.User) error {
	m := &user{assigner: r.users}
	if err := m.FromEntity(u); err != nil {
		return err
	}

	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	e, err := m.ToEntity()
	if err != nil {
		return err
	}
	*u = *e.(*domain.User)
	return nil
}

// UserByID loads a user by primary key.
func (r *Repository) UserByID(ctx context.Context, id entityid.ID) (*domain.User, error) {
	u := &domain.User{}
	err := r.store.FindByID(u, id.String())
	if errors.Is(err, pg.ErrNoRows) || (err == nil && u.ID == "") {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SaveUser persists changes to an existing user.
func (r *Repository) SaveUser(ctx context.Context, u *domain.User) error {
	return r.store.Save(ctx, u)
}

// FindUserByPublicID reports false when no user has publicID.
func (r *Repository) FindUserByPublicID(ctx context.Context, publicID string) (*domain.User, bool, error) {
	return identifiable.Find[*domain.User](ctx, r.Users(), userSource{db: r.db}, publicID)
}

// MustFindUserByPublicID returns ErrNotFound when no user has publicID.
func (r *Repository) MustFindUserByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	return identifiable.MustFind[*domain.User](ctx, r.Users(), userSource{db: r.db}, publicID)
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	return userSource{db: r.db}.FindBy(ctx, "email", email)
}

func (r *Repository) UserKey(u *domain.User, cfg identifiable.Configuration) []string {
	m := &user{}
	_ = m.FromEntity(u)
	return r.Users().Key(m, u.ID.String(), cfg)
}

func (r *Repository) UserParam(u *domain.User, cfg identifiable.Configuration) string {
	m := &user{}
	_ = m.FromEntity(u)
	return r.Users().Param(m, u.ID.String(), cfg)
}

// CreateTodo inserts t and fills in its generated public id.
func (r *Repository) CreateTodo(ctx context.Context, t *domain.Todo) error {
	m := &todo{assigner: r.todos}
	m.fromEntity(t)

	if _, err := r.db.ModelContext(ctx, m).Insert(); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}

	*t = *m.toEntity()
	return nil
}

func (r *Repository) TodosFor(ctx context.Context, userID entityid.ID) (domain.Todos, error) {
	var models []*todo
	err := r.db.ModelContext(ctx, &models).
		Where("user_id = ?", userID.String()).
		Order("created_at ASC").
		Select()
	if err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}

	todos := make(domain.Todos, 0, len(models))
	for _, m := range models {
		todos = append(todos, m.toEntity())
	}
	return todos, nil
}

func (r *Repository) FindTodoByPublicID(ctx context.Context, publicID string) (*domain.Todo, bool, error) {
	return identifiable.Find[*domain.Todo](ctx, r.Todos(), todoSource{db: r.db}, publicID)
}

func (r *Repository) UpdateTodo(ctx context.Context, t *domain.Todo) error {
	m := &todo{}
	m.fromEntity(t)
	res, err := r.db.ModelContext(ctx, m).WherePK().Update()
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: todo %s", ErrNotFound, t.ID)
	}
	return nil
}

func (r *Repository) DeleteTodo(ctx context.Context, t *domain.Todo) error {
	m := &todo{ID: t.ID.String()}
	res, err := r.db.ModelContext(ctx, m).WherePK().Delete()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: todo %s", ErrNotFound, t.ID)
	}
	return nil
}

func (r *Repository) TodoParam(t *domain.Todo, cfg identifiable.Configuration) string {
	m := &todo{}
	m.fromEntity(t)
	return r.Todos().Param(m, t.ID.String(), cfg)
}

type userSource struct {
	db *pg.DB
}

func (s userSource) FindBy(ctx context.Context, column, value string) (*domain.User, bool, error) {
	m := &user{}
	err := s.db.ModelContext(ctx, m).
		Where("? = ?", pg.Ident(column), value).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select user by %s: %w", column, err)
	}

	e, err := m.ToEntity()
	if err != nil {
		return nil, false, err
	}
	return e.(*domain.User), true, nil
}

type todoSource struct {
	db *pg.DB
}

func (s todoSource) FindBy(ctx context.Context, column, value string) (*domain.Todo, bool, error) {
	m := &todo{}
	err := s.db.ModelContext(ctx, m).
		Where("? = ?", pg.Ident(column), value).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select todo by %s: %w", column, err)
	}
	return m.toEntity(), true, nil
}
