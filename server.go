package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DillonStreator/identifiable/domain"
	"github.com/DillonStreator/identifiable/entityid"
	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/internal/observability"
	"github.com/DillonStreator/identifiable/jwt"
	"github.com/DillonStreator/identifiable/passwords"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-pg/pg/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type repository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	UserByID(ctx context.Context, id entityid.ID) (*domain.User, error)
	SaveUser(ctx context.Context, u *domain.User) error
	MustFindUserByPublicID(ctx context.Context, publicID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	UserKey(u *domain.User, cfg identifiable.Configuration) []string
	UserParam(u *domain.User, cfg identifiable.Configuration) string

	CreateTodo(ctx context.Context, t *domain.Todo) error
	TodosFor(ctx context.Context, userID entityid.ID) (domain.Todos, error)
	UpdateTodo(ctx context.Context, t *domain.Todo) error
	DeleteTodo(ctx context.Context, t *domain.Todo) error
	TodoParam(t *domain.Todo, cfg identifiable.Configuration) string
}

type rates struct {
	request      limiter.Rate
	userCreation limiter.Rate
	todoCreation limiter.Rate
}

func defaultRates() rates {
	return rates{
		request:      limiter.Rate{Period: 1 * time.Second, Limit: 1},
		userCreation: limiter.Rate{Period: 1 * time.Hour, Limit: 5},
		todoCreation: limiter.Rate{Period: 1 * time.Hour, Limit: 100},
	}
}

type server struct {
	repo   repository
	logger *slog.Logger
	rates  rates
}

func newServer(repo repository, logger *slog.Logger) *server {
	if logger == nil {
		logger = observability.NewLogger("todos")
	}
	return &server{
		repo:   repo,
		logger: logger,
		rates:  defaultRates(),
	}
}

type userContextKey string

var USER_CONTEXT_KEY = userContextKey("user")

func getUserFromRequest(r *http.Request) *domain.User {
	return r.Context().Value(USER_CONTEXT_KEY).(*domain.User)
}

func newInMemoryLimiterMiddleware(r limiter.Rate) *stdlib.Middleware {
	store := memory.NewStore()
	limiter := limiter.New(store, r)
	return stdlib.NewMiddleware(limiter)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

type todoInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *server) toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         s.repo.UserParam(u, *identifiable.Config()),
		Email:      u.Email,
		CreatedAt:  u.CreatedAt,
		LastSeenAt: u.LastSeenAt,
	}
}

func (s *server) toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          s.repo.TodoParam(t, *identifiable.Config()),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (s *server) writeJSON(rw http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("marshal response", "error", err)
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(bytes)
}

func (s *server) writeError(rw http.ResponseWriter, r *http.Request, err error) {
	var pgErr pg.Error
	switch {
	case errors.Is(err, identifiable.ErrNotFound):
		rw.WriteHeader(http.StatusNotFound)
	case errors.As(err, &pgErr) && pgErr.IntegrityViolation():
		rw.WriteHeader(http.StatusConflict)
	case errors.Is(err, identifiable.ErrRanOutOfAttemptsToSetPublicID):
		s.logger.Warn("public id space exhausted", "path", r.URL.Path, "error", err)
		rw.WriteHeader(http.StatusServiceUnavailable)
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		rw.WriteHeader(http.StatusInternalServerError)
	}
}

func decode(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// userByParam resolves a URL parameter the same way UserParam produced it.
func (s *server) userByParam(ctx context.Context, param string) (*domain.User, error) {
	if identifiable.Config().OverwriteToParam {
		return s.repo.MustFindUserByPublicID(ctx, param)
	}
	return s.userByPrimaryKey(ctx, param)
}

// userByKey resolves a session subject the same way UserKey produced it.
func (s *server) userByKey(ctx context.Context, key string) (*domain.User, error) {
	if identifiable.Config().OverwriteToKey {
		return s.repo.MustFindUserByPublicID(ctx, key)
	}
	return s.userByPrimaryKey(ctx, key)
}

func (s *server) userByPrimaryKey(ctx context.Context, value string) (*domain.User, error) {
	id, err := entityid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identifiable.ErrNotFound, err)
	}
	return s.repo.UserByID(ctx, id)
}

func (s *server) getMux() http.Handler {
	r := chi.NewRouter()

	requestLimiter := newInMemoryLimiterMiddleware(s.rates.request)
	r.Use(requestLimiter.Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/metrics", observability.MetricsHandler().ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
				rw.Header().Add("Content-Type", "application/json")
				next.ServeHTTP(rw, r)
			})
		})

		r.Get("/", func(rw http.ResponseWriter, r *http.Request) {
			http.Redirect(rw, r, "/status", http.StatusPermanentRedirect)
		})
		r.Get("/status", func(rw http.ResponseWriter, r *http.Request) {
			rw.WriteHeader(http.StatusOK)
			rw.Write([]byte("🌈"))
		})

		r.Route("/users", func(usersRouter chi.Router) {
			userCreationLimiter := newInMemoryLimiterMiddleware(s.rates.userCreation)
			usersRouter.With(userCreationLimiter.Handler).Post("/", func(rw http.ResponseWriter, r *http.Request) {
				var input credentials
				if err := decode(r, &input); err != nil || input.Email == "" || input.Password == "" {
					rw.WriteHeader(http.StatusBadRequest)
					rw.Write([]byte(`{"error":"email and password are required"}`))
					return
				}

				hashed, err := passwords.Hash([]byte(input.Password))
				if err != nil {
					s.writeError(rw, r, err)
					return
				}

				var user = &domain.User{
					ID:         entityid.Generator.Generate(),
					Email:      input.Email,
					Password:   string(hashed),
					CreatedAt:  time.Now(),
					LastSeenAt: time.Now(),
				}
				if err := s.repo.CreateUser(r.Context(), user); err != nil {
					s.writeError(rw, r, err)
					return
				}

				s.writeJSON(rw, http.StatusCreated, s.toUserResponse(user))
			})
			usersRouter.Get("/{userID}", func(rw http.ResponseWriter, r *http.Request) {
				user, err := s.userByParam(r.Context(), chi.URLParam(r, "userID"))
				if err != nil {
					s.writeError(rw, r, err)
					return
				}

				s.writeJSON(rw, http.StatusOK, s.toUserResponse(user))
			})
		})

		r.Post("/sessions", func(rw http.ResponseWriter, r *http.Request) {
			var input credentials
			if err := decode(r, &input); err != nil {
				rw.WriteHeader(http.StatusBadRequest)
				return
			}

			user, ok, err := s.repo.FindUserByEmail(r.Context(), input.Email)
			if err != nil {
				s.writeError(rw, r, err)
				return
			}
			if !ok || passwords.Compare([]byte(user.Password), []byte(input.Password)) != nil {
				rw.WriteHeader(http.StatusUnauthorized)
				return
			}

			token, err := jwt.SignJWT(jwt.Input{
				Key:   s.repo.UserKey(user, *identifiable.Config())[0],
				Email: user.Email,
			})
			if err != nil {
				s.writeError(rw, r, err)
				return
			}

			s.writeJSON(rw, http.StatusCreated, sessionResponse{Token: token})
		})

		r.Route("/todos", func(todosRouter chi.Router) {
			todosRouter.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
					token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
					if token == "" {
						rw.WriteHeader(http.StatusUnauthorized)
						return
					}
					claim, err := jwt.Verify(token)
					if err != nil {
						rw.WriteHeader(http.StatusUnauthorized)
						return
					}

					user, err := s.userByKey(r.Context(), claim.Subject)
					if errors.Is(err, identifiable.ErrNotFound) {
						rw.WriteHeader(http.StatusUnauthorized)
						return
					}
					if err != nil {
						s.writeError(rw, r, err)
						return
					}

					user.LastSeenAt = time.Now()
					if err := s.repo.SaveUser(r.Context(), user); err != nil {
						s.writeError(rw, r, err)
						return
					}

					ctx := context.WithValue(r.Context(), USER_CONTEXT_KEY, user)
					next.ServeHTTP(rw, r.WithContext(ctx))
				})
			})

			todosRouter.Get("/", func(rw http.ResponseWriter, r *http.Request) {
				user := getUserFromRequest(r)
				todos, err := s.repo.TodosFor(r.Context(), user.ID)
				if err != nil {
					s.writeError(rw, r, err)
					return
				}

				response := make([]todoResponse, 0, len(todos))
				for _, todo := range todos {
					response = append(response, s.toTodoResponse(todo))
				}
				s.writeJSON(rw, http.StatusOK, response)
			})

			todoCreationLimiter := newInMemoryLimiterMiddleware(s.rates.todoCreation)
			todosRouter.With(todoCreationLimiter.Handler).Post("/", func(rw http.ResponseWriter, r *http.Request) {
				user := getUserFromRequest(r)

				var input todoInput
				if err := decode(r, &input); err != nil {
					rw.WriteHeader(http.StatusBadRequest)
					rw.Write([]byte(err.Error()))
					return
				}

				var todo = &domain.Todo{
					ID:          entityid.Generator.Generate(),
					UserID:      user.ID,
					Title:       input.Title,
					Description: input.Description,
					Completed:   input.Completed,
					CreatedAt:   time.Now(),
					UpdatedAt:   time.Now(),
				}
				if err := s.repo.CreateTodo(r.Context(), todo); err != nil {
					s.writeError(rw, r, err)
					return
				}

				s.writeJSON(rw, http.StatusCreated, s.toTodoResponse(todo))
			})
			todosRouter.Put("/{todoID}", func(rw http.ResponseWriter, r *http.Request) {
				todo, ok := s.findTodo(rw, r)
				if !ok {
					return
				}

				var input = todoInput{
					Title:       todo.Title,
					Description: todo.Description,
					Completed:   todo.Completed,
				}
				if err := decode(r, &input); err != nil {
					rw.WriteHeader(http.StatusBadRequest)
					rw.Write([]byte(err.Error()))
					return
				}

				todo.Title = input.Title
				todo.Description = input.Description
				todo.Completed = input.Completed
				todo.UpdatedAt = time.Now()
				if err := s.repo.UpdateTodo(r.Context(), todo); err != nil {
					s.writeError(rw, r, err)
					return
				}

				s.writeJSON(rw, http.StatusOK, s.toTodoResponse(todo))
			})
			todosRouter.Delete("/{todoID}", func(rw http.ResponseWriter, r *http.Request) {
				todo, ok := s.findTodo(rw, r)
				if !ok {
					return
				}

				if err := s.repo.DeleteTodo(r.Context(), todo); err != nil {
					s.writeError(rw, r, err)
					return
				}

				rw.WriteHeader(http.StatusNoContent)
			})
		})
	})

	return r
}

// findTodo looks up the {todoID} parameter among the requesting user's todos
// and writes the error response when it cannot.
func (s *server) findTodo(rw http.ResponseWriter, r *http.Request) (*domain.Todo, bool) {
	user := getUserFromRequest(r)
	todos, err := s.repo.TodosFor(r.Context(), user.ID)
	if err != nil {
		s.writeError(rw, r, err)
		return nil, false
	}

	cfg := *identifiable.Config()
	todo := todos.FindByParam(chi.URLParam(r, "todoID"), func(t *domain.Todo) string {
		return s.repo.TodoParam(t, cfg)
	})
	if todo == nil {
		rw.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return todo, true
}

func startServer(port string, s *server) error {
	s.logger.Info("listening", "port", port)
	return http.ListenAndServe(fmt.Sprintf(":%s", port), s.getMux())
}
