package domain

import (
	"time"

	"github.com/DillonStreator/identifiable/entityid"
)

// User is keyed by ID internally and exposed by PublicID.
type User struct {
	ID         entityid.ID
	PublicID   string
	Email      string
	Password   string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

type Todos []*Todo

// FindByParam returns the todo whose URL parameter, as computed by paramOf,
// equals param, or nil.
func (todos Todos) FindByParam(param string, paramOf func(*Todo) string) *Todo {
	if index := todos.FindIndexByParam(param, paramOf); index != -1 {
		return todos[index]
	}
	return nil
}

func (todos Todos) FindIndexByParam(param string, paramOf func(*Todo) string) int {
	for i, todo := range todos {
		if paramOf(todo) == param {
			return i
		}
	}
	return -1
}

type Todo struct {
	ID          entityid.ID
	PublicID    string
	UserID      entityid.ID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
