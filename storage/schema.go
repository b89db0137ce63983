package storage

import (
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	usersTable = "users"
	todosTable = "todos"
)

// CreateSchema creates the users and todos tables if they do not exist. The
// public_id columns are UNIQUE: the assigner's existence check is not atomic
// with the insert, so the constraint is what finally rejects a duplicate.
func CreateSchema(db *pg.DB) error {
	models := []interface{}{
		(*user)(nil),
		(*todo)(nil),
	}

	for _, model := range models {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{
			IfNotExists: true,
		})
		if err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
