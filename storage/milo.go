package storage

import (
	"reflect"

	"github.com/DillonStreator/identifiable/domain"
	"github.com/eleanorhealth/milo"
)

// MiloEntityModelMap is used by Milo to map domain entities to storage models.
// Milo only loads users by primary key and saves changes to existing users;
// inserts go through the Repository so the public id hook has an assigner.
var MiloEntityModelMap = milo.EntityModelMap{
	reflect.TypeOf(&domain.User{}): milo.ModelConfig{
		Model: reflect.TypeOf(&user{}),
		FieldColumnMap: milo.FieldColumnMap{
			"Email":    "email",
			"PublicID": "public_id",
		},
	},
}
