package storage

import (
	"context"
	"fmt"
	"reflect"

	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// ensure runs the assigner for rec. Models built by the entity store carry no
// assigner: it only saves rows the repository created, which already have one.
func ensure(ctx context.Context, assigner *identifiable.Assigner, rec identifiable.Record) error {
	if assigner == nil {
		return nil
	}
	return assigner.Ensure(ctx, rec)
}

// schemaOf describes model's table using go-pg's own struct metadata.
func schemaOf(table string, model interface{}) identifiable.Schema {
	t := orm.GetTable(reflect.TypeOf(model).Elem())

	schema := identifiable.Schema{Table: table}
	for _, f := range t.Fields {
		schema.Columns = append(schema.Columns, f.SQLName)
	}
	if len(t.PKs) > 0 {
		schema.PrimaryKey = t.PKs[0].SQLName
	}
	return schema
}

// requireStringColumn rejects declared columns that cannot hold an identifier.
func requireStringColumn(model interface{}, column string) error {
	t := orm.GetTable(reflect.TypeOf(model).Elem())
	f, ok := t.FieldsMap[column]
	if !ok {
		return fmt.Errorf("storage: no column %q", column)
	}
	if f.Type.Kind() != reflect.String {
		return fmt.Errorf("storage: column %q is %s, not a string", column, f.Type)
	}
	return nil
}

func stringField(model interface{}, column string) string {
	v := reflect.ValueOf(model).Elem()
	f, ok := orm.GetTable(v.Type()).FieldsMap[column]
	if !ok || f.Type.Kind() != reflect.String {
		return ""
	}
	return f.Value(v).String()
}

func setStringField(model interface{}, column, value string) {
	v := reflect.ValueOf(model).Elem()
	f, ok := orm.GetTable(v.Type()).FieldsMap[column]
	if !ok || f.Type.Kind() != reflect.String {
		return
	}
	f.Value(v).SetString(value)
}

// existence answers the assigner's uniqueness query against model's table.
type existence struct {
	db    orm.DB
	model interface{}
}

func (e existence) Exists(ctx context.Context, column, value string) (bool, error) {
	return e.db.ModelContext(ctx, e.model).
		Where("? = ?", pg.Ident(column), value).
		Exists()
}
