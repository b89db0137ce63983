// Package config reads the optional YAML file holding the identifiable
// toggles and per-table public id declarations.
//
//	overwrite_to_key: true
//	overwrite_to_param: false
//	declarations:
//	  users:
//	    style: numeric
//	    length: 10
//	  todos:
//	    style: uuid
//
// A table missing from the file keeps its default declaration. A table that
// is present is taken as written, so `style: uuid` does not inherit a length.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/DillonStreator/identifiable/identifiable"
	"github.com/DillonStreator/identifiable/storage"
	"gopkg.in/yaml.v3"
)

type File struct {
	OverwriteToKey   *bool        `yaml:"overwrite_to_key"`
	OverwriteToParam *bool        `yaml:"overwrite_to_param"`
	Declarations     declarations `yaml:"declarations"`
}

type declarations struct {
	Users *identifiable.DeclarationConfig `yaml:"users"`
	Todos *identifiable.DeclarationConfig `yaml:"todos"`
}

func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a config file. Unknown keys are rejected.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return File{}, err
	}
	return f, nil
}

// Apply overlays the file onto cfg and decls.
func (f File) Apply(cfg *identifiable.Configuration, decls *storage.Declarations) {
	if f.OverwriteToKey != nil {
		cfg.OverwriteToKey = *f.OverwriteToKey
	}
	if f.OverwriteToParam != nil {
		cfg.OverwriteToParam = *f.OverwriteToParam
	}
	if f.Declarations.Users != nil {
		decls.Users = *f.Declarations.Users
	}
	if f.Declarations.Todos != nil {
		decls.Todos = *f.Declarations.Todos
	}
}
