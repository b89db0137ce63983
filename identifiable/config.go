package identifiable

// Configuration controls whether public identifiers replace primary keys when
// a record is turned into a key or a URL parameter.
type Configuration struct {
	OverwriteToKey   bool `yaml:"overwrite_to_key"`
	OverwriteToParam bool `yaml:"overwrite_to_param"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		OverwriteToKey:   true,
		OverwriteToParam: true,
	}
}

// configuration is process-wide and unlocked: it is meant to be set once at
// startup. Code needing a different value per call passes a Configuration.
var configuration = DefaultConfiguration()

// Config returns the process-wide configuration. Every call returns the same
// pointer.
func Config() *Configuration {
	return &configuration
}

func Configure(fn func(*Configuration)) {
	fn(&configuration)
}

// ResetConfiguration restores the defaults.
func ResetConfiguration() {
	configuration = DefaultConfiguration()
}

// Key returns the values identifying rec: its public identifier when
// cfg.OverwriteToKey is set, otherwise primaryKey.
func (t *Type) Key(rec Record, primaryKey string, cfg Configuration) []string {
	if cfg.OverwriteToKey {
		return []string{rec.IdentifierField(t.decl.column)}
	}
	return []string{primaryKey}
}

// Param returns rec's URL parameter: its public identifier when
// cfg.OverwriteToParam is set, otherwise primaryKey.
func (t *Type) Param(rec Record, primaryKey string, cfg Configuration) string {
	if cfg.OverwriteToParam {
		return rec.IdentifierField(t.decl.column)
	}
	return primaryKey
}
