package identifiable

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"

	"github.com/DillonStreator/identifiable/stylist"
)

const (
	DefaultColumn = "public_id"
	DefaultStyle  = stylist.Numeric
	DefaultLength = 8

	MinLength = 4
	MaxLength = 128

	// MaxAttempts is the retry budget for finding an unused identifier.
	MaxAttempts = 100
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Schema describes the persisted shape of a record type.
type Schema struct {
	Table      string
	PrimaryKey string
	Columns    []string
}

func (s Schema) primaryKey() string {
	if s.PrimaryKey == "" {
		return "id"
	}
	return s.PrimaryKey
}

// Declaration is the validated, immutable configuration of a record type.
type Declaration struct {
	column string
	style  stylist.Style
	length int
}

func (d Declaration) Column() string { return d.column }

func (d Declaration) Style() stylist.Style { return d.style }

// Length is zero for the uuid style.
func (d Declaration) Length() int { return d.length }

// DeclarationConfig is a declaration as decoded from a config file, before any
// of its values are known to have the right type. Nil fields take defaults.
type DeclarationConfig struct {
	Column any `yaml:"column"`
	Style  any `yaml:"style"`
	Length any `yaml:"length"`
}

type settings struct {
	column      any
	style       any
	length      any
	lengthSet   bool
	logger      *slog.Logger
	observer    Observer
	maxAttempts int
}

type Option func(*settings)

func WithColumn(column string) Option {
	return func(s *settings) { s.column = column }
}

func WithStyle(style stylist.Style) Option {
	return func(s *settings) { s.style = style }
}

func WithLength(length int) Option {
	return func(s *settings) {
		s.length = length
		s.lengthSet = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

func WithObserver(observer Observer) Option {
	return func(s *settings) { s.observer = observer }
}

// WithMaxAttempts overrides the retry budget. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// Type is a registered record type. It is immutable and safe for concurrent use.
type Type struct {
	schema      Schema
	decl        Declaration
	generator   generator
	maxAttempts int
	logger      *slog.Logger
	observer    Observer
}

type generator interface {
	RandomID() (string, error)
}

// Register validates the declaration for schema and returns the registered
// type. Validation happens once, here, never per generated identifier.
func Register(schema Schema, opts ...Option) (*Type, error) {
	s := &settings{
		column:      DefaultColumn,
		style:       DefaultStyle,
		maxAttempts: MaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return register(schema, s)
}

// RegisterConfig registers schema from a decoded config declaration.
func RegisterConfig(schema Schema, cfg DeclarationConfig, opts ...Option) (*Type, error) {
	s := &settings{
		column:      DefaultColumn,
		style:       DefaultStyle,
		maxAttempts: MaxAttempts,
	}
	if cfg.Column != nil {
		s.column = cfg.Column
	}
	if cfg.Style != nil {
		s.style = cfg.Style
	}
	if cfg.Length != nil {
		s.length = cfg.Length
		s.lengthSet = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return register(schema, s)
}

// MustRegister is like Register but panics on an invalid declaration.
func MustRegister(schema Schema, opts ...Option) *Type {
	t, err := Register(schema, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func register(schema Schema, s *settings) (*Type, error) {
	decl, err := validate(schema, s)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", schema.Table, err)
	}

	gen, err := stylist.New(decl.style, decl.length)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", schema.Table, err)
	}

	logger := s.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	observer := s.observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Type{
		schema:      schema,
		decl:        decl,
		generator:   gen,
		maxAttempts: s.maxAttempts,
		logger:      logger.With("table", schema.Table, "column", decl.column),
		observer:    observer,
	}, nil
}

func validate(schema Schema, s *settings) (Declaration, error) {
	column, ok := s.column.(string)
	if !ok || !symbolPattern.MatchString(column) {
		return Declaration{}, &ColumnError{Value: s.column}
	}

	if column == schema.primaryKey() {
		return Declaration{}, ErrColumnCannotBeID
	}

	if !slices.Contains(schema.Columns, column) {
		return Declaration{}, &ColumnNotInTableError{Column: column, ValidColumns: schema.Columns}
	}

	style, ok := toStyle(s.style)
	if !ok {
		return Declaration{}, &StyleError{Style: s.style, ValidStyles: stylist.Styles()}
	}

	decl := Declaration{column: column, style: style}
	if style == stylist.UUID && !s.lengthSet {
		return decl, nil
	}

	raw := s.length
	if !s.lengthSet {
		raw = DefaultLength
	}
	length, ok := toInt(raw)
	if !ok {
		return Declaration{}, ErrLengthMustBeAnInteger
	}
	if length < MinLength {
		return Declaration{}, ErrLengthIsTooShort
	}
	if length > MaxLength {
		return Declaration{}, ErrLengthIsTooLong
	}

	if style == stylist.UUID {
		return Declaration{}, ErrLengthMustBeNilIfStyleIsUUID
	}

	decl.length = length
	return decl, nil
}

func toStyle(v any) (stylist.Style, bool) {
	var style stylist.Style
	switch s := v.(type) {
	case stylist.Style:
		style = s
	case string:
		style = stylist.Style(s)
	default:
		return "", false
	}
	return style, style.Valid()
}

// toInt accepts Go integer kinds only; strings and floats are not lengths.
func toInt(v any) (int, bool) {
	const limit = MaxLength + 1
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return clamp(n, limit), true
	case uint:
		return int(min(n, limit)), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(min(n, limit)), true
	case uint64:
		return int(min(n, limit)), true
	}
	return 0, false
}

func clamp(n int64, limit int64) int {
	if n > limit {
		return int(limit)
	}
	if n < -limit {
		return int(-limit)
	}
	return int(n)
}

func (t *Type) Schema() Schema { return t.schema }

func (t *Type) Declaration() Declaration { return t.decl }

// RandomID returns one candidate without checking it against storage.
func (t *Type) RandomID() (string, error) {
	return t.generator.RandomID()
}
