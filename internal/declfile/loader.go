package declfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// Format is a declaration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported declaration file extension %q (expected .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Loader reads type declarations from YAML or TOML files. Attribute entries are
// decoded by the decoder registered for their kind.
type Loader struct {
	mu       sync.RWMutex
	kinds    *metadata.KindRegistry
	decoders map[string]DecodeFunc
	validate *validator.Validate
	logger   *zap.Logger
}

// NewLoader creates a loader that understands the built-in attribute kinds.
// A nil logger disables logging.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	l := &Loader{
		kinds:    metadata.BuiltinKinds(),
		decoders: make(map[string]DecodeFunc),
		validate: validate,
		logger:   logger,
	}
	l.decoders[metadata.TaskQueueKind.Name()] = Decoder[metadata.TaskQueue]()
	l.decoders[metadata.RetryPolicyKind.Name()] = Decoder[metadata.RetryPolicy]()
	return l
}

// Kinds returns the kind registry, including kinds added with RegisterDecoder.
func (l *Loader) Kinds() *metadata.KindRegistry {
	return l.kinds
}

// RegisterDecoder makes attribute entries of kind loadable. Replacing the
// decoder of an already known kind is allowed.
func (l *Loader) RegisterDecoder(kind *metadata.Kind, decode DecodeFunc) error {
	if decode == nil {
		return fmt.Errorf("nil decoder for kind %s", kind)
	}
	if err := l.kinds.Register(kind); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.decoders[kind.Name()] = decode
	return nil
}

// LoadFile reads the declarations in path.
func (l *Loader) LoadFile(path string) ([]metadata.TypeDecl, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file: %w", err)
	}

	decls, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.logger.Debug("loaded declaration file",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("types", len(decls)),
	)
	return decls, nil
}

// Parse decodes declarations from data.
func (l *Loader) Parse(data []byte, format Format) ([]metadata.TypeDecl, error) {
	var file File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if err := l.validate.Struct(&file); err != nil {
		return nil, validationError(err)
	}

	decls := make([]metadata.TypeDecl, 0, len(file.Types))
	for i, entry := range file.Types {
		decl, err := l.toDecl(entry)
		if err != nil {
			return nil, fmt.Errorf("types[%d] (%s): %w", i, entry.Name, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func (l *Loader) toDecl(entry TypeEntry) (metadata.TypeDecl, error) {
	decl := metadata.TypeDecl{
		Name:       entry.Name,
		Kind:       metadata.Class,
		Abstract:   entry.Abstract,
		Opaque:     entry.Opaque,
		Parent:     entry.Parent,
		Interfaces: entry.Interfaces,
	}
	if entry.Kind == "interface" {
		decl.Kind = metadata.Interface
	}

	for i, fields := range entry.Attributes {
		attr, err := l.decodeAttribute(fields)
		if err != nil {
			return metadata.TypeDecl{}, fmt.Errorf("attributes[%d]: %w", i, err)
		}
		decl.Attributes = append(decl.Attributes, attr)
	}
	return decl, nil
}

func (l *Loader) decodeAttribute(fields map[string]any) (metadata.Attribute, error) {
	kindName, ok := fields["kind"].(string)
	if !ok || kindName == "" {
		return nil, errors.New("attribute has no kind")
	}

	l.mu.RLock()
	decode, ok := l.decoders[kindName]
	l.mu.RUnlock()
	if !ok {
		return nil, &metadata.InvalidKindError{Kind: kindName, Reason: "no decoder registered"}
	}

	rest := make(map[string]any, len(fields)-1)
	for k, v := range fields {
		if k != "kind" {
			rest[k] = v
		}
	}

	attr, err := decode(rest)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kindName, err)
	}
	return attr, nil
}

// Load reads every file matched by patterns into a new registry and validates
// the references between types. Patterns are file paths, directories (all
// declaration files directly inside) or globs.
func (l *Loader) Load(patterns ...string) (*metadata.TypeRegistry, error) {
	paths, err := Expand(patterns...)
	if err != nil {
		return nil, err
	}

	registry := metadata.NewTypeRegistry()
	for _, path := range paths {
		decls, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(decls...); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := registry.Validate(); err != nil {
		return registry, fmt.Errorf("invalid declarations: %w", err)
	}
	return registry, nil
}

// Expand resolves patterns into a sorted, de-duplicated list of declaration
// files. A pattern that matches nothing is an error.
func Expand(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		info, err := os.Stat(pattern)
		if err == nil && info.IsDir() {
			entries, err := os.ReadDir(pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to read declaration directory: %w", err)
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if _, ferr := FormatFromPath(e.Name()); ferr == nil {
					add(filepath.Join(pattern, e.Name()))
				}
			}
			continue
		}
		if err == nil {
			add(pattern)
			continue
		}

		matches, gerr := filepath.Glob(pattern)
		if gerr != nil {
			return nil, fmt.Errorf("invalid declaration pattern %q: %w", pattern, gerr)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no declaration files match %q", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// validationError flattens validator errors into one readable error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "File.")
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Errorf("%s is required", field))
		case "oneof":
			problems = append(problems, fmt.Errorf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		case "unique":
			problems = append(problems, fmt.Errorf("%s lists the same name more than once", field))
		case "excluded_if":
			problems = append(problems, fmt.Errorf("%s is not allowed when %s", field, fe.Param()))
		default:
			problems = append(problems, fmt.Errorf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return errors.Join(problems...)
}
