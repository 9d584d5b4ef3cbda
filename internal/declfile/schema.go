package declfile

// File is the on-disk layout of a declaration file.
type File struct {
	Types []TypeEntry `yaml:"types" toml:"types" validate:"dive"`
}

// TypeEntry declares one class or interface.
type TypeEntry struct {
	Name       string           `yaml:"name" toml:"name" validate:"required"`
	Kind       string           `yaml:"kind" toml:"kind" validate:"required,oneof=class interface"`
	Abstract   bool             `yaml:"abstract" toml:"abstract"`
	Opaque     bool             `yaml:"opaque" toml:"opaque"`
	Parent     string           `yaml:"parent" toml:"parent" validate:"excluded_if=Kind interface"`
	Interfaces []string         `yaml:"interfaces" toml:"interfaces" validate:"unique,dive,required"`
	Attributes []map[string]any `yaml:"attributes" toml:"attributes" validate:"dive,required"`
}
