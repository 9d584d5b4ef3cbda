package commands

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/sugar/internal/cli/config"
	"github.com/conduit-lang/sugar/internal/declfile"
	"github.com/conduit-lang/sugar/internal/logging"
	"github.com/conduit-lang/sugar/runtime/metadata"
	"github.com/conduit-lang/sugar/runtime/options"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	config       string
	declarations []string
	format       string
	noColor      bool
	logLevel     string
}

// env carries configuration and lazily loaded declarations through a command
// invocation.
type env struct {
	flags  globalFlags
	cfg    *config.Config
	logger *zap.Logger
	loader *declfile.Loader

	types   *metadata.TypeRegistry
	invalid error
}

func newEnv() *env {
	return &env{logger: zap.NewNop()}
}

func (e *env) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&e.flags.config, "config", "", "Config file (default: sugar.yml in the project root)")
	flags.StringSliceVarP(&e.flags.declarations, "declarations", "d", nil, "Declaration files, directories or globs")
	flags.StringVar(&e.flags.format, "format", "table", "Output format: table or json")
	flags.BoolVar(&e.flags.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&e.flags.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

// setup loads the configuration and applies flag overrides. It runs before
// every command.
func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.flags.config)
	if err != nil {
		return &configError{err: err}
	}

	flags := cmd.Flags()
	if flags.Changed("declarations") {
		cfg.Declarations = e.flags.declarations
	}
	if flags.Changed("format") {
		cfg.Output.Format = e.flags.format
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = e.flags.noColor
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = e.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return &configError{err: err}
	}

	if cfg.Output.NoColor {
		color.NoColor = true
	}

	e.cfg = cfg
	e.logger = logging.NewOrNop(cfg.Log.Level, cfg.Log.Development)
	e.loader = declfile.NewLoader(e.logger)
	return nil
}

func (e *env) noColor() bool {
	return e.cfg == nil || e.cfg.Output.NoColor || color.NoColor
}

// registry loads the configured declaration files once. Reference problems do
// not prevent resolution, they are kept for the types command and logged.
func (e *env) registry() (*metadata.TypeRegistry, error) {
	if e.types != nil {
		return e.types, nil
	}
	if len(e.cfg.Declarations) == 0 {
		return nil, &configError{err: errors.New("no declaration files configured (use --declarations or the declarations key in sugar.yml)")}
	}

	types, err := e.loader.Load(e.cfg.Declarations...)
	if types == nil {
		return nil, &declarationError{problems: problemsOf(err)}
	}
	if err != nil {
		e.invalid = err
		e.logger.Warn("declarations have reference problems", zap.Error(err))
	}

	e.types = types
	return types, nil
}

// reader builds a reader over the loaded declarations with the configured cache.
func (e *env) reader() (*metadata.Reader, error) {
	types, err := e.registry()
	if err != nil {
		return nil, err
	}

	cache, err := e.cfg.Cache.NewCache()
	if err != nil {
		return nil, &configError{err: err}
	}
	return metadata.NewReader(metadata.NewExtractor(types, cache, e.logger)), nil
}

func (e *env) builder() (*options.Builder, error) {
	reader, err := e.reader()
	if err != nil {
		return nil, err
	}
	return options.NewBuilder(reader), nil
}

// completeTypes completes type names from the configured declarations.
func (e *env) completeTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if e.cfg == nil {
		if err := e.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	types, err := e.registry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, name := range types.Names() {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// typeArg returns the type named on the command line, prompting for one when
// none is given and the terminal is interactive.
func (e *env) typeArg(args []string) (string, error) {
	types, err := e.registry()
	if err != nil {
		return "", err
	}

	var name string
	switch {
	case len(args) > 0:
		name = args[0]
	case interactive():
		name, err = selectType("Select a type:", types.Names())
		if err != nil {
			return "", err
		}
	default:
		return "", errors.New("a type name is required")
	}

	if _, ok := types.Lookup(name); !ok {
		return "", &unknownTypeError{name: name, candidates: types.Names()}
	}
	return name, nil
}

// kinds resolves kind names through the loader's kind registry.
func (e *env) kinds(names []string) ([]*metadata.Kind, error) {
	known := e.loader.Kinds()
	kinds := make([]*metadata.Kind, 0, len(names))
	for _, name := range names {
		k, err := known.Lookup(name)
		if err != nil {
			return nil, &unknownKindError{name: name, candidates: known.Names()}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (e *env) sync() {
	_ = e.logger.Sync()
}

