package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/sugar/internal/cli/ui"
	"github.com/conduit-lang/sugar/runtime/metadata"
)

type resolveFlags struct {
	kinds         []string
	noMerge       bool
	noInheritance bool
	noInterfaces  bool
}

func newResolveCommand(e *env) *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [type]",
		Short: "Show the attributes that apply to a type",
		Long: `Resolve the attributes that apply to a type, including those inherited
from its superclasses and the interfaces it implements.

Own declarations come first, then the superclass chain, then interfaces from the
most derived to the most basic. By default every level contributes (merge);
with --no-merge the nearest level that declares a kind wins.`,
		Example: `  # Everything usable by workflow option builders
  sugar resolve app.OrderWorkflow

  # Only retry policies, nearest declaration wins
  sugar resolve app.OrderWorkflow --kind retry_policy --no-merge

  # Own declarations only
  sugar resolve app.OrderWorkflow --no-inheritance --format json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: e.completeTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, e, f, args)
		},
	}

	cmd.Flags().StringSliceVarP(&f.kinds, "kind", "k", []string{metadata.ForWorkflow.Name()}, "Kinds to resolve (repeatable)")
	cmd.Flags().BoolVar(&f.noMerge, "no-merge", false, "Keep only the nearest declaration of each kind")
	cmd.Flags().BoolVar(&f.noInheritance, "no-inheritance", false, "Only read the type's own declarations")
	cmd.Flags().BoolVar(&f.noInterfaces, "no-interfaces", false, "Skip implemented interfaces")

	return cmd
}

func runResolve(cmd *cobra.Command, e *env, f resolveFlags, args []string) error {
	typeName, err := e.typeArg(args)
	if err != nil {
		return err
	}
	kinds, err := e.kinds(f.kinds)
	if err != nil {
		return err
	}
	reader, err := e.reader()
	if err != nil {
		return err
	}

	opts := metadata.ResolveOptions{
		Merge:       !f.noMerge,
		Inheritance: !f.noInheritance,
		Interfaces:  !f.noInterfaces,
	}
	mapping, err := reader.ResolveWith(typeName, kinds, opts)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", typeName, err)
	}

	return e.render(cmd.OutOrStdout(), newResolveView(typeName, opts, mapping))
}

type resolveView struct {
	Type        string     `json:"type"`
	Merge       bool       `json:"merge"`
	Inheritance bool       `json:"inheritance"`
	Interfaces  bool       `json:"interfaces"`
	Kinds       []kindView `json:"kinds"`
}

type kindView struct {
	Kind       string          `json:"kind"`
	Attributes []attributeView `json:"attributes"`
}

type attributeView struct {
	Kind    string             `json:"kind"`
	Summary string             `json:"summary"`
	Value   metadata.Attribute `json:"value"`
}

func newResolveView(typeName string, opts metadata.ResolveOptions, m *metadata.Mapping) resolveView {
	v := resolveView{
		Type:        typeName,
		Merge:       opts.Merge,
		Inheritance: opts.Inheritance,
		Interfaces:  opts.Interfaces,
		Kinds:       make([]kindView, 0, m.Len()),
	}
	for _, k := range m.Kinds() {
		kv := kindView{Kind: k.Name(), Attributes: []attributeView{}}
		for _, attr := range m.Get(k) {
			kv.Attributes = append(kv.Attributes, attributeView{
				Kind:    attr.Kind().Name(),
				Summary: describeAttribute(attr),
				Value:   attr,
			})
		}
		v.Kinds = append(v.Kinds, kv)
	}
	return v
}

func (v resolveView) renderTable(w io.Writer, noColor bool) {
	ui.Header(w, v.Type, noColor)

	var disabled []string
	if !v.Merge {
		disabled = append(disabled, "merge")
	}
	if !v.Inheritance {
		disabled = append(disabled, "inheritance")
	}
	if !v.Interfaces {
		disabled = append(disabled, "interfaces")
	}
	if len(disabled) > 0 {
		fmt.Fprintf(w, "disabled: %s\n", strings.Join(disabled, ", "))
	}
	fmt.Fprintln(w)

	table := ui.NewTable(w, []string{"REQUESTED", "#", "KIND", "VALUE"}, &ui.TableOptions{NoColor: noColor})
	for _, kv := range v.Kinds {
		if len(kv.Attributes) == 0 {
			table.AddRow(kv.Kind, "-", "-", "(none)")
			continue
		}
		for i, a := range kv.Attributes {
			table.AddRow(kv.Kind, strconv.Itoa(i+1), a.Kind, a.Summary)
		}
	}
	table.Render()
}
