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

func newTypesCommand(e *env) *cobra.Command {
	var order bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List declared types and check their references",
		Long: `List every type loaded from the declaration files.

Dangling supertypes, interfaces used as superclasses and inheritance cycles are
reported after the list; the command fails when there are any.`,
		Example: `  # List types
  sugar types

  # Show the order in which supertypes are consulted
  sugar types --order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := e.registry()
			if err != nil {
				return err
			}

			v := newTypesView(types, order)
			if e.invalid != nil {
				v.Problems = problemsOf(e.invalid)
			}
			if err := e.render(cmd.OutOrStdout(), v); err != nil {
				return err
			}
			if len(v.Problems) > 0 {
				return &declarationError{problems: v.Problems}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&order, "order", false, "Show the resolution order of each type")
	return cmd
}

type typesView struct {
	Types    []typeView `json:"types"`
	Problems []string   `json:"problems,omitempty"`

	showOrder bool
}

type typeView struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Abstract   bool     `json:"abstract,omitempty"`
	Opaque     bool     `json:"opaque,omitempty"`
	Parent     string   `json:"parent,omitempty"`
	Interfaces []string `json:"interfaces,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
	Order      []string `json:"order,omitempty"`
}

func newTypesView(types *metadata.TypeRegistry, showOrder bool) typesView {
	v := typesView{Types: make([]typeView, 0, types.Len()), showOrder: showOrder}
	for _, name := range types.Names() {
		decl, _ := types.Lookup(name)
		tv := typeView{
			Name:       decl.Name,
			Kind:       decl.Kind.String(),
			Abstract:   decl.Abstract,
			Opaque:     decl.Opaque,
			Parent:     decl.Parent,
			Interfaces: decl.Interfaces,
		}
		for _, attr := range decl.Attributes {
			tv.Attributes = append(tv.Attributes, attr.Kind().Name()+": "+describeAttribute(attr))
		}
		if showOrder {
			tv.Order = resolutionOrder(types, decl)
		}
		v.Types = append(v.Types, tv)
	}
	return v
}

// resolutionOrder lists the type, its registered superclasses and the
// interfaces it implements in the order a reader consults them.
func resolutionOrder(types *metadata.TypeRegistry, decl metadata.TypeDecl) []string {
	order := []string{decl.Name}
	seen := map[string]bool{decl.Name: true}
	for parent := decl.Parent; parent != "" && !seen[parent]; {
		p, ok := types.Lookup(parent)
		if !ok || p.Kind != metadata.Class {
			break
		}
		seen[parent] = true
		order = append(order, parent)
		parent = p.Parent
	}

	interfaces, err := types.SortedInterfaces(decl.Name)
	if err == nil {
		order = append(order, interfaces...)
	}
	return order
}

func (v typesView) renderTable(w io.Writer, noColor bool) {
	table := ui.NewTable(w, []string{"NAME", "KIND", "PARENT", "INTERFACES", "ATTRIBUTES"}, &ui.TableOptions{NoColor: noColor})
	for _, t := range v.Types {
		kind := t.Kind
		if t.Abstract {
			kind = "abstract " + kind
		}
		if t.Opaque {
			kind += " (opaque)"
		}
		table.AddRow(t.Name, kind, dash(t.Parent), dash(strings.Join(t.Interfaces, ", ")), strconv.Itoa(len(t.Attributes)))
	}
	table.Render()

	if v.showOrder {
		fmt.Fprintln(w)
		section := ui.NewSection(w, "Resolution order", noColor)
		for _, t := range v.Types {
			section.AddLine(strings.Join(t.Order, " → "))
		}
		section.Render()
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
