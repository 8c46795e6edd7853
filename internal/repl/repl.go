// Package repl implements the interactive `juno repl` session: one
// JSON-encoded top-level declaration per line, accumulated into a running
// module that is re-resolved and re-inferred after every submission.
package repl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/diagnostics"
	"github.com/sunholo/juno/internal/infer"
	"github.com/sunholo/juno/internal/resolve"
	"github.com/sunholo/juno/internal/types"
	"github.com/sunholo/juno/internal/wire"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

// replModulePath is the module every REPL submission lands in.
var replModulePath = []string{"repl"}

// REPL holds the session state: the raw JSON of every accepted declaration
// (re-decoded from scratch on each submission, so analysis always runs over a
// pristine untyped tree) and the input history.
type REPL struct {
	version string
	decls   []json.RawMessage
	history []string
}

// New creates a REPL with an empty module.
func New() *REPL {
	return &REPL{version: "dev"}
}

// NewWithVersion creates a REPL that reports the given version banner.
func NewWithVersion(version string) *REPL {
	if version == "" {
		version = "dev"
	}
	return &REPL{version: version}
}

// Start runs the interactive loop until EOF or :quit.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".juno_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetMultiLineMode(true)

	fmt.Fprintf(out, "%s %s\n", bold("juno"), bold(r.version))
	fmt.Fprintln(out, dim("Paste one JSON top-level declaration per line."))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(l string) (c []string) {
		if strings.HasPrefix(l, ":") {
			for _, cmd := range []string{":help", ":quit", ":reset", ":names", ":history"} {
				if strings.HasPrefix(cmd, l) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		// liner doesn't support ANSI colors in the prompt
		input, err := line.Prompt("juno> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" || input == ":exit" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.HandleCommand(input, out)
			continue
		}

		r.Submit(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// HandleCommand dispatches a :command.
func (r *REPL) HandleCommand(cmd string, out io.Writer) {
	switch cmd {
	case ":help":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :help      show this help")
		fmt.Fprintln(out, "  :names     list the declarations accepted so far")
		fmt.Fprintln(out, "  :history   show input history")
		fmt.Fprintln(out, "  :reset     discard every accepted declaration")
		fmt.Fprintln(out, "  :quit      exit")
	case ":names":
		mod, err := r.rebuildModule()
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		if len(mod.TopLevels) == 0 {
			fmt.Fprintln(out, dim("(nothing defined yet)"))
			return
		}
		for _, tl := range mod.TopLevels {
			fmt.Fprintln(out, "  "+tl.String())
		}
	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%4d  %s\n", i+1, h)
		}
	case ":reset":
		r.decls = nil
		fmt.Fprintln(out, green("Module reset."))
	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), cmd)
	}
}

// Submit decodes one top-level declaration, adds it to the running module and
// re-runs the full resolve+infer pipeline. A declaration that fails analysis
// is rolled back, so the module only ever grows by declarations that check.
func (r *REPL) Submit(input string, out io.Writer) {
	raw := json.RawMessage(input)
	if _, err := wire.DecodeTopLevel(raw); err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	r.decls = append(r.decls, raw)
	schemes, last, err := r.analyze()
	if err != nil {
		r.decls = r.decls[:len(r.decls)-1]
		diagnostics.PrintErr(out, err)
		return
	}
	r.printAccepted(out, schemes, last)
}

// rebuildModule re-decodes every accepted declaration into a fresh module, so
// no typed or qualified state from a previous run leaks into the next one.
func (r *REPL) rebuildModule() (ast.Module, error) {
	mod := ast.Module{Path: append([]string{}, replModulePath...)}
	for _, raw := range r.decls {
		tl, err := wire.DecodeTopLevel(raw)
		if err != nil {
			return mod, err
		}
		mod.TopLevels = append(mod.TopLevels, tl)
	}
	return mod, nil
}

func (r *REPL) analyze() (map[string]*types.Scheme, ast.TopLevel, error) {
	mod, err := r.rebuildModule()
	if err != nil {
		return nil, nil, err
	}
	prog := &ast.Program{Modules: []ast.Module{mod}}
	if err := resolve.Resolve(prog); err != nil {
		return nil, nil, err
	}
	_, res, err := infer.AnalyzeWithSchemes(prog)
	if err != nil {
		return nil, nil, err
	}
	tops := prog.Modules[0].TopLevels
	return res.Schemes, tops[len(tops)-1], nil
}

func (r *REPL) printAccepted(out io.Writer, schemes map[string]*types.Scheme, last ast.TopLevel) {
	switch d := last.(type) {
	case *ast.FuncDecl:
		r.printScheme(out, d.Name, schemes)
	case *ast.OperDecl:
		r.printScheme(out, d.Def.Symbol, schemes)
	case *ast.TypeDecl:
		fmt.Fprintln(out, green(d.String()))
	case *ast.ExternDecl:
		fmt.Fprintln(out, green(d.String()))
	}
}

func (r *REPL) printScheme(out io.Writer, name string, schemes map[string]*types.Scheme) {
	key := ast.NewQualified(replModulePath, name).Key()
	if s, ok := schemes[key]; ok {
		fmt.Fprintf(out, "%s :: %s\n", bold(name), green(s.String()))
		return
	}
	fmt.Fprintln(out, green("ok"))
}
