package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/diagnostics"
	"github.com/sunholo/juno/internal/infer"
	"github.com/sunholo/juno/internal/manifest"
	"github.com/sunholo/juno/internal/repl"
	"github.com/sunholo/juno/internal/resolve"
	"github.com/sunholo/juno/internal/types"
	"github.com/sunholo/juno/internal/wire"
)

var (
	// Version info - set by ldflags during build
	Version = "dev"
	Commit  = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag  = flag.Bool("version", false, "Print version information")
		helpFlag     = flag.Bool("help", false, "Show help")
		manifestFlag = flag.String("manifest", "juno.yaml", "Path to the project manifest")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "check":
		path := ""
		if flag.NArg() >= 2 {
			path = flag.Arg(1)
		}
		checkProgram(path, *manifestFlag)

	case "repl":
		repl.NewWithVersion(Version).Start(os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("juno %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(bold("juno - semantic analysis for the juno language"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  juno <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check [program.json]  Resolve and type-check a JSON-encoded program.")
	fmt.Println("                        With no argument, the program named by the")
	fmt.Println("                        manifest's entry field is checked instead.")
	fmt.Println("  repl                  Interactive session: one declaration per line")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -manifest <file>      Project manifest (default juno.yaml)")
	fmt.Println("  -version              Print version information")
}

// checkProgram loads a JSON-encoded untyped program, runs the resolve+infer
// pipeline over it and prints either the inferred type of every function and
// operator or the structured diagnostic that stopped analysis.
func checkProgram(path, manifestPath string) {
	if path == "" {
		resolved, err := entryFromManifest(manifestPath)
		if err != nil {
			diagnostics.PrintErr(os.Stderr, err)
			os.Exit(1)
		}
		path = resolved
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	prog, err := wire.DecodeProgram(data)
	if err != nil {
		diagnostics.PrintErr(os.Stderr, err)
		os.Exit(1)
	}

	if err := resolve.Resolve(prog); err != nil {
		diagnostics.PrintErr(os.Stderr, err)
		os.Exit(1)
	}

	_, res, err := infer.AnalyzeWithSchemes(prog)
	if err != nil {
		diagnostics.PrintErr(os.Stderr, err)
		os.Exit(1)
	}

	if !res.MainExists {
		diagnostics.PrintSeverity(os.Stderr, diagnostics.SeverityWarning,
			&types.AnalysisError{Message: "no main function defined"})
	}

	printSchemes(prog, res.Schemes)
	fmt.Printf("%s %s\n", green("OK"), path)
}

// entryFromManifest resolves the manifest's entry program against its search
// paths, returning the first path that exists.
func entryFromManifest(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}
	base := filepath.Dir(manifestPath)
	for _, dir := range m.AllSearchPaths() {
		candidate := filepath.Join(base, dir, m.Entry)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("entry %q not found under any manifest search path", m.Entry)
}

func printSchemes(prog *ast.Program, schemes map[string]*types.Scheme) {
	for i := range prog.Modules {
		m := &prog.Modules[i]
		var lines []string
		for _, tl := range m.TopLevels {
			var name string
			switch d := tl.(type) {
			case *ast.FuncDecl:
				name = d.Name
			case *ast.OperDecl:
				name = d.Def.Symbol
			default:
				continue
			}
			key := ast.NewQualified(m.Path, name).Key()
			if s, ok := schemes[key]; ok {
				lines = append(lines, fmt.Sprintf("  %s :: %s", bold(name), green(s.String())))
			}
		}
		if len(lines) == 0 {
			continue
		}
		sort.Strings(lines)
		fmt.Printf("%s\n", bold("module "+strings.Join(m.Path, "/")))
		for _, l := range lines {
			fmt.Println(l)
		}
	}
}
