// Package cmd is the CLI surface: flag parsing, input loading, the
// non-interactive print path, and launching the interactive editor.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jed/internal/editor"
	"github.com/oakwood-commons/jed/internal/jsontree"
	"github.com/oakwood-commons/jed/internal/navigator"
	"github.com/oakwood-commons/jed/internal/ui"
	"github.com/oakwood-commons/jed/pkg/loader"
	"github.com/oakwood-commons/jed/pkg/logger"
	"github.com/oakwood-commons/jed/pkg/settings"
)

var (
	params = settings.NewCliParams()

	pathExpr   string
	printMode  bool
	output     string
	configFile string
	indentSize int
)

var rootCtx = context.Background()

var fileCfg FileConfig

var (
	stdinIsPiped = func() bool {
		stat, _ := os.Stdin.Stat()
		return (stat.Mode() & os.ModeCharDevice) == 0
	}
	stdoutIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "terminal JSON node editor",
	Long: settings.CliBinaryName + ` opens a JSON (or YAML/TOML) document as a navigable tree,
lets you edit one node at a time as JSON text, and merges the edit back
into the full document without disturbing sibling data.`,
	Example: "\n  jed config.json\n  jed config.json --path customer.orders[0]\n  jed deploy.yaml --print --output toml\n  cat data.json | jed --print --path 'items.filter(x, x.active)'\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cfgPath := resolveConfigPath(configFile); cfgPath != "" {
			cfg, err := loadFileConfig(cfgPath)
			if err != nil {
				return err
			}
			fileCfg = cfg
		}
		if fileCfg.LogLevel != nil && !cmd.Flags().Changed("log-level") {
			params.MinLogLevel = int8(*fileCfg.LogLevel)
		}
		if fileCfg.LogFile != nil && !cmd.Flags().Changed("log-file") {
			params.LogFile = *fileCfg.LogFile
		}
		lgr := logger.Setup(logger.Options{Level: params.MinLogLevel, FilePath: params.LogFile})
		rootCtx = logger.WithLogger(context.Background(), lgr)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		lgr := logger.FromContext(rootCtx)

		if fileCfg.Indent != nil && !cmd.Flags().Changed("indent") {
			indentSize = *fileCfg.Indent
		}
		if fileCfg.NoColor != nil && !cmd.Flags().Changed("no-color") {
			params.NoColor = *fileCfg.NoColor
		}
		applyThemeConfig(fileCfg.Theme)
		if indentSize < 1 {
			indentSize = 2
		}

		root, format, sourcePath, err := loadInput(args)
		if err != nil {
			return err
		}
		lgr.V(1).Info("document loaded", "format", string(format), "source", sourceLabel(sourcePath))

		if printMode || !stdoutIsTerminal() {
			return runPrint(cmd.OutOrStdout(), root, pathExpr, output)
		}
		return runInteractive(root, format, sourcePath)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		v := settings.VersionInformation
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
			settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
		return nil
	},
}

func init() {
	registerRunFlags(rootCmd.Flags())
	rootCmd.PersistentFlags().Int8Var(&params.MinLogLevel, "log-level", 0, "minimum log level (negative enables debug)")
	rootCmd.PersistentFlags().StringVar(&params.LogFile, "log-file", "", "write logs to a file instead of stderr")
	rootCmd.AddCommand(versionCmd)
}

func registerRunFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&pathExpr, "path", "p", "", "start at a node: dotted path (customer.orders[0]) or a CEL expression")
	fs.BoolVar(&printMode, "print", false, "print the node and exit instead of opening the editor")
	fs.StringVarP(&output, "output", "o", "json", "print format: json|yaml|toml|raw")
	fs.BoolVarP(&params.WriteBack, "write", "w", false, "write committed edits back to the source file on exit")
	fs.BoolVar(&params.NoColor, "no-color", false, "disable color output")
	fs.IntVar(&indentSize, "indent", 2, "indentation width for JSON output")
	fs.StringVar(&configFile, "config", "", "path to a YAML config file (default: ~/.config/jed/config.yaml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadInput reads the document from the file argument or stdin. sourcePath
// is empty for stdin input.
func loadInput(args []string) (jsontree.Value, loader.Format, string, error) {
	if len(args) == 1 {
		root, format, err := loader.LoadFile(args[0])
		if err != nil {
			return nil, "", "", err
		}
		return root, format, args[0], nil
	}
	if !stdinIsPiped() {
		return nil, "", "", fmt.Errorf("no input: pass a file argument or pipe a document to stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", "", fmt.Errorf("read stdin: %w", err)
	}
	root, format, err := loader.Load(string(data))
	if err != nil {
		return nil, "", "", err
	}
	return root, format, "", nil
}

func sourceLabel(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}

// runPrint resolves pathExpr against the document and renders the node.
func runPrint(w io.Writer, root jsontree.Value, expr, format string) error {
	node, err := navigator.Navigate(root, expr)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "json", "":
		fmt.Fprintln(w, jsontree.EncodeIndentWith(node, strings.Repeat(" ", indentSize)))
	case "yaml":
		out, err := yaml.Marshal(jsontree.ToInterface(node))
		if err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		fmt.Fprint(w, string(out))
	case "toml":
		data := jsontree.ToInterface(node)
		if _, ok := data.(map[string]interface{}); !ok {
			return fmt.Errorf("toml output requires an object node")
		}
		out, err := toml.Marshal(data)
		if err != nil {
			return fmt.Errorf("render toml: %w", err)
		}
		fmt.Fprint(w, string(out))
	case "raw":
		fmt.Fprintln(w, rawRender(node))
	default:
		return fmt.Errorf("unknown output format %q (expected json, yaml, toml or raw)", format)
	}
	return nil
}

// rawRender prints scalars without JSON quoting; containers keep their
// pretty JSON form.
func rawRender(node jsontree.Value) string {
	if s, ok := node.(jsontree.String); ok {
		return string(s)
	}
	switch node.(type) {
	case *jsontree.Array, *jsontree.Object:
		return jsontree.EncodeIndentWith(node, strings.Repeat(" ", indentSize))
	}
	return jsontree.Encode(node)
}

// runInteractive opens the editor. The store is seeded with the document's
// canonical JSON serialization; commits stay in memory until WriteBack.
func runInteractive(root jsontree.Value, format loader.Format, sourcePath string) error {
	lgr := logger.FromContext(rootCtx)

	startPath, err := startingPath(root, pathExpr)
	if err != nil {
		return err
	}

	text := jsontree.EncodeIndent(root)
	var store editor.DocumentStore
	var fileStore *editor.FileStore
	if sourcePath != "" {
		fileStore = editor.NewFileStore(text, writeTarget(sourcePath, format))
		store = fileStore
	} else {
		store = editor.NewMemoryStore(text)
	}

	model := ui.New(store, root, startPath, *lgr, params.NoColor)

	opts := []tea.ProgramOption{}
	if stdinIsPiped() {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("interactive mode needs a terminal: %w", err)
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("editor terminated: %w", err)
	}

	dirty, _ := store.(interface{ Dirty() bool })
	if dirty == nil || !dirty.Dirty() {
		return nil
	}
	if params.WriteBack && fileStore != nil {
		if err := fileStore.WriteBack(); err != nil {
			return err
		}
		lgr.Info("document written", "path", fileStore.Path())
		return nil
	}
	fmt.Fprintln(os.Stderr, "warning: unsaved changes discarded (rerun with --write to persist edits)")
	return nil
}

// startingPath turns --path into a structural path for the editor. CEL
// results are views, not addressable nodes, so they are rejected here.
func startingPath(root jsontree.Value, expr string) (jsontree.Path, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "$" || trimmed == "_" {
		return nil, nil
	}
	path, err := jsontree.ParsePath(trimmed)
	if err != nil {
		return nil, fmt.Errorf("--path must be a structural path in interactive mode: %w", err)
	}
	if _, ok := jsontree.Get(root, path); !ok {
		return nil, fmt.Errorf("no value at %s", jsontree.FormatPath(path))
	}
	return path, nil
}

// writeTarget is the file a converted document would be written to: the
// source file for JSON input, a .json sibling for YAML/TOML input so the
// original is never clobbered with another format.
func writeTarget(sourcePath string, format loader.Format) string {
	if format == loader.FormatJSON {
		return sourcePath
	}
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + ".json"
}
