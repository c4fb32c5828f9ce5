package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/placetree/pkg/config"
	"github.com/vanderheijden86/placetree/pkg/export"
	"github.com/vanderheijden86/placetree/pkg/store"
	"github.com/vanderheijden86/placetree/pkg/ui"
	"github.com/vanderheijden86/placetree/pkg/version"
)

// errUnknownLabel is returned by --select for a label no row carries.
var errUnknownLabel = errors.New("unknown place")

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	rowsJSON := flag.Bool("rows-json", false, "Print the flattened rows as JSON and exit")
	selectLabels := flag.String("select", "", "Comma-separated places to check before output or launch (e.g., 'Venezuela,USA')")
	exportFile := flag.String("export-md", "", "Export the selection report to a Markdown file (e.g., places.md)")
	configFlag := flag.String("config", "", "Config file (default: ./.placetree/config.yaml, then ~/.config/placetree/config.yaml)")
	stateDirFlag := flag.String("state-dir", "", "Directory for tree-state.json; empty disables persistence (default from config)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: placetree [options]")
		fmt.Println("\nA checklist tree of continents, countries and cities.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("placetree %s\n", version.Version)
		os.Exit(0)
	}

	configPath := config.Resolve(*configFlag)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	stateDir := config.ResolveStateDir(cfg, configPath)
	if flagWasSet("state-dir") {
		stateDir = *stateDirFlag
	}

	s, err := store.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading places: %v\n", err)
		os.Exit(1)
	}
	checklist := ui.NewChecklistTree(s, ui.ChecklistOptionsFromConfig(cfg))
	defer checklist.Close()

	if err := applySelection(checklist, *selectLabels); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *rowsJSON {
		if err := export.WriteRowsJSON(os.Stdout, checklist.ExportRows()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding rows: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *exportFile != "" {
		fmt.Printf("Exporting to %s...\n", *exportFile)
		if err := export.SaveMarkdownToFile(checklist.ExportRows(), ui.ReportTitle, *exportFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Done!")
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: placetree needs a terminal; use --rows-json or --export-md for scripted use")
		os.Exit(1)
	}

	closeLog := setupLogging()
	defer closeLog()

	if dir, ok := config.DetectProjectDir(); ok && stateDir == filepath.Join(dir, config.DirName) {
		if err := config.EnsureStateIgnored(dir); err != nil {
			log.Printf("warning: could not update .gitignore: %v", err)
		}
	}

	m := ui.NewModel(checklist, cfg, stateDir)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startConfigWatcher(ctx, configPath, p)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running placetree: %v\n", err)
		os.Exit(1)
	}
}

// flagWasSet reports whether name was given on the command line, so an
// explicit empty value can be told apart from the default.
func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// applySelection toggles the first row whose trimmed label matches each
// comma-separated entry of labels, in order.
func applySelection(c *ui.ChecklistTree, labels string) error {
	if strings.TrimSpace(labels) == "" {
		return nil
	}
	for _, want := range strings.Split(labels, ",") {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		row := findRow(c, want)
		if row == nil {
			return fmt.Errorf("--select %q: %w", want, errUnknownLabel)
		}
		c.ToggleSelection(row)
	}
	return nil
}

func findRow(c *ui.ChecklistTree, label string) *ui.FlatNode {
	for _, row := range c.Rows() {
		if strings.TrimSpace(row.Label) == label {
			return row
		}
	}
	return nil
}

// setupLogging sends the standard logger to PLACETREE_LOG when set, and
// discards it otherwise so warnings never draw over the TUI.
func setupLogging() func() {
	path := os.Getenv("PLACETREE_LOG")
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(path, "placetree")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", path, err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { f.Close() }
}

// startConfigWatcher forwards config file changes to the running program.
// A missing config directory simply means nothing to watch.
func startConfigWatcher(ctx context.Context, path string, p *tea.Program) {
	w, err := config.NewWatcher(path, func(cfg config.Config, err error) {
		p.Send(ui.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		log.Printf("warning: config hot reload disabled: %v", err)
		return
	}
	go w.Run(ctx)
}
