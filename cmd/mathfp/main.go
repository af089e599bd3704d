// Command mathfp runs mathfp programs.
//
// With no argument it starts an interactive read-eval-print loop; with a
// filename it runs the file once in batch mode and exits non-zero on the
// first error.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/VarunVF/mathfp"
)

const (
	appName     = "mathfp"
	historyFile = ".mathfp_history"
	promptMain  = "==> "
)

var (
	valueColor = color.New(color.FgBlue)
	errorColor = color.New(color.FgRed)

	maxDepth int
	noColor  bool
)

func main() {
	root := &cobra.Command{
		Use:   appName + " [file]",
		Short: "mathfp — a small expression language for mathematical modeling",
		Long: "mathfp evaluates expression-oriented programs: every construct,\n" +
			"including bindings (x := 5) and function literals (x |-> x * x),\n" +
			"is an expression with a value.\n\n" +
			"With no argument, " + appName + " starts an interactive session.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			if len(args) == 1 {
				return runFile(args[0])
			}
			return runRepl()
		},
	}
	root.Flags().IntVar(&maxDepth, "depth", mathfp.DefaultMaxDepth, "maximum call depth")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runFile executes a whole script as one source unit. The first error of
// any kind terminates the run.
func runFile(file string) error {
	src, err := os.ReadFile(file)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return err
	}

	sess := mathfp.NewSession()
	sess.SetMaxDepth(maxDepth)

	v, ok, err := sess.RunScript(string(src))
	if err != nil {
		errorColor.Fprintln(os.Stderr, mathfp.WrapErrorWithSource(err, string(src)))
		return err
	}
	if ok {
		fmt.Println(v)
	}
	return nil
}

// runRepl reads one line at a time, evaluating each against the same
// session. Errors abort only the current line; the loop ends on EOF or
// :quit with exit code 0.
func runRepl() error {
	fmt.Printf("mathfp REPL\nCtrl+D exits. Type :quit to exit.\n")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	sess := mathfp.NewSession()
	sess.SetMaxDepth(maxDepth)

	for {
		line, err := ln.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			errorColor.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			break
		}
		ln.AppendHistory(line)

		v, ok, err := sess.Eval(line)
		if err != nil {
			errorColor.Fprintln(os.Stderr, mathfp.WrapErrorWithSource(err, line))
			continue
		}
		if ok {
			valueColor.Println(v)
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}
