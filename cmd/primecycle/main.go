package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/primecycle/internal/config"
	"github.com/1broseidon/primecycle/internal/cycle"
	"github.com/1broseidon/primecycle/internal/logging"
	"github.com/1broseidon/primecycle/internal/platform"
	"github.com/1broseidon/primecycle/internal/report"
	"github.com/1broseidon/primecycle/internal/topology"
)

// exitUsage is EX_USAGE from sysexits.h. Exit codes 1-5 are run outcomes.
const exitUsage = 64

type opener func() (platform.Backend, error)

func main() {
	platform.AttachConsole()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, platform.Open))
}

func run(args []string, stdout, stderr io.Writer, open opener) int {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		printMainUsage(stdout)
		return 0
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runRotate(args, stdout, stderr, open)
	}

	switch args[0] {
	case "list":
		return runList(args[1:], stdout, stderr, open)
	case "plan":
		return runPlan(args[1:], stdout, stderr, open)
	case "help":
		printMainUsage(stdout)
		return 0
	default:
		report.New(stdout, stderr).Usagef("unknown command %q", args[0])
		fmt.Fprintln(stderr, "")
		printMainUsage(stderr)
		return exitUsage
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: primecycle [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Make the next display primary and move it to the desktop origin.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  (none)              Rotate the primary display")
	fmt.Fprintln(w, "  list                Print the attached displays")
	fmt.Fprintln(w, "  plan                Print the writes a rotation would issue")
	fmt.Fprintln(w, "  help                Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -order string       enumeration (default) or geometric")
	fmt.Fprintln(w, "  -v                  Verbose diagnostics on stderr")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Exit status:")
	fmt.Fprintln(w, "  0 success, 1 no displays, 2 indeterminate primary,")
	fmt.Fprintln(w, "  3 target write failed, 4 display write failed, 5 apply failed,")
	fmt.Fprintln(w, "  64 usage error")
}

// parseOptions parses the flags shared by every command. ok is false when
// the caller should exit with code.
func parseOptions(name string, args []string, rep *report.Reporter) (opts config.Options, code int, ok bool) {
	opts = config.DefaultOptions()
	stderr := rep.Err

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	order := fs.String("order", string(topology.OrderEnumeration), "rotation order: enumeration or geometric")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose diagnostics")
	fs.Usage = func() { printMainUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, 0, false
		}
		return opts, exitUsage, false
	}
	if fs.NArg() > 0 {
		rep.Usagef("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(stderr, "")
		printMainUsage(stderr)
		return opts, exitUsage, false
	}

	o, err := config.ParseOrder(*order)
	if err != nil {
		rep.Usagef("%v", err)
		return opts, exitUsage, false
	}
	opts.Order = o
	if err := opts.Validate(); err != nil {
		rep.Usagef("%v", err)
		return opts, exitUsage, false
	}

	logging.Setup(stderr, opts.Verbose)
	return opts, 0, true
}

func openBackend(open opener, rep *report.Reporter) (platform.Backend, int, bool) {
	backend, err := open()
	if err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			err = fmt.Errorf("%w: %w", topology.ErrNoDisplays, err)
		}
		cerr := &cycle.Error{Kind: cycle.KindNoDisplays, Err: err}
		rep.Failure(cerr)
		return nil, cycle.ExitCode(cerr), false
	}
	return backend, 0, true
}

func runRotate(args []string, stdout, stderr io.Writer, open opener) int {
	rep := report.New(stdout, stderr)
	opts, code, ok := parseOptions("primecycle", args, rep)
	if !ok {
		return code
	}

	backend, code, ok := openBackend(open, rep)
	if !ok {
		return code
	}
	defer backend.Close()

	res, err := cycle.Run(backend, opts)
	if err != nil {
		rep.Failure(err)
		return cycle.ExitCode(err)
	}
	rep.Success(res)
	return 0
}

func runList(args []string, stdout, stderr io.Writer, open opener) int {
	rep := report.New(stdout, stderr)
	_, code, ok := parseOptions("list", args, rep)
	if !ok {
		return code
	}

	backend, code, ok := openBackend(open, rep)
	if !ok {
		return code
	}
	defer backend.Close()

	top, err := topology.Read(backend)
	if err != nil {
		cerr := &cycle.Error{Kind: cycle.KindNoDisplays, Err: err}
		rep.Failure(cerr)
		return cycle.ExitCode(cerr)
	}
	if err := rep.YAML(report.NewTopologyView(top)); err != nil {
		rep.Failure(err)
		return 1
	}
	return 0
}

func runPlan(args []string, stdout, stderr io.Writer, open opener) int {
	rep := report.New(stdout, stderr)
	opts, code, ok := parseOptions("plan", args, rep)
	if !ok {
		return code
	}
	opts.DryRun = true

	backend, code, ok := openBackend(open, rep)
	if !ok {
		return code
	}
	defer backend.Close()

	res, err := cycle.Run(backend, opts)
	if err != nil {
		rep.Failure(err)
		return cycle.ExitCode(err)
	}
	if err := rep.YAML(report.NewPlanView(opts, res)); err != nil {
		rep.Failure(err)
		return 1
	}
	return 0
}
