// Command clipsum runs one action over text read from stdin or a file and
// prints the result. Failures are printed with an "Error: " prefix and exit
// with status 1.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"clipsum/internal/app"
	"clipsum/internal/capture"
	"clipsum/internal/config"
	"clipsum/internal/domain"
	"clipsum/internal/logging"
)

type options struct {
	action   string
	min      int
	max      int
	style    string
	language string
	file     string
	html     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	action, reqCfg, err := opts.request()
	if err != nil {
		fmt.Fprintf(stderr, "clipsum: %v\n", err)
		return 2
	}

	if err = config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "clipsum: %v\n", err)
		return 1
	}

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(stderr, "clipsum: failed to load config: %v\n", err)
		return 1
	}

	log, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input, err := opts.readInput(stdin)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read input",
			"error", err,
			"file", opts.file,
			"html", opts.html)

		fmt.Fprintf(stderr, "clipsum: %v\n", err)
		return 1
	}

	orch, stopOrchestrator, err := app.NewOrchestrator(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "clipsum: %v\n", err)
		return 1
	}
	defer stopOrchestrator()

	return render(stdout, orch.Execute(ctx, action, input, reqCfg))
}

func render(w io.Writer, result domain.Result) int {
	fmt.Fprintln(w, result.Display())

	if !result.OK() {
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	defaults := domain.DefaultRequestConfig()

	fs := flag.NewFlagSet("clipsum", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.action, "action", "summarize", "action to run: summarize, paraphrase or code")
	fs.IntVar(&opts.min, "min", defaults.MinLength, "minimum length in words (raised to 50 when lower)")
	fs.IntVar(&opts.max, "max", defaults.MaxLength, "maximum length in words")
	fs.StringVar(&opts.style, "style", string(domain.StyleDefault), "style: default, academic, casual, business or creative")
	fs.StringVar(&opts.language, "language", "", "code language; empty or auto means auto-detect")
	fs.StringVar(&opts.file, "file", "", "read input from file instead of stdin")
	fs.BoolVar(&opts.html, "html", false, "treat input as HTML and extract its text")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	return opts, nil
}

func (o options) request() (domain.Action, domain.RequestConfig, error) {
	action, err := domain.ParseAction(o.action)
	if err != nil {
		return 0, domain.RequestConfig{}, err
	}

	style, err := domain.ParseStyle(o.style)
	if err != nil {
		return 0, domain.RequestConfig{}, err
	}

	return action, domain.RequestConfig{
		MinLength: o.min,
		MaxLength: o.max,
		Style:     style,
		Language:  strings.TrimSpace(o.language),
	}, nil
}

func (o options) readInput(stdin io.Reader) (string, error) {
	r := stdin
	if o.file != "" {
		f, err := os.Open(o.file)
		if err != nil {
			return "", fmt.Errorf("open input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	if o.html {
		text, err := capture.HTML(r)
		if err != nil {
			return "", fmt.Errorf("extract text from HTML: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return capture.Text(string(data)), nil
}
