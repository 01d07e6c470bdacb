package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/rcbilson/mdconvert/markdown"
	"github.com/rcbilson/mdconvert/www"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var errEmptyInput = errors.New("Input cannot be empty")

type options struct {
	mode     markdown.Mode
	fromHTML bool
	url      string
	output   string
	input    string
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var mode string
	fs := flag.NewFlagSet("mdconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mdconv [flags] [file]")
		fs.PrintDefaults()
	}
	fs.StringVarP(&mode, "mode", "m", "html", "output format: html or text")
	fs.BoolVar(&opts.fromHTML, "from-html", false, "convert HTML input to markdown first")
	fs.StringVarP(&opts.url, "url", "u", "", "fetch the input from a URL")
	fs.StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	var err error
	if opts.mode, err = markdown.ParseMode(mode); err != nil {
		return opts, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.input = fs.Arg(0)
	default:
		return opts, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	if opts.url != "" && opts.input != "" {
		return opts, errors.New("--url and an input file are mutually exclusive")
	}
	return opts, nil
}

func readInput(ctx context.Context, opts options, stdin io.Reader, fetcher www.FetcherFunc) ([]byte, error) {
	switch {
	case opts.url != "":
		return fetcher(ctx, opts.url)
	case opts.input == "" || opts.input == "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(opts.input)
	}
}

func htmlToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	out, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML: %w", err)
	}
	return out, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, fetcher www.FetcherFunc) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	raw, err := readInput(ctx, opts, stdin, fetcher)
	if err != nil {
		return err
	}
	content := string(raw)
	if opts.fromHTML {
		if content, err = htmlToMarkdown(content); err != nil {
			return err
		}
	}
	content = strings.TrimFunc(content, markdown.IsSpace)
	if content == "" {
		return errEmptyInput
	}

	output, err := markdown.Convert(opts.mode, content)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"mode":      opts.mode,
		"lengthIn":  len(content),
		"lengthOut": len(output),
	}).Debug("converted")

	if opts.output == "" {
		_, err = fmt.Fprintln(stdout, output)
		return err
	}
	return os.WriteFile(opts.output, []byte(output+"\n"), 0o644)
}

func main() {
	logrus.SetOutput(os.Stderr)
	err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, www.Fetcher)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
