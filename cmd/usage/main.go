package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rcbilson/mdconvert/usage"
	flag "github.com/spf13/pflag"
)

func report(ctx context.Context, db *usage.Repo, w io.Writer) error {
	summary, err := db.Summary(ctx)
	if err != nil {
		return fmt.Errorf("error reading usage: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tCONVERSIONS\tLENGTH IN\tLENGTH OUT")
	for _, s := range summary {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Mode, s.Conversions, s.LengthIn, s.LengthOut)
	}
	return tw.Flush()
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("usage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbFile := fs.String("db", "", "usage database written by the server (MDCONVERT_DBFILE)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbFile == "" {
		return errors.New("--db is required")
	}
	if _, err := os.Stat(*dbFile); err != nil {
		return err
	}

	db, err := usage.NewRepo(*dbFile)
	if err != nil {
		return fmt.Errorf("error opening usage database: %w", err)
	}
	defer db.Close()
	return report(context.Background(), &db, stdout)
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
