package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errFlags marks errors the flag package has already printed.
var errFlags = errors.New("invalid flags")

// optionalFlags registers flags whose absence is distinct from their zero value.
type optionalFlags struct {
	fs *flag.FlagSet
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, optionalFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "usage: babytracker %s %s\n", name, usages[name])
		fs.PrintDefaults()
	}

	return fs, optionalFlags{fs: fs}
}

func (o optionalFlags) float(name, usage string) func() *float64 {
	var value *float64

	o.fs.Func(name, usage, func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}

		value = &v

		return nil
	})

	return func() *float64 { return value }
}

func (o optionalFlags) uint32(name, usage string) func() *uint32 {
	var value *uint32

	o.fs.Func(name, usage, func(s string) error {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return err
		}

		u := uint32(v)
		value = &u

		return nil
	})

	return func() *uint32 { return value }
}

func (o optionalFlags) string(name, usage string) func() *string {
	var value *string

	o.fs.Func(name, usage, func(s string) error {
		value = &s
		return nil
	})

	return func() *string { return value }
}

// parse rejects positional arguments, except for delete which takes the id as one.
func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return errors.Join(errFlags, err)
	}

	if fs.NArg() > 0 && fs.Name() != "delete" {
		return fmt.Errorf("%w: unexpected arguments %s", errUsage, strings.Join(fs.Args(), " "))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	missing := make([]string, 0)
	for _, name := range required {
		if !set[name] {
			missing = append(missing, "-"+name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", errUsage, strings.Join(missing, ", "))
	}

	return nil
}
