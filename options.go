package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

/// Options are the command line settings.
///
type Options struct {
	/// ROM is the program image to run. Empty means ask for one.
	///
	ROM string

	/// Seed for RND. Zero seeds from the clock.
	///
	Seed int64

	/// Hz is how many instructions are executed per second.
	///
	Hz int

	/// Scale is the size of a CHIP-8 pixel in window pixels.
	///
	Scale int

	/// Term selects the terminal front end instead of SDL.
	///
	Term bool

	/// OnFault is what to do when Step returns an error.
	///
	OnFault string

	Debug bool
	Quiet bool
}

/// fault policies
///
const (
	faultHalt = "halt"
	faultSkip = "skip"
	faultExit = "exit"
)

// fastest instruction clock; the host ticker needs a non-zero period
const maxHz = 1000000

/// UsageError is returned for command lines that can't be run.
///
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

/// ShowUsage prints the reason and the flag defaults.
///
func (e *UsageError) ShowUsage(w io.Writer) {
	if e.msg != "" {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}

	fmt.Fprintf(w, "usage: chip8 [options] [rom file]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

/// ParseOptions parses the command line arguments (without the program
/// name).
///
func ParseOptions(args []string) (Options, error) {
	var opts Options

	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.Int64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 seeds from the clock")
	flags.IntVar(&opts.Hz, "hz", 500, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Term, "term", false, "run in the terminal instead of a window")
	flags.StringVar(&opts.OnFault, "onfault", faultHalt, "what to do on a bad instruction (halt/skip/exit)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		opts.ROM = rest[0]
	default:
		return opts, &UsageError{flags: flags, msg: "only one rom file may be given"}
	}

	if opts.Hz <= 0 || opts.Hz > maxHz {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("-hz must be between 1 and %d", maxHz)}
	}
	if opts.Scale <= 0 {
		return opts, &UsageError{flags: flags, msg: "-scale must be positive"}
	}

	opts.OnFault = strings.ToLower(opts.OnFault)

	switch opts.OnFault {
	case faultHalt, faultSkip, faultExit:
	default:
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unknown -onfault policy: %s", opts.OnFault)}
	}

	// the terminal can't show a file dialog
	if opts.Term && opts.ROM == "" {
		return opts, &UsageError{flags: flags, msg: "-term needs a rom file"}
	}

	return opts, nil
}
