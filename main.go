package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := ParseOptions(os.Args[1:])
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	logger := CreateLogger(opts.Debug, opts.Quiet)

	if err := run(opts, logger); err != nil {
		logger.Error("Exiting", log.Err(err))
		os.Exit(1)
	}
}

func run(opts Options, logger *log.Logger) error {
	// ask for a rom if none was given
	if opts.ROM == "" {
		file, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "c8").Filter("CHIP-8 source", "c8s").Title("Load ROM").Load()
		if errors.Is(err, dialog.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		opts.ROM = file
	}

	// seed the random number generator
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}

	vm, err := chip8.LoadFile(opts.ROM, chip8.WithSeed(seed))
	if err != nil {
		return err
	}

	logger.Info("Loaded ROM", log.String("file", opts.ROM))
	logger.Debug("Options",
		log.String("hz", strconv.Itoa(opts.Hz)),
		log.String("seed", strconv.FormatInt(seed, 10)),
		log.String("onfault", opts.OnFault))

	var frontend Frontend
	if opts.Term {
		frontend, err = NewTerminal()
	} else {
		frontend, err = NewWindow("CHIP-8", opts.Scale)
	}
	if err != nil {
		return err
	}

	host := &Host{
		VM:       vm,
		Frontend: frontend,
		Logger:   logger,
		Hz:       opts.Hz,
		OnFault:  opts.OnFault,
	}

	err = host.Run()

	if cerr := frontend.Close(); err == nil {
		err = cerr
	}

	logger.Info("Shut down")

	return err
}
