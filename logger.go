/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"errors"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the logger for the run.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LogFault logs an error returned by Step, with the instruction that
// caused it when there is one. Skipped faults are only warnings.
func LogFault(logger *log.Logger, vm *chip8.CHIP_8, err error, skipped bool) {
	var fault *chip8.Fault
	if !errors.As(err, &fault) {
		logger.Error("Emulation failed", log.Err(err))
		return
	}

	if skipped {
		logger.Warn("Skipping bad instruction",
			log.Hex("pc", fault.PC),
			log.Hex("opcode", fault.Opcode),
			log.Err(fault.Err))
		return
	}

	logger.Error("Emulation halted",
		log.Hex("pc", fault.PC),
		log.Hex("opcode", fault.Opcode),
		log.String("instruction", vm.Disassemble(fault.PC)),
		log.Err(fault.Err))
}
