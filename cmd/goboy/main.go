// Command goboy runs a Game Boy ROM headless. It is mostly useful for
// running test ROMs, which report their result over the serial port.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/saves"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// resultDevice echoes serial output and stops the emulation once a test
// ROM has printed its verdict.
type resultDevice struct {
	serial.Buffer
	out  io.Writer
	done func()
}

func (r *resultDevice) Exchange(b byte) byte {
	r.Buffer.Exchange(b)
	_, _ = r.out.Write([]byte{b})
	if s := r.String(); strings.Contains(s, "Passed") || strings.Contains(s, "Failed") {
		r.done()
	}
	return 0xFF
}

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	asModel := flag.String("model", "auto", "The model to emulate. Can be auto, dmg or cgb")
	level := flag.String("log", "info", "The log level. Can be error, warn, info or debug")
	instructions := flag.Int("instructions", 0, "Stop after this many instructions, 0 runs until interrupted")
	timeout := flag.Duration("timeout", 0, "Stop after this long")
	serialOut := flag.Bool("serial", false, "Print serial output, stopping when a test rom reports its result")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	saveDir := flag.String("saves", "saves", "The folder battery saves and save states are kept in")
	state := flag.Bool("state", false, "Resume from the latest save state, and save one on exit")
	flag.Parse()

	if err := run(*romFile, *asModel, *level, *instructions, *timeout, *serialOut, *trace, *saveDir, *state); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(romFile, model, level string, instructions int, timeout time.Duration, serialOut, trace bool, saveDir string, state bool) error {
	if romFile == "" {
		return errors.New("no rom file given")
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	if trace {
		lvl = log.DebugLevel
	}
	logger := log.NewWithOutput(os.Stderr, lvl)

	rom, err := utils.LoadFile(romFile)
	if err != nil {
		return err
	}

	var gb *gameboy.GameBoy
	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if m := types.StringToModel(model); m != types.Unset {
		opts = append(opts, gameboy.AsModel(m))
	}
	if serialOut {
		opts = append(opts, gameboy.WithSerialDevice(&resultDevice{
			out:  os.Stdout,
			done: func() { gb.Stop() },
		}))
	}
	if trace {
		opts = append(opts, gameboy.Debug())
	}

	gb, err = gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, gb.Cartridge.Header())

	store := saves.NewStore(saveDir)
	game := gb.Cartridge.Header().Title
	if _, ok := gb.SaveRAM(); ok {
		if data, err := store.Latest(game, saves.RAM); err == nil {
			if err := gb.LoadRAM(data); err != nil {
				logger.Warnf("ignoring battery save: %v", err)
			}
		} else if !errors.Is(err, saves.ErrNoSave) {
			return err
		}
	}
	if state {
		if data, err := store.Latest(game, saves.State); err == nil {
			if err := gb.LoadState(data); err != nil {
				return err
			}
		} else if !errors.Is(err, saves.ErrNoSave) {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	if instructions > 0 {
		go func() {
			<-ctx.Done()
			gb.Stop()
		}()
		gb.RunFor(instructions)
	} else if err := gb.Run(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logger.Infof("executed %d instructions in %s", gb.CPU.Instructions, time.Since(start))

	if ram, ok := gb.SaveRAM(); ok {
		if _, err := store.Write(game, saves.RAM, ram); err != nil {
			return err
		}
	}
	if state {
		data, err := gb.SaveState()
		if err != nil {
			return err
		}
		save, err := store.Write(game, saves.State, data)
		if err != nil {
			return err
		}
		logger.Infof("saved state to %s", save.Path)
	}
	return nil
}
