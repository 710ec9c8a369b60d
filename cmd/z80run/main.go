// Command z80run is the reference front end for the z80 interpreter: it
// loads a ROM or transient image, auto-detects (or is told) which system
// shell to run it under, and drives that shell to completion.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eightbit-systems/z80sys/basicsbc"
	"github.com/eightbit-systems/z80sys/cpm"
	"github.com/eightbit-systems/z80sys/host"
	"github.com/eightbit-systems/z80sys/loader"
)

func main() {
	var system string
	var portFlag string

	root := &cobra.Command{
		Use:   "z80run <image>",
		Short: "Run a Z80 ROM or CP/M transient under the matching host shell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], system, portFlag)
		},
		SilenceUsage: true,
	}
	root.Flags().StringVar(&system, "system", "", "override auto-detect: basic or cpm")
	root.Flags().StringVar(&portFlag, "port", "", "override UART base port (e.g. 0x80)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, systemFlag string, portFlag string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", loader.ErrFileNotFound, path)
		}
		return fmt.Errorf("z80run: reading %s: %w", path, err)
	}

	sys := loader.Detect(path, data)
	if systemFlag != "" {
		switch strings.ToLower(systemFlag) {
		case "basic":
			sys = loader.SystemBasicSBC
		case "cpm":
			sys = loader.SystemCPM
		default:
			return fmt.Errorf("z80run: invalid --system %q: want basic or cpm", systemFlag)
		}
	}

	switch sys {
	case loader.SystemCPM:
		return runCPM(data)
	default:
		port, err := resolvePort(data, portFlag)
		if err != nil {
			return err
		}
		return runBasicSBC(data, port)
	}
}

func resolvePort(rom []byte, portFlag string) (byte, error) {
	if portFlag == "" {
		return basicsbc.DetectPort(rom), nil
	}
	s := strings.TrimPrefix(strings.ToLower(portFlag), "0x")
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("z80run: invalid --port %q: %w", portFlag, err)
	}
	return byte(v), nil
}

func runCPM(image []byte) error {
	m := cpm.NewMachine(os.Stdout)
	if err := m.Load(image); err != nil {
		return fmt.Errorf("z80run: %w", err)
	}
	m.Run()
	return nil
}

func runBasicSBC(rom []byte, port byte) error {
	m := basicsbc.NewMachine(port, os.Stdout)

	var loadErr error
	if loader.IsIntelHex(rom) {
		loadErr = m.LoadHexImage(rom)
	} else {
		loadErr = m.LoadROM(rom)
	}
	if loadErr != nil {
		return fmt.Errorf("z80run: %w", loadErr)
	}

	term := host.NewTerminalHost()
	if err := term.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "z80run: %v (continuing without raw mode)\n", err)
	} else {
		defer term.Stop()
	}

	ctx, cancel := host.NotifyContext()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if m.Tick(basicsbc.DefaultQuantum, term.Poll) {
			return nil
		}
	}
}
