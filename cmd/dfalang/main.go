package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"dfalang/lexengine"
	"dfalang/printer"
)

// dotDump mirrors cmd/regexviz's -o/-png handling: write the chosen
// group's DOT graph either to a file (or stdout for "-") or, with -png,
// pipe it through the "dot" binary to render an image directly.
func dotDump(logger *slog.Logger, group, out string, png bool) {
	p := lexengine.NewParser(lexengine.WithLogger(logger))

	var dst *os.File
	if out == "-" || out == "" {
		dst = os.Stdout
	} else {
		f, err := os.Create(out)
		if err != nil {
			logger.Error("creating DOT output file", "path", out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		dst = f
	}

	if !png {
		if err := p.ExportGroupDOT(dst, group); err != nil {
			logger.Error("exporting group DOT", "group", group, "error", err)
			os.Exit(1)
		}
		return
	}

	cmd := exec.Command("dot", "-Tpng")
	cmd.Stdout = dst
	stdin, err := cmd.StdinPipe()
	if err != nil {
		logger.Error("opening dot stdin pipe", "error", err)
		os.Exit(1)
	}
	if err := cmd.Start(); err != nil {
		logger.Error("starting dot", "error", err)
		os.Exit(1)
	}
	if err := p.ExportGroupDOT(stdin, group); err != nil {
		logger.Error("exporting group DOT", "group", group, "error", err)
		os.Exit(1)
	}
	stdin.Close()
	if err := cmd.Wait(); err != nil {
		logger.Error("rendering DOT to PNG", "error", err)
		os.Exit(1)
	}
}

func main() {
	dot := flag.String("dot", "", "dump the named scanner group's compiled automaton as Graphviz DOT (e.g. NORMAL) and exit")
	out := flag.String("o", "-", "output path for -dot; \"-\" means stdout")
	png := flag.Bool("png", false, "with -dot, pipe through the \"dot\" binary and write a PNG instead of raw DOT text")
	flag.Parse()

	level := slog.LevelInfo
	if os.Getenv("DFALANG_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *dot != "" {
		dotDump(logger, *dot, *out, *png)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		logger.Error("missing source file argument", "usage", fmt.Sprintf("%s <source file>", os.Args[0]))
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("reading source file", "path", args[0], "error", err)
		os.Exit(1)
	}

	p := lexengine.NewParser(lexengine.WithLogger(logger))
	mod, err := p.Run(string(data))
	if err != nil {
		logger.Error("parsing source file", "path", args[0], "error", err)
		os.Exit(1)
	}

	fmt.Print(printer.Print(mod))
}
