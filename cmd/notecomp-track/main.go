package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vsariola/notecomp/editor"
	"github.com/vsariola/notecomp/editor/tui"
	"github.com/vsariola/notecomp/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var logFile = flag.String("log", "", "write the log to `file`; the terminal is taken by the editor")
var logLevel = flag.String("loglevel", "info", "log level: debug, info, warn or error")
var output = flag.String("o", "composition.yml", "save to `file` when the composition was not read from a file")
var versionFlag = flag.Bool("v", false, "Print version.")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		log.Fatal("invalid log level: ", err)
	}
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal("could not create log file: ", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	model := editor.NewModel(editor.MakePreferences(), nil, logger)
	ui := tui.New(model, *output)
	if a := flag.Args(); len(a) > 0 {
		var err error
		if ui, err = tui.Open(model, a[0]); err != nil {
			log.Fatal("could not open composition: ", err)
		}
	}
	logger.Info("starting", "version", version.VersionOrHash, "file", model.FilePath())
	p := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
