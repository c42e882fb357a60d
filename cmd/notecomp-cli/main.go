package main

import (
	"bytes"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/notecomp/editor"
	"github.com/vsariola/notecomp/editor/gomidi"
	"github.com/vsariola/notecomp/listing"
	"github.com/vsariola/notecomp/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	markup := flag.Bool("x", false, "Print the structural markup of the composition.")
	list := flag.Bool("l", false, "Print a human readable listing of the composition.")
	tmplDir := flag.String("t", "", "When listing, use the templates in this directory instead of the standard templates.")
	midiOut := flag.Bool("m", false, "Export the composition as a Standard MIDI File (.mid).")
	yamlOut := flag.Bool("y", false, "Write the composition back as a .yml file.")
	width := flag.Float64("w", 0, "Give every note this width, repacking the groups, before any output.")
	outPath := flag.String("o", "", "Directory or filename where to write the .mid and .yml outputs. By default, they are placed next to the composition.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	logLevel := flag.String("loglevel", "warn", "Log level: debug, info, warn or error.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	prefs := editor.MakePreferences()
	if *width > 0 {
		prefs.UniformWidth = *width
	}
	var lister *listing.Lister
	if *list {
		var err error
		if *tmplDir != "" {
			lister, err = listing.NewFromTemplates(prefs.NoteHeight, *tmplDir)
		} else {
			lister, err = listing.New(prefs.NoteHeight)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating lister: %v\n", err)
			os.Exit(1)
		}
	}
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			_, err := os.Stdout.Write(contents)
			return err
		}
		dir, name := filepath.Split(filename)
		if *outPath != "" {
			if info, err := os.Stat(*outPath); err == nil && info.IsDir() {
				dir = *outPath
			} else {
				outdir, outname := filepath.Split(*outPath)
				if outdir != "" {
					dir = outdir
				}
				if outname != "" {
					name = outname
				}
			}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
		f := filepath.Join(dir, name)
		if original, err := os.ReadFile(f); err == nil {
			if bytes.Equal(original, contents) {
				return nil
			}
			if *safe {
				return fmt.Errorf("file %v would be overwritten", f)
			}
		}
		if dir != "" {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %w", dir, err)
			}
		}
		return os.WriteFile(f, contents, 0644)
	}
	process := func(filename string) error {
		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %w", filename, err)
		}
		model := editor.NewModel(prefs, &editor.MemoryClipboard{}, logger.With("file", filename))
		if err := model.ReadSheet(f); err != nil {
			return err
		}
		if *width > 0 {
			model.SelectAll().Do()
			model.SameWidth().Do()
			model.ClearSelection().Do()
		}
		if *markup {
			fmt.Print(model.Markup())
		}
		if *list {
			title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
			if err := lister.Render(os.Stdout, title, model.Sheet()); err != nil {
				return err
			}
		}
		if *midiOut {
			var buf bytes.Buffer
			if err := gomidi.WriteSMF(&buf, model.Notes(), prefs.TicksPerBeat, float64(prefs.BPM)); err != nil {
				return err
			}
			if err := output(filename, ".mid", buf.Bytes()); err != nil {
				return fmt.Errorf("error outputting mid file: %w", err)
			}
		}
		if *yamlOut {
			contents, err := yaml.Marshal(model.Sheet())
			if err != nil {
				return fmt.Errorf("could not marshal the composition as yaml file: %w", err)
			}
			if err := output(filename, ".yml", contents); err != nil {
				return fmt.Errorf("error outputting yaml file: %w", err)
			}
		}
		logger.Debug("processed", "file", filename, "notes", model.Composition().Len())
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			files, _ := filepath.Glob(filepath.Join(param, "*.yml"))
			jsonfiles, _ := filepath.Glob(filepath.Join(param, "*.json"))
			for _, file := range append(files, jsonfiles...) {
				if err := process(file); err != nil {
					fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
					retval = 1
				}
			}
		} else {
			if err := process(param); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Notecomp command line utility for processing compositions.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
