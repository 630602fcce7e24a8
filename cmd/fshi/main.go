/*
Fshi imports a directory of FSH source files and prints the resulting
diagnostics.

It reads every *.fsh file under the given project directory, along
with that directory's fsh-project.toml, runs the importer, and prints
every diagnostic it produced. With -i, it instead opens an interactive
line-at-a-time session for pasting in and checking single entities
against the project's configuration without writing them to disk; in
that mode the project's .fsh files are not read, so each line is
imported on its own.

Usage:

	fshi [flags] [DIR]

The flags are:

	-v, --version
	    Give the current version of the importer and then exit.

	-c, --config FILE
	    Use the provided TOML file as the project configuration.
	    Defaults to "fsh-project.toml" in DIR.

	-i, --interactive
	    Read one entity declaration per line from stdin using
	    readline-based input, importing each as its own single-entity
	    document and printing its diagnostics immediately.

	-w, --width N
	    Wrap diagnostic output at N columns. Defaults to 100.
*/
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dekarrin/fshimport"
	"github.com/dekarrin/fshimport/internal/defprovider"
	"github.com/dekarrin/fshimport/internal/diagnostics"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/dekarrin/fshimport/internal/input"
	"github.com/dekarrin/fshimport/internal/projcfg"
	"github.com/dekarrin/fshimport/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitImportErrors
	ExitInitError
)

var (
	returnCode  int
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  = pflag.StringP("config", "c", "", `The TOML project configuration file. Defaults to "fsh-project.toml" in DIR`)
	interactive = pflag.BoolP("interactive", "i", false, "Read and import one entity declaration per line from stdin")
	width       = pflag.IntP("width", "w", diagnostics.DefaultWidth, "Column width to wrap diagnostic output at")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	dir := "."
	if pflag.NArg() > 0 {
		dir = pflag.Arg(0)
	}

	cfgPath := *configFile
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, "fsh-project.toml")
	}
	cfg, err := projcfg.LoadFile(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *interactive {
		runInteractive(cfg)
		return
	}

	runBatch(dir, cfg)
}

func runBatch(dir string, cfg projcfg.Config) {
	var rawInputs []fshimport.RawInput
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".fsh") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rawInputs = append(rawInputs, fshimport.RawInput{Path: path, Content: string(content)})
		return nil
	})
	if walkErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", walkErr.Error())
		returnCode = ExitInitError
		return
	}

	sink := ierrors.NewSink()
	docs := fshimport.Import(rawInputs, cfg, defprovider.Empty{}, sink)

	printResults(sink, *width)

	total := 0
	for _, doc := range docs {
		total += doc.Profiles.Len() + doc.Extensions.Len() + doc.Instances.Len() + doc.ValueSets.Len() + doc.CodeSystems.Len()
	}
	fmt.Printf("imported %d files, %d entities.\n", len(docs), total)

	if sink.HasErrors() {
		returnCode = ExitImportErrors
	}
}

func runInteractive(cfg projcfg.Config) {
	reader, err := input.NewInteractiveReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}
		sink := ierrors.NewSink()
		fshimport.Import([]fshimport.RawInput{{Path: "<stdin>", Content: line}}, cfg, defprovider.Empty{}, sink)
		printResults(sink, *width)
	}
}

func printResults(sink *ierrors.Sink, width int) {
	diags := sink.All()
	if len(diags) > 0 {
		fmt.Println(diagnostics.Render(diags, width))
	}
	fmt.Println(diagnostics.Summary(diags))
}
