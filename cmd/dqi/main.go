/*
Dqi starts an interactive DelveQuest session.

It reads in a world file and starts the game in the designated starting room.
The interpreter will then start printing what is happening in the game to
stdout and will read user input from stdin until the game is over or the "QUIT"
command is input. Diagnostics are written to stderr.

Usage:

	dqi [flags]

The flags are:

	--version
		Give the current version of DelveQuest and then exit.

	-w/--world [FILE]
		Use the provided DQW resource file for the world. Defaults to the file
		"world.dqw" in the current working directory.

	-d/--direct
		Force reading directly from the console as opposed to using readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

	--seed [N]
		Seed all dice rolls and random choices with N so that a session can be
		replayed exactly. By default the seed is based on the current time.

	--width [N]
		Wrap output at N columns. Defaults to 80.

	--log-level [LEVEL]
		Write diagnostics at LEVEL or above. One of "debug", "info", "warn", or
		"error". Defaults to the DELVEQ_LOG_LEVEL environment variable, or "warn"
		if that is not set.

	--log-format [FORMAT]
		Write diagnostics as "text" or "json". Defaults to the DELVEQ_LOG_FORMAT
		environment variable, or "text" if that is not set.

	--debug
		Enable the DEBUG command for inspecting and changing the world while
		playing.

Once a session has started, the user input will be parsed for DelveQuest
commands. For an explanation of the commands, type "HELP" once in a session. To
exit the interpreter, type "QUIT".
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/delveq"
	"github.com/dekarrin/delveq/internal/logging"
	"github.com/dekarrin/delveq/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the game.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = pflag.Bool("version", false, "Gives the version info")
	worldFile   string
	forceDirect bool
	seed        int64
	width       int
	logLevel    string
	logFormat   string
	debugMode   bool
)

func init() {
	const (
		defaultWorldFile = "world.dqw"
		worldUsage       = "the DQW world data or manifest file that contains the definition of the world"
		forceDirectUsage = "force reading directly from stdin instead of going through readline where possible"
	)
	pflag.StringVarP(&worldFile, "world", "w", defaultWorldFile, worldUsage)
	pflag.BoolVarP(&forceDirect, "direct", "d", false, forceDirectUsage)
	pflag.Int64Var(&seed, "seed", 0, "seed for dice rolls and random choices; 0 picks one from the current time")
	pflag.IntVar(&width, "width", 80, "column width to wrap output at")
	pflag.StringVar(&logLevel, "log-level", "", "minimum level of diagnostics to write to stderr")
	pflag.StringVar(&logFormat, "log-format", "", "format of diagnostics, 'text' or 'json'")
	pflag.BoolVar(&debugMode, "debug", false, "enable the DEBUG command")
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	log := logging.New(logLevel, logFormat)

	gameEng, initErr := delveq.New(os.Stdin, os.Stdout, delveq.Options{
		WorldFile:   worldFile,
		ForceDirect: forceDirect,
		Width:       width,
		Seed:        seed,
		Debug:       debugMode,
		Log:         log,
	})
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	err := gameEng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
