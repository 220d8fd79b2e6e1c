// Package delveq contains a CLI-driven engine for getting commands and
// advancing a DelveQuest game continuously until the player quits, wins, or
// dies and declines to play again.
package delveq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dialog"
	"github.com/dekarrin/delveq/internal/dice"
	"github.com/dekarrin/delveq/internal/dqw"
	"github.com/dekarrin/delveq/internal/game"
	"github.com/dekarrin/delveq/internal/input"
	"github.com/dekarrin/delveq/internal/logging"
	"github.com/dekarrin/rosed"
	"github.com/sirupsen/logrus"
)

// Options configures an Engine.
type Options struct {
	// WorldFile is the DQW data or manifest file the world is loaded from.
	WorldFile string

	// ForceDirect reads input straight from the stream even when readline
	// could be used.
	ForceDirect bool

	// Width is the column width output is wrapped to. Defaults to
	// game.DefaultWidth.
	Width int

	// Seed makes every random outcome reproducible. Zero means a seed based
	// on the time is used.
	Seed int64

	// Debug enables the DEBUG command.
	Debug bool

	// Log receives diagnostics. If nil, they are discarded.
	Log *logrus.Logger
}

// Engine contains the things needed to run a game from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	world       *game.World
	in          command.Reader
	out         *bufio.Writer
	width       int
	forceDirect bool
	running     bool
	log         *logrus.Entry
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if opts.Width < 2 {
		opts.Width = game.DefaultWidth
	}

	var base *logrus.Entry
	if opts.Log != nil {
		base = logrus.NewEntry(opts.Log)
	}
	log := logging.Component(base, "engine")

	// load world file
	worldData, err := dqw.LoadResourceBundle(opts.WorldFile)
	if err != nil {
		return nil, err
	}

	var src dice.Source
	if opts.Seed != 0 {
		src = rand.New(rand.NewSource(opts.Seed))
	}

	var lines game.DialogProvider
	if worldData.Dialog != "" {
		provider, err := dialog.Load(worldData.Dialog, dice.New(src))
		if err != nil {
			log.WithError(err).Warn("dialog file could not be loaded; NPCs will have nothing to say")
		} else {
			lines = provider
		}
	}

	cfg := worldData.Config
	cfg.Width = opts.Width
	cfg.Debug = opts.Debug

	world, err := game.New(worldData, cfg, game.Options{
		Dialog: lines,
		Random: src,
		Log:    base,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing game: %w", err)
	}

	eng := &Engine{
		world:       world,
		out:         bufio.NewWriter(outputStream),
		width:       opts.Width,
		forceDirect: opts.ForceDirect,
		log:         log.WithField("session", world.SessionID.String()),
	}

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		eng.in, err = input.NewInteractiveReader(input.InteractiveOptions{
			HistoryLimit: cfg.HistorySize,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running game engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the game until the game ends. The game ends when the player quits, wins,
// declines to play again after dying, or the input runs out.
func (eng *Engine) RunUntilQuit() error {
	title := eng.world.Config.Title
	if title == "" {
		title = "DelveQuest"
	}
	introMsg := "Welcome to " + title + "\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += strings.Repeat("=", len(introMsg)-1) + "\n"
	introMsg += "\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}
	if err := eng.writeNarration(eng.world.Start()); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return eng.write("Goodbye.\n")
			}
			return fmt.Errorf("get user command: %w", err)
		}

		result := eng.world.Handle(line)
		if err := eng.writeNarration(result.Narration); err != nil {
			return err
		}

		switch result.Status {
		case game.Quit:
			eng.running = false
		case game.Won:
			eng.log.Info("game won")
			eng.running = false
			if err := eng.write("\nCongratulations, you have won! Thanks for playing.\n"); err != nil {
				return err
			}
		case game.Lost:
			eng.log.Info("game lost")
			again, err := eng.askPlayAgain()
			if err != nil {
				return err
			}
			if !again {
				eng.running = false
				if err := eng.write("Goodbye.\n"); err != nil {
					return err
				}
				break
			}
			if err := eng.writeNarration(eng.world.Reset()); err != nil {
				return err
			}
		}
	}

	return nil
}

// askPlayAgain asks the player whether to start over until it gets a yes or
// a no. Running out of input counts as no.
func (eng *Engine) askPlayAgain() (bool, error) {
	eng.in.AllowBlank(true)
	defer eng.in.AllowBlank(false)

	for {
		if err := eng.write("\nPlay again? (y/n)\n"); err != nil {
			return false, err
		}
		answer, err := eng.in.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("get user answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// writeNarration wraps narration to the console width and writes it followed
// by a blank line. Empty narration writes nothing.
func (eng *Engine) writeNarration(narration string) error {
	if narration == "" {
		return nil
	}
	lines := strings.Split(narration, "\n")
	for i := range lines {
		if len(lines[i]) > eng.width {
			lines[i] = rosed.Edit(lines[i]).Wrap(eng.width).String()
		}
	}
	return eng.write(strings.Join(lines, "\n") + "\n\n")
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
