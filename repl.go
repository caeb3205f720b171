package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"polyvox/audio"
	"polyvox/dub"
)

type env struct {
	synth      *audio.Synth
	sampleRate int
	channels   int
}

func (e *env) eval(input string) (string, error) {
	command, err := dub.Parse(input)
	if err != nil {
		return "", err
	}
	name := string(command.Name)
	for _, cmd := range commands {
		if name != cmd.name {
			continue
		}
		if cmd.arity < 0 {
			arity := -cmd.arity
			if len(command.Args) < arity {
				return "", fmt.Errorf("%s: wrong number of arguments: need at least %v, got %v",
					cmd.name, arity, len(command.Args))
			}
		} else if len(command.Args) != cmd.arity {
			return "", fmt.Errorf("%s: wrong number of arguments: want %v, got %v",
				cmd.name, cmd.arity, len(command.Args))
		}
		result, err := cmd.run(e, command.Args)
		if err != nil {
			return result, fmt.Errorf("%s error: %w", cmd.name, err)
		}
		return result, nil
	}
	return "", fmt.Errorf("unknown command: %s", name)
}

func repl(env *env) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return err
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		if result, err := env.eval(line); err != nil {
			fmt.Println(err)
		} else if result != "" {
			fmt.Println(result)
		}
	}
}

type command struct {
	name  string
	run   func(*env, []dub.Node) (string, error)
	arity int // -n means len(args) must be >= n
}

var commands = []command{
	{"on", onCommand, -1},
	{"off", offCommand, 1},
	{"panic", panicCommand, 0},
	{"set", setCommand, 2},
	{"get", getCommand, 1},
	{"params", paramsCommand, 0},
	{"preset", presetCommand, 1},
	{"render", renderCommand, -3},
}

func onCommand(env *env, args []dub.Node) (string, error) {
	var note int
	if err := readArgs(args[:1], &note); err != nil {
		return "", err
	}
	velocity := 100
	if len(args) > 1 {
		if err := readArgs(args[1:2], &velocity); err != nil {
			return "", err
		}
	}
	env.synth.NoteOn(note, velocity)
	return "", nil
}

func offCommand(env *env, args []dub.Node) (string, error) {
	var note int
	if err := readArgs(args, &note); err != nil {
		return "", err
	}
	env.synth.NoteOff(note)
	return "", nil
}

func panicCommand(env *env, args []dub.Node) (string, error) {
	env.synth.AllNotesOff()
	return "", nil
}

func setCommand(env *env, args []dub.Node) (string, error) {
	var param string
	var value float64
	if err := readArgs(args, &param, &value); err != nil {
		return "", err
	}
	if _, ok := env.synth.Get(param); !ok {
		return "", fmt.Errorf("unknown parameter: %s", param)
	}
	env.synth.Set(param, value)
	v, _ := env.synth.Get(param)
	return fmt.Sprintf("%s = %g", param, v), nil
}

func getCommand(env *env, args []dub.Node) (string, error) {
	var param string
	if err := readArgs(args, &param); err != nil {
		return "", err
	}
	v, ok := env.synth.Get(param)
	if !ok {
		return "", fmt.Errorf("unknown parameter: %s", param)
	}
	return fmt.Sprintf("%s = %g", param, v), nil
}

func paramsCommand(env *env, args []dub.Node) (string, error) {
	return strings.Join(env.synth.Parameters(), "\n"), nil
}

func presetCommand(env *env, args []dub.Node) (string, error) {
	var name string
	if err := readArgs(args, &name); err != nil {
		return "", err
	}
	if err := audio.LoadPreset(name, env.synth); err != nil {
		return "", fmt.Errorf("%w (have: %s)", err, strings.Join(audio.PresetNames(), ", "))
	}
	return "loaded " + name, nil
}

func renderCommand(env *env, args []dub.Node) (string, error) {
	var file string
	var seconds float64
	if err := readArgs(args[:2], &file, &seconds); err != nil {
		return "", err
	}
	var notes []int
	for _, arg := range args[2:] {
		n, ok := arg.(dub.Int)
		if !ok {
			return "", errors.New("render: notes must be integers")
		}
		notes = append(notes, int(n))
	}
	if err := renderWav(env, file, seconds, notes); err != nil {
		return "", err
	}
	return "wrote " + file, nil
}

func readArgs(args []dub.Node, slots ...interface{}) error {
	if len(args) != len(slots) {
		return errors.New("not enough arguments")
	}
	for n, arg := range args {
		dest := slots[n]
		switch p := dest.(type) {
		case *string:
			switch s := arg.(type) {
			case dub.String:
				*p = string(s)
			case dub.Identifier:
				*p = string(s)
			default:
				return fmt.Errorf("argument error: expected a string or identifier")
			}
		case *float64:
			switch n := arg.(type) {
			case dub.Float:
				*p = float64(n)
			case dub.Int:
				*p = float64(n)
			default:
				return fmt.Errorf("argument error: expected a number")
			}
		case *int:
			n, ok := arg.(dub.Int)
			if !ok {
				return fmt.Errorf("argument error: expected an integer")
			}
			*p = int(n)
		default:
			panic("readArgs: unhandled destination type: " + fmt.Sprint(p))
		}
	}
	return nil
}
