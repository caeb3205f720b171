package dub

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	type test struct {
		input string
		want  Command
	}
	tests := []test{
		{
			input: "panic",
			want: Command{
				Name: Identifier("panic"),
			},
		},
		{
			input: "on 60 64 67",
			want: Command{
				Name: Identifier("on"),
				Args: []Node{Int(60), Int(64), Int(67)},
			},
		},
		{
			input: "set cutoff 800.5",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("cutoff"), Float(800.5)},
			},
		},
		{
			input: "set osc1.fine -25",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("osc1.fine"), Int(-25)},
			},
		},
		{
			input: "preset fat-bass",
			want: Command{
				Name: Identifier("preset"),
				Args: []Node{Identifier("fat-bass")},
			},
		},
		{
			input: `render "a/file.wav" 2 60`,
			want: Command{
				Name: Identifier("render"),
				Args: []Node{String("a/file.wav"), Int(2), Int(60)},
			},
		},
		{
			input: `render ""`,
			want: Command{
				Name: Identifier("render"),
				Args: []Node{String("")},
			},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		got, err := Parse(test.input)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("\nwant: %+v\ngot:  %+v", test.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"1 set",
		`"no command"`,
	} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}
