package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"polyvox/audio"
)

func main() {
	var (
		rate     = flag.Int("rate", 44100, "sample rate in Hz")
		channels = flag.Int("channels", 2, "output channels (1 or 2)")
		backend  = flag.String("backend", "portaudio", "audio backend: portaudio, oto or none")
		run      = flag.String("run", "", "script file with one command per line")
	)
	flag.Parse()

	synth, err := audio.New("poly", *rate, *channels)
	if err != nil {
		log.Fatal(err)
	}

	var out audio.Output
	switch *backend {
	case "portaudio":
		sink, err := audio.NewSink(*rate, *channels, 256)
		if err != nil {
			log.Fatal(err)
		}
		out = sink
	case "oto":
		sink, err := audio.NewOtoSink(*rate, *channels)
		if err != nil {
			log.Fatal(err)
		}
		out = sink
	case "none":
	default:
		log.Fatalf("unknown backend: %s", *backend)
	}

	if out != nil {
		out.AddSources(synth)
		if err := out.Start(); err != nil {
			log.Fatal(err)
		}
		defer out.Stop()
	}

	env := &env{
		synth:      synth,
		sampleRate: *rate,
		channels:   *channels,
	}

	if *run != "" {
		f, err := os.Open(*run)
		if err != nil {
			log.Fatal(err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if _, err := env.eval(line); err != nil {
				log.Fatal(err)
			}
		}
		if err := scanner.Err(); err != nil {
			log.Fatal(err)
		}
		f.Close()
	}

	if err := repl(env); err != nil && err != io.EOF {
		fmt.Println(err)
		os.Exit(1)
	}
}
