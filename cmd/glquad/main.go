package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/fosdem/glquad/lib/config"
	glqlog "github.com/fosdem/glquad/lib/log"
	"github.com/fosdem/glquad/lib/viewer"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	vertexPtr := flag.String("vertex", "", "Vertex shader path (overrides the config)")
	fragmentPtr := flag.String("fragment", "", "Fragment shader path (overrides the config)")
	noColourPtr := flag.Bool("no-colour", false, "Disable coloured log output")
	flag.Usage = func() {
		log.Printf("Usage: %s [flags] [config file]", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if flag.NArg() > 0 {
		var err error
		cfg, err = config.Parse(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	}
	if *vertexPtr != "" {
		cfg.Shaders.Vertex = config.CfgPath(*vertexPtr)
	}
	if *fragmentPtr != "" {
		cfg.Shaders.Fragment = config.CfgPath(*fragmentPtr)
	}

	level, err := cfg.Level()
	if err != nil {
		log.Fatal(err)
	}
	glqlog.Setup(os.Stderr, level, !*noColourPtr)

	err = viewer.New(cfg).Run()
	if err != nil {
		log.Fatal(err)
	}
}
