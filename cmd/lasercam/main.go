package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/labfab/lasercam/board"
	"github.com/labfab/lasercam/config"
)

const usage = `Usage: lasercam <command> [flags]

Commands:
  bench     run a simulated camera and turret with a live stream
  monitor   follow a board's serial diagnostics
  registry  serve the board registry API
  view      watch a camera stream
  boards    list board profiles
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "bench":
		runBench(ctx, args)
	case "monitor":
		runMonitor(ctx, args)
	case "registry":
		runRegistry(ctx, args)
	case "view":
		runView(ctx, args)
	case "boards":
		runBoards()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to lasercam.yaml")
	err := fs.Parse(args)
	if err != nil {
		log.Fatalf("error parsing flags: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	return cfg
}

func runBoards() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFAMILY\tPSRAM\tCAMERA\tTURRET")
	for _, name := range board.Names() {
		p, _ := board.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\n", p.Name, p.Family, p.FastMemory, p.Camera != nil, p.Turret != nil)
	}
	w.Flush()
}
