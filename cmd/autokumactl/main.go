// Command autokumactl is a small operator CLI for inspecting and
// manually driving an AutoKuma identifier store, without needing to
// touch Kuma's own UI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/autokuma-go/autokuma/internal/config"
	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/autokuma-go/autokuma/internal/store"
	"github.com/pkg/errors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to an AutoKuma config file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		return errors.New("usage: autokumactl [-config path] <list|forget> [kind] [name]")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	s, err := store.Open(cfg.StorePath)
	if err != nil {
		return errors.Wrap(err, "opening identifier store")
	}
	defer s.Close()

	switch args[0] {
	case "list":
		if len(args) != 2 {
			return errors.New("usage: autokumactl list <monitor|notification|docker_host>")
		}
		return listKind(s, model.Kind(args[1]))
	case "forget":
		if len(args) != 3 {
			return errors.New("usage: autokumactl forget <monitor|notification|docker_host> <name>")
		}
		return s.DeleteID(model.Name{Kind: model.Kind(args[1]), Value: args[2]})
	default:
		return errors.Errorf("unknown command %q", args[0])
	}
}

func listKind(s *store.Store, kind model.Kind) error {
	entries, err := s.List(kind)
	if err != nil {
		return err
	}
	for name, id := range entries {
		fmt.Printf("%s\t%d\n", name, id)
	}
	return nil
}
