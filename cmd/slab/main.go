package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jezek/xgb"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/slabwm/slab/internal/build"
	"github.com/slabwm/slab/internal/bus"
	"github.com/slabwm/slab/internal/config"
	"github.com/slabwm/slab/internal/control"
	"github.com/slabwm/slab/internal/wm"
	"github.com/slabwm/slab/pkg/sutureext"
	"github.com/thejerf/suture/v4"
)

type Options struct {
	Debug   bool   `doc:"enable debug"`
	Host    string `doc:"host to listen on for the control API" default:"127.0.0.1"`
	Port    int    `doc:"port to listen on for the control API" default:"8080"`
	Config  string `doc:"config file" default:".slab.yaml"`
	Display string `doc:"X display, DISPLAY when empty"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			bus.SetContext(ctx)

			store, err := openStore(options.Config)
			if err != nil {
				return err
			}
			if err := config.NormalizeConfig(&store); err != nil {
				return err
			}
			cfg, err := store.GetConfig()
			if err != nil {
				return err
			}
			if options.Debug {
				pp.Println(cfg)
			}

			conn, err := xgb.NewConnDisplay(options.Display)
			if err != nil {
				return err
			}
			defer conn.Close()

			session, err := wm.NewSession(conn, cfg)
			if err != nil {
				return err
			}

			super := sutureext.NewSimple("slab")
			sutureext.Add(super, session)
			sutureext.Add(super, control.NewServer(
				fmt.Sprintf("%s:%d", options.Host, options.Port), session, &store))

			err = super.Serve(ctx)
			if errors.Is(err, suture.ErrTerminateSupervisorTree) {
				// Quit command, clean exit.
				return nil
			}
			return err
		})
	})

	cli.Root().Version = build.Current.Version

	cli.Run()
}

func openStore(path string) (config.Store, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return config.Store{}, err
	}
	var driver config.Driver
	if strings.HasSuffix(path, ".json") {
		driver = config.NewJSON(path)
	} else {
		driver = config.NewYAML(path)
	}
	return config.NewStore(driver)
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
