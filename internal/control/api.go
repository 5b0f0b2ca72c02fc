package control

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/slabwm/slab/internal/build"
	"github.com/slabwm/slab/internal/bus"
	"github.com/slabwm/slab/internal/config"
	"github.com/slabwm/slab/internal/wm"
)

// Hubs bridging the in-process bus to the SSE stream. Register hooks
// them up to bus.Publish.
var (
	focusHub   = bus.NewHub[bus.EventFocusChanged]().Register()
	viewHub    = bus.NewHub[bus.EventViewChanged]().Register()
	layoutHub  = bus.NewHub[bus.EventLayoutChanged]().Register()
	outputsHub = bus.NewHub[bus.EventOutputsChanged]().Register()
	redrawHub  = bus.NewHub[bus.EventRedraw]().Register()
)

type buildOutput struct {
	Body build.Build
}

type stateOutput struct {
	Body wm.State
}

type configOutput struct {
	Body config.Config
}

type commandsOutput struct {
	Body struct {
		Commands []string `json:"commands"`
	}
}

type commandInput struct {
	Body struct {
		Action string `json:"action" doc:"Command name, see /api/commands"`
		Arg    string `json:"arg,omitempty" doc:"Command argument"`
	}
}

type commandOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func register(api huma.API, session *wm.Session, store *config.Store) {
	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Build information",
	}, func(ctx context.Context, _ *struct{}) (*buildOutput, error) {
		return &buildOutput{Body: build.Current}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Snapshot of monitors, clients and focus",
	}, func(ctx context.Context, _ *struct{}) (*stateOutput, error) {
		var st wm.State
		err := session.Dispatch(ctx, func(s *wm.Session) error {
			st = s.State()
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &stateOutput{Body: st}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-config",
		Method:      http.MethodGet,
		Path:        "/api/config",
		Summary:     "Loaded configuration",
	}, func(ctx context.Context, _ *struct{}) (*configOutput, error) {
		cfg, err := store.GetConfig()
		if err != nil {
			return nil, err
		}
		return &configOutput{Body: cfg}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-commands",
		Method:      http.MethodGet,
		Path:        "/api/commands",
		Summary:     "Invokable command names",
	}, func(ctx context.Context, _ *struct{}) (*commandsOutput, error) {
		names := wm.CommandNames()
		sort.Strings(names)
		out := &commandsOutput{}
		out.Body.Commands = names
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "run-command",
		Method:      http.MethodPost,
		Path:        "/api/command",
		Summary:     "Run a command on the dispatch goroutine",
	}, func(ctx context.Context, input *commandInput) (*commandOutput, error) {
		err := session.Dispatch(ctx, func(s *wm.Session) error {
			return s.RunCommand(input.Body.Action, input.Body.Arg)
		})
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("command failed", err)
		}
		out := &commandOutput{}
		out.Body.OK = true
		return out, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "stream-events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Live engine events",
	}, map[string]any{
		"focus":   bus.EventFocusChanged{},
		"view":    bus.EventViewChanged{},
		"layout":  bus.EventLayoutChanged{},
		"outputs": bus.EventOutputsChanged{},
		"redraw":  bus.EventRedraw{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		focusC, closeFocus := focusHub.Subscribe(ctx)
		defer closeFocus()
		viewC, closeView := viewHub.Subscribe(ctx)
		defer closeView()
		layoutC, closeLayout := layoutHub.Subscribe(ctx)
		defer closeLayout()
		outputsC, closeOutputs := outputsHub.Subscribe(ctx)
		defer closeOutputs()
		redrawC, closeRedraw := redrawHub.Subscribe(ctx)
		defer closeRedraw()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-focusC:
				send.Data(ev)
			case ev := <-viewC:
				send.Data(ev)
			case ev := <-layoutC:
				send.Data(ev)
			case ev := <-outputsC:
				send.Data(ev)
			case ev := <-redrawC:
				send.Data(ev)
			}
		}
	})
}
