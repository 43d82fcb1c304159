package runner

import (
	"context"
	"log"
	"time"

	"github.com/teamseven/codeconnect/internal/domain"
	"github.com/teamseven/codeconnect/internal/hub"
	"github.com/teamseven/codeconnect/internal/registry"
	"github.com/teamseven/codeconnect/internal/store"
)

// Runner is the execution delegate: it normalizes a run request into the
// provider's contract, issues the call, and routes the asynchronous result
// back into the owning room as a codeResponse broadcast. Failures are never
// fatal to the room or the connection; they surface as an error-shaped
// response in place of output.
type Runner struct {
	reg      *registry.Registry
	hub      *hub.Hub
	provider Provider
	store    store.Store
	timeout  time.Duration
}

// New creates a Runner. store may be nil to disable run history.
func New(reg *registry.Registry, h *hub.Hub, provider Provider, s store.Store, timeout time.Duration) *Runner {
	return &Runner{reg: reg, hub: h, provider: provider, store: s, timeout: timeout}
}

// Run executes code for roomID and broadcasts the outcome to the room. The
// room id is captured by value before the call; the room is re-checked only
// on entry, so a run whose room empties mid-flight still delivers to whoever
// is subscribed when it completes. Results land in completion order: of two
// overlapping runs, the one finishing last owns lastOutput.
func (r *Runner) Run(ctx context.Context, roomID, code, language, version string) {
	if !r.reg.Has(roomID) {
		return
	}

	runtime, pinned, filename := normalize(language, version)
	req := ExecRequest{
		Language: runtime,
		Version:  pinned,
		Files:    []ExecFile{{Name: filename, Content: code}},
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.provider.Execute(ctx, req)
	if err != nil {
		log.Printf("run %s/%s: %v", roomID, language, err)
		r.finish(roomID, language, pinned, domain.RunResponse{
			Event: domain.EvtCodeResponse,
			Run:   domain.RunResult{Output: "Error: " + err.Error()},
		}, false)
		return
	}

	r.finish(roomID, language, pinned, domain.RunResponse{
		Event:    domain.EvtCodeResponse,
		Language: resp.Language,
		Version:  resp.Version,
		Run:      resp.Run,
	}, true)
}

// finish caches the output, records the run, and fans the response out.
func (r *Runner) finish(roomID, language, version string, resp domain.RunResponse, ok bool) {
	r.reg.SetOutput(roomID, resp.Run.Output)

	if r.store != nil {
		rec := domain.RunRecord{
			Room:      roomID,
			Language:  language,
			Version:   version,
			Output:    resp.Run.Output,
			OK:        ok,
			CreatedAt: time.Now().UTC(),
		}
		if err := r.store.Save(rec); err != nil {
			log.Printf("run history save: %v", err)
		}
	}

	if data, err := domain.Encode(resp); err == nil {
		r.hub.Broadcast(roomID, data)
	}
}
