package wizard

import (
	"context"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/cristianadrielbraun/beam/internal/render"
	"go.uber.org/zap"
)

// Workspace is everything one open create or edit flow needs: the wizard,
// its live preview, the canvas the preview is mounted on and the resolver
// that owns the uploaded logo reference. Callers hold the lock while they
// touch any field.
type Workspace struct {
	sync.Mutex

	Wizard  *Wizard
	Preview *render.Preview
	Slot    *render.Slot
	Logo    *render.LogoResolver

	// LogoRef is the display reference of the current logo.
	LogoRef string

	logoKey string
	logoImg image.Image
	// used is guarded by the registry lock.
	used time.Time
}

// Refresh resolves the logo and re-renders the preview from the wizard
// state. The remote logo is only refetched when it changed.
func (ws *Workspace) Refresh(ctx context.Context) error {
	d := ws.Wizard.Design
	ws.LogoRef = ws.Logo.Resolve(d.Logo)

	if key := d.Logo.Key(); key != ws.logoKey {
		ws.logoKey = key
		ws.logoImg, _ = ws.Logo.Image(ctx)
	}
	return ws.Preview.Update(ws.Wizard.Encoded(), d, ws.logoImg)
}

func (ws *Workspace) close() {
	ws.Preview.Unmount()
	ws.Logo.Close()
}

// Registry keeps one workspace per key, usually the session id plus the
// flow name. Workspaces untouched for longer than the idle TTL are dropped
// on a later access, so flows of sessions that simply expired do not hold
// their logos forever.
type Registry struct {
	mu          sync.Mutex
	items       map[string]*Workspace
	store       *render.BlobStore
	previewOpts []render.PreviewOption
	logoOpts    []render.LogoOption
	log         *zap.SugaredLogger

	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type RegistryOption func(*Registry)

func WithPreviewOptions(opts ...render.PreviewOption) RegistryOption {
	return func(r *Registry) { r.previewOpts = append(r.previewOpts, opts...) }
}

func WithLogoOptions(opts ...render.LogoOption) RegistryOption {
	return func(r *Registry) { r.logoOpts = append(r.logoOpts, opts...) }
}

// WithIdleTTL sets how long an untouched workspace is kept. Zero keeps
// workspaces until they are discarded.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idle = d }
}

func WithLogger(log *zap.SugaredLogger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

func NewRegistry(store *render.BlobStore, opts ...RegistryOption) *Registry {
	r := &Registry{
		items: make(map[string]*Workspace),
		store: store,
		log:   zap.NewNop().Sugar(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the workspace for key, starting an unseeded one if needed.
func (r *Registry) Get(key string) *Workspace {
	r.sweep()
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.items[key]; ok {
		ws.used = r.now()
		return ws
	}
	ws := r.newWorkspace(New(""))
	ws.used = r.now()
	r.items[key] = ws
	return ws
}

// Lookup returns the workspace for key without creating one.
func (r *Registry) Lookup(key string) (*Workspace, bool) {
	r.sweep()
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.items[key]
	if ok {
		ws.used = r.now()
	}
	return ws, ok
}

// Put replaces the workspace for key with a fresh one around w.
func (r *Registry) Put(key string, w *Wizard) *Workspace {
	r.sweep()
	ws := r.newWorkspace(w)

	r.mu.Lock()
	ws.used = r.now()
	old := r.items[key]
	r.items[key] = ws
	r.mu.Unlock()

	if old != nil {
		old.Lock()
		old.close()
		old.Unlock()
	}
	return ws
}

// Discard drops the workspace for key and releases its logo reference.
func (r *Registry) Discard(key string) {
	r.mu.Lock()
	ws, ok := r.items[key]
	delete(r.items, key)
	r.mu.Unlock()

	if ok {
		ws.Lock()
		ws.close()
		ws.Unlock()
		r.log.Debugw("workspace discarded", "key", key)
	}
}

// DiscardSession drops every workspace whose key starts with the session id.
func (r *Registry) DiscardSession(id string) {
	prefix := id + ":"
	r.mu.Lock()
	var keys []string
	for k := range r.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	r.mu.Unlock()

	for _, k := range keys {
		r.Discard(k)
	}
}

// sweep drops idle workspaces. It runs at most once per tenth of the idle
// TTL.
func (r *Registry) sweep() {
	r.mu.Lock()
	now := r.now()
	if r.idle <= 0 || now.Sub(r.lastSweep) < r.idle/10 {
		r.mu.Unlock()
		return
	}
	r.lastSweep = now
	var stale []*Workspace
	for k, ws := range r.items {
		if now.Sub(ws.used) > r.idle {
			stale = append(stale, ws)
			delete(r.items, k)
		}
	}
	r.mu.Unlock()

	for _, ws := range stale {
		ws.Lock()
		ws.close()
		ws.Unlock()
	}
	if len(stale) > 0 {
		r.log.Debugw("idle workspaces dropped", "count", len(stale))
	}
}

// Len returns the number of open workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Registry) newWorkspace(w *Wizard) *Workspace {
	previewOpts := append([]render.PreviewOption{render.WithLogger(r.log)}, r.previewOpts...)
	logoOpts := append([]render.LogoOption{render.WithLogoLogger(r.log)}, r.logoOpts...)
	ws := &Workspace{
		Wizard:  w,
		Preview: render.NewPreview(previewOpts...),
		Slot:    render.NewSlot(),
		Logo:    render.NewLogoResolver(r.store, logoOpts...),
	}
	ws.Preview.Mount(ws.Slot)
	return ws
}
