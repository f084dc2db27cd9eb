package device

import (
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"go.viam.com/devicepose/logging"
)

// A Registry maps device names to frames. Registering a name that is already present replaces the
// entry; the replaced frame itself is left untouched. Enumerations are ordered by name.
type Registry struct {
	mu     sync.RWMutex
	frames map[string]Frame
	logger logging.Logger
}

// NewRegistry returns an empty registry. A nil logger discards logs.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewBlankLogger("registry")
	}
	return &Registry{frames: map[string]Frame{}, logger: logger}
}

// Set registers a frame under its name. A nil frame is ignored.
func (r *Registry) Set(frame Frame) {
	if frame == nil {
		r.logger.Warn("ignoring attempt to register a nil device")
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.frames[frame.Name()]; ok && old != frame {
		r.logger.Debugw("replacing registered device", "name", frame.Name(), "old_id", old.ID(), "new_id", frame.ID())
	}
	r.frames[frame.Name()] = frame
}

// Get returns the frame registered under name, if any.
func (r *Registry) Get(name string) (Frame, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	frame, ok := r.frames[name]
	return frame, ok
}

// GetCamera returns the camera registered under name. It reports false when the name is absent
// or refers to a plain device.
func (r *Registry) GetCamera(name string) (*Camera, bool) {
	frame, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	cam, ok := frame.(*Camera)
	return cam, ok
}

// Remove drops the registry's reference to name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.frames[name]; !ok {
		return NewNotFoundError(name)
	}
	delete(r.frames, name)
	r.logger.Debugw("removed device", "name", name)
	return nil
}

// Clear removes every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Debugw("clearing registry", "count", len(r.frames))
	r.frames = map[string]Frame{}
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.frames)
}

// Keys returns the registered names.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := lo.Keys(r.frames)
	slices.Sort(keys)
	return keys
}

// Values returns the registered frames.
func (r *Registry) Values() []Frame {
	return lo.Map(r.Items(), func(item lo.Entry[string, Frame], _ int) Frame {
		return item.Value
	})
}

// Items returns the registered name and frame pairs.
func (r *Registry) Items() []lo.Entry[string, Frame] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := lo.Entries(r.frames)
	slices.SortFunc(items, func(a, b lo.Entry[string, Frame]) int {
		return strings.Compare(a.Key, b.Key)
	})
	return items
}
