package lua

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rickchristie/listen"
	"go.uber.org/multierr"
)

// Importer loads Lua listeners from string listener sources such as
// "listeners/trace.lua:verbose". It keeps track of the listeners it loaded
// so that Close can release them.
type Importer struct {
	opts []Option

	mu     sync.Mutex
	loaded []*Listener
}

// NewImporter creates an importer loading listeners with the given options.
func NewImporter(opts ...Option) *Importer {
	return &Importer{opts: opts}
}

// Import loads the Lua file name with args as the script arguments.
func (i *Importer) Import(name string, args []string) (listen.Listener, error) {
	if !strings.EqualFold(filepath.Ext(name), ".lua") {
		return nil, &listen.DataError{Message: fmt.Sprintf("Listener '%s' is not a Lua file.", name)}
	}
	l, err := Load(name, args, i.opts...)
	if err != nil {
		return nil, &listen.DataError{Message: err.Error(), Err: err}
	}
	i.mu.Lock()
	i.loaded = append(i.loaded, l)
	i.mu.Unlock()
	return l, nil
}

// Loaded returns the listeners loaded so far.
func (i *Importer) Loaded() []*Listener {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]*Listener(nil), i.loaded...)
}

// Close closes every loaded listener.
func (i *Importer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	var err error
	for _, l := range i.loaded {
		err = multierr.Append(err, l.Close())
	}
	i.loaded = nil
	return err
}

var _ listen.Importer = (*Importer)(nil)
