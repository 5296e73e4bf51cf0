// Package plot provides an in-memory drawing surface for gonewton plots
// and exports its contents as a Desmos calculator state.
package plot

import (
	"sort"
	"sync"

	"github.com/njchilds90/gonewton"
)

// Canvas is a concurrency-safe gonewton.Plotter. Concurrent solves share it
// with last-writer-wins semantics.
type Canvas struct {
	// showMu serialises whole redraws; mu guards the fields below.
	showMu   sync.Mutex
	mu       sync.RWMutex
	prims    map[string]gonewton.Primitive
	order    []string
	viewport gonewton.Viewport
	drawn    []string
}

func NewCanvas() *Canvas {
	return &Canvas{prims: map[string]gonewton.Primitive{}}
}

func (c *Canvas) SetPrimitive(id string, p gonewton.Primitive) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.prims[id]; !ok {
		c.order = append(c.order, id)
	}
	p.ID = id
	c.prims[id] = p
	return nil
}

func (c *Canvas) RemovePrimitive(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.prims[id]; !ok {
		return nil
	}
	delete(c.prims, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Canvas) SetViewport(v gonewton.Viewport) error {
	c.mu.Lock()
	c.viewport = v
	c.mu.Unlock()
	return nil
}

// Show draws a successful outcome over the previous one. Failed outcomes
// leave the canvas as it was.
func (c *Canvas) Show(o gonewton.Outcome) error {
	if !o.OK() {
		return nil
	}
	c.showMu.Lock()
	defer c.showMu.Unlock()

	c.mu.RLock()
	previous := append([]string(nil), c.drawn...)
	c.mu.RUnlock()

	if err := o.Draw(c, previous); err != nil {
		return err
	}
	c.mu.Lock()
	c.drawn = o.Plot.IDs()
	c.mu.Unlock()
	return nil
}

// Reset removes every primitive a solve can draw.
func (c *Canvas) Reset() error {
	c.showMu.Lock()
	defer c.showMu.Unlock()

	if err := gonewton.Retract(c, gonewton.KnownIDs(gonewton.DefaultKnownPoints)); err != nil {
		return err
	}
	c.mu.Lock()
	c.drawn = nil
	c.viewport = gonewton.Viewport{}
	c.mu.Unlock()
	return nil
}

// Primitives returns the current primitives in insertion order.
func (c *Canvas) Primitives() []gonewton.Primitive {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]gonewton.Primitive, len(c.order))
	for i, id := range c.order {
		out[i] = c.prims[id]
	}
	return out
}

// IDs returns the current primitive ids, sorted.
func (c *Canvas) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.prims))
	for id := range c.prims {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Canvas) Viewport() gonewton.Viewport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewport
}
