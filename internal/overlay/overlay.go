// Package overlay tracks the UI surfaces drawn over the 3D world. The player
// controller only reads this state: any open surface, or a hidden crosshair,
// blocks world interaction.
package overlay

import (
	"fmt"
	"strings"
	"sync"
)

// Surface names one overlay that can cover the world view.
type Surface int

const (
	Modal Surface = iota
	Cart
	Wishlist
	Info
	Discount
	Settings
	Terms
	Contact
	ProductSearcher
	Console
	surfaceCount
)

var surfaceNames = [surfaceCount]string{
	Modal:           "modal",
	Cart:            "cart",
	Wishlist:        "wishlist",
	Info:            "info",
	Discount:        "discount",
	Settings:        "settings",
	Terms:           "terms",
	Contact:         "contact",
	ProductSearcher: "search",
	Console:         "console",
}

func (s Surface) String() string {
	if s < 0 || s >= surfaceCount {
		return fmt.Sprintf("surface(%d)", int(s))
	}
	return surfaceNames[s]
}

// ParseSurface maps a name such as "cart" back to its Surface.
func ParseSurface(name string) (Surface, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range surfaceNames {
		if n == name {
			return Surface(i), nil
		}
	}
	return 0, fmt.Errorf("unknown overlay %q", name)
}

// Surfaces holds open/closed flags for every Surface plus crosshair visibility.
// It is safe for concurrent use.
type Surfaces struct {
	mu        sync.RWMutex
	open      [surfaceCount]bool
	crosshair bool
}

// NewSurfaces returns all surfaces closed with the crosshair visible.
func NewSurfaces() *Surfaces {
	return &Surfaces{crosshair: true}
}

func (s *Surfaces) Open(sf Surface)  { s.set(sf, true) }
func (s *Surfaces) Close(sf Surface) { s.set(sf, false) }

func (s *Surfaces) set(sf Surface, open bool) {
	if sf < 0 || sf >= surfaceCount {
		return
	}
	s.mu.Lock()
	s.open[sf] = open
	s.mu.Unlock()
}

// IsOpen reports whether sf is open.
func (s *Surfaces) IsOpen(sf Surface) bool {
	if sf < 0 || sf >= surfaceCount {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open[sf]
}

// SetCrosshair shows or hides the crosshair.
func (s *Surfaces) SetCrosshair(visible bool) {
	s.mu.Lock()
	s.crosshair = visible
	s.mu.Unlock()
}

// CrosshairVisible reports crosshair visibility.
func (s *Surfaces) CrosshairVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.crosshair
}

// Blocked reports whether world input must be ignored: every surface is checked,
// and a hidden crosshair blocks as well.
func (s *Surfaces) Blocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.crosshair {
		return true
	}
	for _, open := range s.open {
		if open {
			return true
		}
	}
	return false
}

// OpenSurfaces lists the currently open surfaces in declaration order.
func (s *Surfaces) OpenSurfaces() []Surface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Surface
	for i, open := range s.open {
		if open {
			out = append(out, Surface(i))
		}
	}
	return out
}

// TouchGate is the one-way "touch enabled" switch. The intro sequence turns it on
// once it completes; nothing turns it off again.
type TouchGate struct {
	mu      sync.RWMutex
	enabled bool
}

func (g *TouchGate) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

func (g *TouchGate) Enable() {
	g.mu.Lock()
	g.enabled = true
	g.mu.Unlock()
}
