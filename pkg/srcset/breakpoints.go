package srcset

import (
	"fmt"
	"maps"
)

// Built-in usage contexts.
const (
	// ContextTile is the default context: small preview images arranged
	// in a grid.
	ContextTile = "tile"

	// ContextNarrow targets images spanning a narrow column. It is also
	// the fallback for unrecognized contexts.
	ContextNarrow = "narrow"
)

// BreakpointTable maps each size key to the intrinsic pixel width declared
// in its descriptor. Widths must be positive and strictly increasing along
// the canonical key order; the built-in tables satisfy this by construction
// and [RegisterContext] enforces it for user-supplied ones.
type BreakpointTable map[SizeKey]int

// breakpoints holds one table per usage context. Populated at init and
// optionally extended by RegisterContext during startup; read-only
// afterwards.
var breakpoints = map[string]BreakpointTable{
	ContextTile: {
		LowMin:  145,
		LowMid:  220,
		LowMax:  280,
		HighMin: 290,
		HighMid: 440,
		HighMax: 560,
	},
	ContextNarrow: {
		LowMin:  360,
		LowMid:  420,
		LowMax:  480,
		HighMin: 720,
		HighMid: 840,
		HighMax: 960,
	},
}

// Table returns the breakpoint table for the given usage context, falling
// back to the narrow table for unknown contexts. The returned map is a copy
// and safe to hold.
func Table(context string) BreakpointTable {
	t, ok := breakpoints[context]
	if !ok {
		t = breakpoints[ContextNarrow]
	}
	return maps.Clone(t)
}

// Contexts returns the names of all known usage contexts.
func Contexts() []string {
	names := make([]string, 0, len(breakpoints))
	for name := range breakpoints {
		names = append(names, name)
	}
	return names
}

// RegisterContext adds a usage context with the given widths, indexed along
// the canonical key order (lowMin first, highMax last). Widths must be
// positive and strictly increasing. Registering an existing name replaces
// its table.
//
// RegisterContext is meant for startup-time configuration (e.g. from a
// config file) and must not be called concurrently with [Build].
func RegisterContext(name string, widths [6]int) error {
	if name == "" {
		return fmt.Errorf("context name must not be empty")
	}
	prev := 0
	for i, w := range widths {
		if w <= prev {
			return fmt.Errorf("context %q: width %d at %s must exceed %d",
				name, w, canonicalKeys[i], prev)
		}
		prev = w
	}

	t := make(BreakpointTable, len(canonicalKeys))
	for i, key := range canonicalKeys {
		t[key] = widths[i]
	}
	breakpoints[name] = t
	return nil
}
