// Package notify carries toast notifications from the cart views to whatever
// presents them, over a channel so that triggering never waits on presenting.
package notify

import (
	"github.com/alecthomas/types/optional"
)

type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

func (v Variant) String() string {
	if v == VariantDestructive {
		return "destructive"
	}
	return "default"
}

// Action is a link rendered inside a toast, e.g. "Go To Cart".
type Action struct {
	Label string
	Href  string
}

type Toast struct {
	// Audience is the cart owner the toast is meant for.
	Audience    string
	Variant     Variant
	Description string
	Action      optional.Option[Action]
}

type Notifier interface {
	Notify(t Toast)
}

type NotifierFunc func(t Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// For returns a Notifier that addresses every toast to audience.
func For(n Notifier, audience string) Notifier {
	return NotifierFunc(func(t Toast) {
		t.Audience = audience
		n.Notify(t)
	})
}

// ResultToast builds the toast for a mutation outcome.
func ResultToast(success bool, description string) Toast {
	variant := VariantDefault
	if !success {
		variant = VariantDestructive
	}
	return Toast{Variant: variant, Description: description}
}
