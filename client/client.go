// Package client implements the blinking clients a provider drives on every beat.
package client

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/blink/notify"
	"github.com/robmorgan/blink/profile"
)

// Kind identifies a client variant.
type Kind int

const (
	KindColor Kind = iota
	KindOpacity
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return profile.ClientTypeColor
	case KindOpacity:
		return profile.ClientTypeOpacity
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a configured client type to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case profile.ClientTypeColor:
		return KindColor, nil
	case profile.ClientTypeOpacity:
		return KindOpacity, nil
	default:
		return 0, errors.WithStackTrace(fmt.Errorf("unknown client type %q", s))
	}
}

// Interface is implemented by every blinking client. The set of implementations is
// closed: Color and Opacity.
type Interface interface {
	Kind() Kind

	// Initialize prepares the client before its first beat.
	Initialize() error

	BlinkOn()
	BlinkOff()

	// Dispose releases whatever Initialize attached. Calling it twice is a no-op.
	Dispose()

	// Subscribe registers fn for property change notifications.
	Subscribe(fn func(property string)) *notify.Subscription

	blinkingClient()
}
