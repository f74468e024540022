// Package profile names the client types a blinking provider can be built from.
package profile

const (
	// ClientTypeColor animates a brush between the on color and transparent.
	ClientTypeColor = "color"

	// ClientTypeOpacity ramps an opacity value between 0 and 1.
	ClientTypeOpacity = "opacity"
)

// ClientTypes lists every known client type in the order a default provider builds them.
var ClientTypes = []string{ClientTypeColor, ClientTypeOpacity}

// Known returns true if clientType is one of ClientTypes.
func Known(clientType string) bool {
	for _, t := range ClientTypes {
		if t == clientType {
			return true
		}
	}
	return false
}
