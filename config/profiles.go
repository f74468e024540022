package config

import "github.com/robmorgan/blink/profile"

func initializeProviderProfiles() map[string]ProviderConfig {
	out := map[string]ProviderConfig{
		"alarm": {
			Name:             "alarm",
			Color:            "red",
			IntervalTime:     500,
			RampTime:         100,
			OpacityFrameTime: 20,
			OpacityRampTime:  200,
			Clients:          []string{profile.ClientTypeColor, profile.ClientTypeOpacity},
		},
		"warning": {
			Name:             "warning",
			Color:            "orange",
			IntervalTime:     1000,
			RampTime:         300,
			OpacityFrameTime: 40,
			OpacityRampTime:  400,
			Clients:          []string{profile.ClientTypeColor, profile.ClientTypeOpacity},
		},
		// a plain color swap, like a status LED
		"notice": {
			Name:             "notice",
			Color:            "blue",
			IntervalTime:     2000,
			RampTime:         700,
			OpacityFrameTime: 40,
			OpacityRampTime:  700,
			Discrete:         true,
			Clients:          []string{profile.ClientTypeColor},
		},
	}

	return out
}
