// fxtest prints the curves the blinking engine produces so timing changes can be
// eyeballed without running the wall.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/robmorgan/blink/effect"
	"github.com/robmorgan/blink/utils"
	"github.com/spf13/pflag"
	testingclock "k8s.io/utils/clock/testing"
)

var (
	rampTime  = effect.DefaultOpacityRampTime
	frameTime = effect.DefaultOpacityFrameTime
	color     = "yellow"
	width     = 40
)

func init() {
	pflag.IntVar(&rampTime, "ramp", rampTime, "ramp time in milliseconds")
	pflag.IntVar(&frameTime, "frame", frameTime, "opacity frame time in milliseconds")
	pflag.StringVar(&color, "color", color, "on color")
	pflag.IntVar(&width, "width", width, "bar width")
}

func main() {
	pflag.Parse()

	if err := printOpacityRamp(); err != nil {
		fmt.Println(err)
		return
	}
	if err := printColorTransition(); err != nil {
		fmt.Println(err)
	}
}

// printOpacityRamp samples a ramp up and a ramp down on a simulated clock, one frame at
// a time.
func printOpacityRamp() error {
	clk := testingclock.NewFakeClock(time.Now())
	ramp := effect.NewOpacityRamp(clk, nil)
	defer ramp.Dispose()

	// sampling is driven by hand below
	if err := ramp.SetFrameTime(int(time.Hour / time.Millisecond)); err != nil {
		return err
	}
	if err := ramp.SetRampTime(rampTime); err != nil {
		return err
	}

	frame := time.Duration(frameTime) * time.Millisecond
	for _, on := range []bool{true, false} {
		if on {
			fmt.Println("opacity ramp up")
			ramp.BlinkOn()
		} else {
			fmt.Println("opacity ramp down")
			ramp.BlinkOff()
		}

		for elapsed := time.Duration(0); ramp.State() != effect.RampIdle; elapsed += frame {
			clk.Step(frame)
			ramp.Sample()
			fmt.Printf("%6dms %s %.3f\n", (elapsed + frame).Milliseconds(), bar(ramp.Opacity()), ramp.Opacity())
		}
	}
	return nil
}

func printColorTransition() error {
	c, err := utils.ParseColor(color)
	if err != nil {
		return err
	}
	on, off, err := effect.NewColorTransitions(c, rampTime)
	if err != nil {
		return err
	}

	frame := time.Duration(frameTime) * time.Millisecond
	from := off.To
	fmt.Printf("color transition %s -> %s\n", from, on.To)
	for elapsed := time.Duration(0); !on.Effect.Done(elapsed); elapsed += frame {
		current := on.Apply(from, elapsed)
		fmt.Printf("%6dms %s %s\n", elapsed.Milliseconds(), bar(current.Alpha), current)
	}
	fmt.Printf("%6dms %s %s\n", on.Effect.Duration.Milliseconds(), bar(on.To.Alpha), on.To)
	return nil
}

func bar(v float64) string {
	full := int(v * float64(width))
	if full < 0 {
		full = 0
	}
	if full > width {
		full = width
	}
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}
