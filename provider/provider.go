// Package provider implements the shared blinking provider: one beat timer driving a
// group of clients, shared by every indicator that looks the provider up.
package provider

import (
	"sync"
	"time"

	"github.com/robmorgan/blink/blinkerr"
	"github.com/robmorgan/blink/client"
	"github.com/robmorgan/blink/config"
	"github.com/robmorgan/blink/engine"
	"github.com/robmorgan/blink/logger"
	"github.com/robmorgan/blink/notify"
	"github.com/robmorgan/blink/rhythm"
	"github.com/robmorgan/blink/utils"
	"github.com/robmorgan/blink/visual"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Property names published by Provider. Client properties bubble up unchanged.
const (
	PropertyBlinkingBeat         = "BlinkingBeat"
	PropertyBlinkingIntervalTime = "BlinkingIntervalTime"
)

// Provider flips a beat on every tick of its timer and commands its clients with it.
type Provider struct {
	name   string
	clock  clock.WithTicker
	poster engine.Poster
	timer  *rhythm.BeatTimer
	group  *client.Group
	pool   *visual.Pool

	mu               sync.Mutex
	beat             bool
	color            *client.Color
	opacity          *client.Opacity
	baseColor        utils.Color
	rampTime         int
	opacityFrameTime int
	opacityRampTime  int
	refs             int
	disposed         bool
	subs             []*notify.Subscription

	props notify.PropertyNotifier
}

// New builds the clients listed in cfg, initializes them and starts the beat timer.
// Ticks and opacity samples are posted to poster when it is non-nil.
func New(cfg config.ProviderConfig, clk clock.WithTicker, poster engine.Poster) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	color, err := cfg.ParsedColor()
	if err != nil {
		return nil, err
	}

	timer, err := rhythm.NewBeatTimer(clk, poster, cfg.IntervalTime)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		name:             cfg.Name,
		clock:            clk,
		poster:           poster,
		timer:            timer,
		group:            client.NewGroup(),
		pool:             visual.NewPool(clk, color.WithAlpha(0)),
		baseColor:        color,
		rampTime:         cfg.RampTime,
		opacityFrameTime: cfg.OpacityFrameTime,
		opacityRampTime:  cfg.OpacityRampTime,
	}

	for _, clientType := range cfg.Clients {
		c, err := p.buildClient(clientType, cfg)
		if err == nil {
			err = p.attach(c)
		}
		if err != nil {
			p.Dispose()
			return nil, err
		}
	}

	timer.OnTick(p.onBeat)
	if p.group.Len() > 0 {
		timer.Start()
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"provider": p.name,
		"interval": cfg.IntervalTime,
		"clients":  cfg.Clients,
	}).Debug("Blinking provider started")

	return p, nil
}

func (p *Provider) buildClient(clientType string, cfg config.ProviderConfig) (client.Interface, error) {
	kind, err := client.ParseKind(clientType)
	if err != nil {
		return nil, err
	}

	switch kind {
	case client.KindColor:
		color, err := cfg.ParsedColor()
		if err != nil {
			return nil, err
		}
		return client.NewColor(p.clock, color, cfg.RampTime, cfg.Discrete)
	default:
		o := client.NewOpacity(p.clock, p.poster)
		if err := o.Ramp().SetFrameTime(cfg.OpacityFrameTime); err != nil {
			return nil, err
		}
		if err := o.Ramp().SetRampTime(cfg.OpacityRampTime); err != nil {
			return nil, err
		}
		return o, nil
	}
}

// attach adds c to the group, initializes it and bubbles its notifications. A client
// that is already attached is left alone. The first client of each kind backs the
// provider's color and opacity properties.
func (p *Provider) attach(c client.Interface) error {
	added, err := p.group.Add(c)
	if err != nil || !added {
		return err
	}
	if err := c.Initialize(); err != nil {
		return err
	}

	subs := []*notify.Subscription{p.props.Forward(c)}

	p.mu.Lock()
	switch typed := c.(type) {
	case *client.Color:
		if p.color == nil {
			p.color = typed
		}
		subs = append(subs, typed.SubscribeTransitions(p.pool.Apply))
	case *client.Opacity:
		if p.opacity == nil {
			p.opacity = typed
		}
	}
	p.subs = append(p.subs, subs...)
	p.mu.Unlock()

	return nil
}

// AddClient attaches c and makes sure the timer runs.
func (p *Provider) AddClient(c client.Interface) error {
	if c == nil {
		return blinkerr.NewInvalidArgument("client")
	}
	if p.Disposed() {
		return blinkerr.NewAlreadyDisposed("blinking provider " + p.name)
	}

	if err := p.attach(c); err != nil {
		return err
	}
	p.timer.Start()
	return nil
}

func (p *Provider) onBeat() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.beat = !p.beat
	beat := p.beat
	p.mu.Unlock()

	p.props.NotifyPropertyChanged(PropertyBlinkingBeat)

	if beat {
		p.group.BlinkOn()
	} else {
		p.group.BlinkOff()
	}
}

func (p *Provider) Name() string {
	return p.name
}

// BlinkingBeat returns the current beat; it starts false.
func (p *Provider) BlinkingBeat() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.beat
}

func (p *Provider) BlinkingIntervalTime() int {
	return p.timer.Interval()
}

// SetBlinkingIntervalTime restarts the timer with the new interval.
func (p *Provider) SetBlinkingIntervalTime(interval int) error {
	if err := rhythm.ValidateInterval(interval); err != nil {
		return err
	}
	if p.Disposed() {
		logger.GetProjectLogger().Debugf("blinking provider %s disposed, ignoring interval change", p.name)
		return nil
	}
	if p.timer.Interval() == interval {
		return nil
	}

	if err := p.timer.SetInterval(interval); err != nil {
		return err
	}
	p.props.NotifyPropertyChanged(PropertyBlinkingIntervalTime)
	return nil
}

// OpacityBeat returns the opacity of the opacity client, or 0 without one.
func (p *Provider) OpacityBeat() float64 {
	if o := p.opacityClient(); o != nil {
		return o.Opacity()
	}
	return 0
}

// Opacity returns the opacity client, or nil when the provider has none.
func (p *Provider) Opacity() *client.Opacity {
	return p.opacityClient()
}

// BlinkingColor returns the color of the color client's brush at now. A provider
// without a color client is transparent.
func (p *Provider) BlinkingColor(now time.Time) utils.Color {
	if c := p.colorClient(); c != nil {
		return c.Brush().ColorAt(now)
	}
	return utils.Transparent
}

// Color returns the configured on color.
func (p *Provider) Color() utils.Color {
	if c := p.colorClient(); c != nil {
		return c.Color()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.baseColor
}

func (p *Provider) SetColor(color utils.Color) error {
	p.mu.Lock()
	p.baseColor = color
	c := p.color
	p.mu.Unlock()

	if c != nil {
		return c.SetColor(color)
	}
	return nil
}

func (p *Provider) RampTime() int {
	if c := p.colorClient(); c != nil {
		return c.RampTime()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rampTime
}

func (p *Provider) SetRampTime(rampTime int) error {
	if err := blinkerr.RequirePositive(client.PropertyRampTime, rampTime); err != nil {
		return err
	}

	p.mu.Lock()
	p.rampTime = rampTime
	c := p.color
	p.mu.Unlock()

	if c != nil {
		return c.SetRampTime(rampTime)
	}
	return nil
}

func (p *Provider) OpacityFrameTime() int {
	if o := p.opacityClient(); o != nil {
		return o.Ramp().FrameTime()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opacityFrameTime
}

func (p *Provider) SetOpacityFrameTime(frameTime int) error {
	if err := blinkerr.RequirePositive("OpacityFrameTime", frameTime); err != nil {
		return err
	}

	p.mu.Lock()
	p.opacityFrameTime = frameTime
	o := p.opacity
	p.mu.Unlock()

	if o != nil {
		return o.Ramp().SetFrameTime(frameTime)
	}
	return nil
}

func (p *Provider) OpacityRampTime() int {
	if o := p.opacityClient(); o != nil {
		return o.Ramp().RampTime()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opacityRampTime
}

func (p *Provider) SetOpacityRampTime(rampTime int) error {
	if err := blinkerr.RequirePositive("OpacityRampTime", rampTime); err != nil {
		return err
	}

	p.mu.Lock()
	p.opacityRampTime = rampTime
	o := p.opacity
	p.mu.Unlock()

	if o != nil {
		return o.Ramp().SetRampTime(rampTime)
	}
	return nil
}

// Clients returns the attached clients in insertion order.
func (p *Provider) Clients() []client.Interface {
	return p.group.Clients()
}

// Running reports whether the beat timer is ticking.
func (p *Provider) Running() bool {
	return p.timer.Running()
}

// Subscribe registers fn for provider and client property changes.
func (p *Provider) Subscribe(fn func(property string)) *notify.Subscription {
	return p.props.Subscribe(fn)
}

// AcquireBrush returns the brush shared by every indicator rendered on d, and the
// function that releases it. Without a dispatcher the color client's own brush is
// returned.
func (p *Provider) AcquireBrush(d *engine.Dispatcher) (*visual.Brush, func()) {
	if d == nil {
		if c := p.colorClient(); c != nil {
			return c.Brush(), func() {}
		}
		return visual.NewBrush(p.clock, p.Color().WithAlpha(0)), func() {}
	}
	return p.pool.Acquire(d)
}

// Pool exposes the per-dispatcher brush pool.
func (p *Provider) Pool() *visual.Pool {
	return p.pool
}

// Retain adds a reference to the provider.
func (p *Provider) Retain() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs++
}

// Release drops a reference. The provider is disposed when the last one goes.
func (p *Provider) Release() {
	p.mu.Lock()
	if p.refs == 0 {
		p.mu.Unlock()
		return
	}
	p.refs--
	last := p.refs == 0
	p.mu.Unlock()

	if last {
		p.Dispose()
	}
}

// Refs returns the number of outstanding references.
func (p *Provider) Refs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs
}

// Dispose stops the timer and disposes every client. Later calls are no-ops.
func (p *Provider) Dispose() {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return
	}
	p.disposed = true
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()

	p.timer.Stop()
	p.timer.OnTick(nil)
	for _, sub := range subs {
		sub.Cancel()
	}
	p.group.Dispose()
	p.pool.Close()
	p.props.Clear()

	logger.GetProjectLogger().WithFields(logrus.Fields{"provider": p.name}).Debug("Blinking provider disposed")
}

func (p *Provider) Disposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

func (p *Provider) colorClient() *client.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.color
}

func (p *Provider) opacityClient() *client.Opacity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opacity
}
