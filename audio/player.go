package audio

// Player is the external media object behind a voice message.
// It owns the playing state; observers only get notified through callbacks.
type Player interface {
	Paused() bool
	Play() error
	Pause() error
	CurrentTime() float64
	Duration() float64

	OnEnded(fn func())
	OnPause(fn func())
	OnPlay(fn func())
	OnTimeUpdate(fn func())
}

// Ticker is implemented by players driven by the host clock.
type Ticker interface {
	Advance(seconds float64)
}

// AudioRef points to a voice clip attached to a message.
type AudioRef struct {
	URL      string
	Duration float64 // seconds
	Data     []byte  // optional raw clip, sniffed before attaching
	Player   Player  // optional, a ClockPlayer is created when nil
}

// ClockPlayer is a deterministic Player advanced by its owner.
// It follows the media element event order: at the end of the clip it fires
// time-update, then pause, then ended.
type ClockPlayer struct {
	duration float64
	current  float64
	paused   bool

	onEnded      func()
	onPause      func()
	onPlay       func()
	onTimeUpdate func()
}

func NewClockPlayer(duration float64) *ClockPlayer {
	return &ClockPlayer{duration: duration, paused: true}
}

func (p *ClockPlayer) Paused() bool         { return p.paused }
func (p *ClockPlayer) CurrentTime() float64 { return p.current }
func (p *ClockPlayer) Duration() float64    { return p.duration }

func (p *ClockPlayer) OnEnded(fn func())      { p.onEnded = fn }
func (p *ClockPlayer) OnPause(fn func())      { p.onPause = fn }
func (p *ClockPlayer) OnPlay(fn func())       { p.onPlay = fn }
func (p *ClockPlayer) OnTimeUpdate(fn func()) { p.onTimeUpdate = fn }

func (p *ClockPlayer) Play() error {
	if !p.paused {
		return nil
	}
	// Playing an ended clip starts over
	if p.current >= p.duration {
		p.current = 0
	}
	p.paused = false
	fire(p.onPlay)
	return nil
}

func (p *ClockPlayer) Pause() error {
	if p.paused {
		return nil
	}
	p.paused = true
	fire(p.onPause)
	return nil
}

func (p *ClockPlayer) Advance(seconds float64) {
	if p.paused || seconds <= 0 {
		return
	}
	p.current += seconds
	if p.current < p.duration {
		fire(p.onTimeUpdate)
		return
	}
	p.current = p.duration
	fire(p.onTimeUpdate)
	p.paused = true
	fire(p.onPause)
	fire(p.onEnded)
}

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}
