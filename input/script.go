package input

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed demo_script.yaml
var demoScriptYAML []byte

// Segment holds a set of buttons and optionally a cursor over [Start, End) seconds.
type Segment struct {
	Start  float64     `yaml:"start"`
	End    float64     `yaml:"end"`
	Hold   []string    `yaml:"hold"`
	Cursor *[2]float64 `yaml:"cursor"` // screen pixels
}

// Script drives headless runs from a timeline of held buttons.
type Script struct {
	Segments []Segment `yaml:"segments"`

	held [][]Button
}

// DemoScript returns the built-in script: thrust, steer, fire, coast.
func DemoScript() (*Script, error) {
	return ParseScript(demoScriptYAML)
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript parses and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	s.held = make([][]Button, len(s.Segments))
	for i, seg := range s.Segments {
		if seg.End < seg.Start || seg.Start < 0 {
			return nil, fmt.Errorf("segment %d: invalid range [%v, %v)", i, seg.Start, seg.End)
		}
		for _, name := range seg.Hold {
			b, err := ParseButton(name)
			if err != nil {
				return nil, fmt.Errorf("segment %d: %w", i, err)
			}
			s.held[i] = append(s.held[i], b)
		}
	}
	return s, nil
}

func (s *Script) active(t time.Duration, fn func(i int)) {
	sec := t.Seconds()
	for i, seg := range s.Segments {
		if sec >= seg.Start && sec < seg.End {
			fn(i)
		}
	}
}

// Held returns the buttons held at time t. Overlapping segments combine.
func (s *Script) Held(t time.Duration) []Button {
	var out []Button
	s.active(t, func(i int) { out = append(out, s.held[i]...) })
	return out
}

// Cursor returns the cursor at time t from the last active segment that sets one.
func (s *Script) Cursor(t time.Duration) (x, y float64, ok bool) {
	s.active(t, func(i int) {
		if c := s.Segments[i].Cursor; c != nil {
			x, y, ok = c[0], c[1], true
		}
	})
	return x, y, ok
}

// Duration returns the end of the last segment.
func (s *Script) Duration() time.Duration {
	var end float64
	for _, seg := range s.Segments {
		if seg.End > end {
			end = seg.End
		}
	}
	return time.Duration(end * float64(time.Second))
}

// Replay replays a script tick by tick.
type Replay struct {
	script  *Script
	tracker Tracker
	now     time.Duration
	cursor  [2]float64
	hasCur  bool
}

// NewReplay starts a script at time zero.
func NewReplay(s *Script) *Replay {
	return &Replay{script: s}
}

// Next returns the input for the tick starting at the current script time, then advances by dt.
func (p *Replay) Next(dt time.Duration) Snapshot {
	snap := p.tracker.Next(p.script.Held(p.now)...)
	p.cursor[0], p.cursor[1], p.hasCur = p.script.Cursor(p.now)
	p.now += dt
	return snap
}

// CursorPosition implements camera.CursorSource for the current tick.
func (p *Replay) CursorPosition() (x, y float64, ok bool) {
	return p.cursor[0], p.cursor[1], p.hasCur
}

// Done reports whether the script has run past its last segment.
func (p *Replay) Done() bool { return p.now >= p.script.Duration() }

// Now returns the script time of the next tick.
func (p *Replay) Now() time.Duration { return p.now }
