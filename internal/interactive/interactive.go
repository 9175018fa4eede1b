package interactive

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"
	"github.com/mattn/go-runewidth"
	"golang.org/x/time/rate"
	"nightlightctl.app/nightlightctl/internal/settings"
)

// previewInterval throttles live night light writes while a key is held.
const previewInterval = 250 * time.Millisecond

// NewScreen .
type NewScreen struct {
	Current    tcell.Screen
	Client     *settings.Client
	model      *model
	limiter    *rate.Limiter
	pending    bool
	lastAction string
}

func (p *NewScreen) emitStr(x, y int, style tcell.Style, str string) {
	s := p.Current
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		s.SetContent(x, y, c, comb, style)
		x += w
	}
}

func (p *NewScreen) emitCentered(y int, style tcell.Style, str string) {
	w, _ := p.Current.Size()
	p.emitStr(w/2-runewidth.StringWidth(str)/2, y, style, str)
}

// EmitMsg - Redraw the configuration along with the last action.
func (p *NewScreen) EmitMsg(inputtext string) {
	p.lastAction = inputtext
	s := p.Current
	_, h := s.Size()

	boldStyle := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite).Bold(true)

	s.Clear()

	lines := describe(p.model)
	top := h/2 - len(lines)/2 - 2
	p.emitCentered(top, boldStyle, "Night Light")
	for i, l := range lines {
		p.emitCentered(top+2+i, tcell.StyleDefault, l)
	}
	p.emitCentered(top+3+len(lines), boldStyle, inputtext)

	p.emitStr(1, 1, tcell.StyleDefault, "Press ESC to exit.")
	p.emitStr(1, h-3, tcell.StyleDefault, "←/→ temperature  ↑/↓ text scale  e enable  a automatic schedule")
	p.emitStr(1, h-2, tcell.StyleDefault, "p next preset  r reload  Enter apply")

	s.Show()
}

func describe(m *model) []string {
	nl := m.cfg.Display.NightLight

	enabled := "off"
	if nl.Enabled {
		enabled = "on"
	}

	schedule := "automatic (sunset to sunrise)"
	if !nl.ScheduleAutomatic {
		schedule = fmt.Sprintf("manual %05.2f - %05.2f", nl.ScheduleFrom, nl.ScheduleTo)
	}

	preset := "custom"
	if m.hasPreset {
		preset = m.preset.String()
	}

	return []string{
		"Enabled:     " + enabled,
		fmt.Sprintf("Temperature: %d K (%s)", nl.Temperature, preset),
		"Schedule:    " + schedule,
		fmt.Sprintf("Text scale:  %.2f", m.cfg.Interface.TextScale),
		"Effects:     " + m.cfg.Display.Effects.String(),
	}
}

// InterInit - Start the interactive terminal on top of cfg and block
// until the user quits.
func (p *NewScreen) InterInit(cfg settings.SystemConfig) error {
	p.model = newModel(cfg)
	p.limiter = rate.NewLimiter(rate.Every(previewInterval), 1)

	encoding.Register()
	s := p.Current
	if e := s.Init(); e != nil {
		return fmt.Errorf("InterInit: %w", e)
	}
	defer s.Fini()

	defStyle := tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite)
	s.SetStyle(defStyle)

	p.EmitMsg("Ready")

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.Sync()
			p.EmitMsg(p.lastAction)
		case *tcell.EventKey:
			if quit := p.handle(p.model.handleKey(ev.Key(), ev.Rune())); quit {
				return p.flush()
			}
		}
	}
}

// handle runs the side effect of a key press and reports whether the
// loop should end.
func (p *NewScreen) handle(a action) bool {
	switch a {
	case actionQuit:
		return true
	case actionPreview:
		if !p.limiter.Allow() {
			p.pending = true
			p.EmitMsg("Press Enter to apply")
			return false
		}
		p.preview()
	case actionChanged:
		p.EmitMsg("Press Enter to apply")
	case actionApply:
		p.apply()
	case actionReload:
		cfg, err := p.Client.ReadSystem()
		if err != nil {
			p.EmitMsg("Error: " + err.Error())
			return false
		}
		p.model.reset(cfg)
		p.pending = false
		p.EmitMsg("Reloaded")
	}

	return false
}

func (p *NewScreen) preview() {
	if err := p.Client.ApplyNightLight(p.model.cfg.Display.NightLight); err != nil {
		p.EmitMsg("Error: " + err.Error())
		return
	}
	p.pending = false
	p.EmitMsg("Previewing")
}

func (p *NewScreen) apply() {
	if err := p.model.cfg.ValidateChanges(p.model.base); err != nil {
		p.EmitMsg("Error: " + err.Error())
		return
	}

	if err := p.Client.ApplySystem(p.model.cfg); err != nil {
		p.EmitMsg("Error: " + err.Error())
		return
	}
	p.model.base = p.model.cfg
	p.pending = false
	p.EmitMsg("Applied")
}

// flush writes a night light change the limiter held back.
func (p *NewScreen) flush() error {
	if !p.pending {
		return nil
	}
	return p.Client.ApplyNightLight(p.model.cfg.Display.NightLight)
}

// Config returns the configuration as last edited on screen.
func (p *NewScreen) Config() settings.SystemConfig {
	if p.model == nil {
		return settings.SystemConfig{}
	}
	return p.model.cfg
}

// InitTcellNewScreen .
func InitTcellNewScreen(c *settings.Client) (*NewScreen, error) {
	s, e := tcell.NewScreen()
	if e != nil {
		return nil, errors.New("can't start new interactive screen")
	}
	return &NewScreen{
		Current: s,
		Client:  c,
	}, nil
}
