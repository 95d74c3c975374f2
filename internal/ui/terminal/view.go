// Package terminal renders the countdown in a character-cell screen.
package terminal

import (
	"context"
	"log"
	"math"

	"timekeeper/internal/core/countdown"
	"timekeeper/internal/core/model"
	"timekeeper/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Cells are drawn as if they were cellWidth×cellHeight pixels, so the dial
// stays round on a terminal with 1:2 cells.
const (
	cellWidth  = 8
	cellHeight = 16
)

const helpLine = "s start  p pause/resume  x stop  +/- minutes  q quit"

var (
	labelStyle  = tcell.StyleDefault.Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Options holds collaborators that tests replace.
type Options struct {
	Clock countdown.Clock
	// OnExpired runs on the event loop when a countdown reaches zero.
	OnExpired func()
	// OnReset runs on the event loop when a countdown is started or stopped.
	OnReset func()
}

// View owns a tcell screen and the countdown shown on it. Every method except
// Run and Post must be called from the event loop.
type View struct {
	screen    tcell.Screen
	engine    *countdown.Engine
	scheduler *countdown.Scheduler
	fields    model.Fields
	status    string
	lit       bool
	onExpired func()
	onReset   func()
}

// New creates a view over an initialized screen.
func New(screen tcell.Screen, config model.TimerConfig, options Options) *View {
	view := &View{
		screen:    screen,
		engine:    countdown.New(options.Clock),
		fields:    config.Defaults,
		onExpired: options.OnExpired,
		onReset:   options.OnReset,
	}
	view.scheduler = countdown.NewScheduler(
		countdown.Config{TickInterval: config.TickInterval},
		view.Post,
		view.tick,
	)
	return view
}

// Post queues fn to run on the event loop. Safe from any goroutine.
func (view *View) Post(fn func()) {
	if err := view.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		log.Printf("post event: %v", err)
	}
}

// Run draws and processes events until the user quits or ctx is done.
func (view *View) Run(ctx context.Context) {
	defer view.scheduler.Close()

	go func() {
		<-ctx.Done()
		view.Post(nil)
	}()

	view.Draw()
	for {
		if ctx.Err() != nil {
			return
		}
		switch ev := view.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			view.screen.Sync()
			view.Draw()
		case *tcell.EventKey:
			if !view.HandleKey(ev) {
				return
			}
		case *tcell.EventInterrupt:
			if fn, ok := ev.Data().(func()); ok && fn != nil {
				fn()
			}
		}
	}
}

// HandleKey applies a key press and redraws. It returns false on quit.
func (view *View) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 's', 'S':
		view.start()
	case 'p', 'P':
		view.togglePause()
	case 'x', 'X':
		view.engine.Stop()
		view.status = ""
		view.reset()
	case '+':
		view.adjustMinutes(1)
	case '-':
		view.adjustMinutes(-1)
	}
	view.Draw()
	return true
}

// Fields returns the duration the next start will use.
func (view *View) Fields() model.Fields {
	return view.fields
}

// Status returns the status line text.
func (view *View) Status() string {
	return view.status
}

// Snapshot returns the countdown state.
func (view *View) Snapshot() countdown.Snapshot {
	return view.engine.Snapshot()
}

// SetLit switches the dial to the alert palette and redraws.
func (view *View) SetLit(lit bool) {
	view.lit = lit
	view.Draw()
}

func (view *View) start() {
	if err := view.engine.Start(view.fields); err != nil {
		view.status = countdown.ErrorMessage(err)
		return
	}
	view.status = ""
	view.reset()
	view.scheduler.Ensure()
}

func (view *View) reset() {
	if view.onReset != nil {
		view.onReset()
	}
}

func (view *View) togglePause() {
	switch view.engine.State() {
	case countdown.StateRunning:
		view.engine.Pause()
		view.status = "Paused"
	case countdown.StatePaused:
		view.engine.Resume()
		view.status = ""
		view.scheduler.Ensure()
	}
}

func (view *View) adjustMinutes(delta int) {
	if state := view.engine.State(); state == countdown.StateRunning || state == countdown.StatePaused {
		return
	}
	total := view.fields.TotalSeconds() + int64(delta)*60
	if total < 0 {
		total = 0
	}
	view.fields = model.Fields{
		Hours:   int(total / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

func (view *View) tick() bool {
	result := view.engine.Tick()
	if result.Expired {
		view.status = "Time's up!"
		_ = view.screen.Beep()
	}
	view.Draw()
	if result.Expired && view.onExpired != nil {
		view.onExpired()
	}
	return result.Continue
}

// Draw repaints the whole screen.
func (view *View) Draw() {
	view.screen.Clear()
	width, height := view.screen.Size()
	snapshot := view.engine.Snapshot()

	label := snapshot.Label
	if snapshot.State == countdown.StateIdle {
		label = countdown.FormatClock(view.fields.Duration())
	}

	dialRows := height - 4
	if dialRows > 0 {
		view.drawDial(snapshot.Progress, width, dialRows)
	}
	drawCentered(view.screen, height-3, width, label, labelStyle)
	drawCentered(view.screen, height-2, width, view.status, statusStyle)
	drawCentered(view.screen, height-1, width, helpLine, helpStyle)
	view.screen.Show()
}

func (view *View) drawDial(progress float64, cols, rows int) {
	palette := render.DefaultPalette
	if view.lit {
		palette = render.AlertPalette
	}
	centerX, centerY, radius := render.Layout(cols*cellWidth, rows*cellHeight)
	primitives := render.RenderWithPalette(progress, radius, palette)
	for i := range primitives {
		if primitives[i].Kind == render.KindRing {
			primitives[i].LineWidth = cellWidth
		}
	}

	for y := 0; y < rows; y++ {
		dy := (float64(y)+0.5)*cellHeight - centerY
		for x := 0; x < cols; x++ {
			dx := (float64(x)+0.5)*cellWidth - centerX
			ch, style, ok := cellFor(primitives, dx, dy)
			if ok {
				view.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}
}

// cellFor picks the glyph from the topmost primitive and the color from the
// composited shade at (dx, dy).
func cellFor(primitives []render.Primitive, dx, dy float64) (rune, tcell.Style, bool) {
	top, ok := render.Top(primitives, dx, dy)
	if !ok {
		return ' ', tcell.StyleDefault, false
	}
	shade := render.Shade(primitives, dx, dy).NRGBA()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(shade.R), int32(shade.G), int32(shade.B)))

	switch top.Kind {
	case render.KindSector:
		return '█', style, true
	case render.KindRing:
		return ringGlyph(dx, dy), style, true
	default:
		return '·', style, true
	}
}

func ringGlyph(dx, dy float64) rune {
	angle := math.Abs(math.Atan2(dy, dx))
	switch {
	case angle < math.Pi/8 || angle > 7*math.Pi/8:
		return '│'
	case angle > 3*math.Pi/8 && angle < 5*math.Pi/8:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╱'
	default:
		return '╲'
	}
}

func drawCentered(screen tcell.Screen, y, width int, text string, style tcell.Style) {
	if y < 0 {
		return
	}
	runes := []rune(text)
	x := (width - len(runes)) / 2
	if x < 0 {
		x = 0
	}
	for i, r := range runes {
		if x+i >= width {
			return
		}
		screen.SetContent(x+i, y, r, nil, style)
	}
}
