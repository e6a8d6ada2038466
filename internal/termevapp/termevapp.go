package termevapp

import (
	"context"
	"fmt"
	"io"
	"log"

	"termev/internal/mouseseq"
	"termev/internal/termevmsg"
	"termev/internal/termin"
	"termev/internal/termout"

	"golang.org/x/term"
)

type Config struct {
	InitialWidth   int
	InitialHeight  int
	TermState      *term.State
	FileDescriptor int
	Stdout         io.Writer
	Cancel         context.CancelFunc
	Logger         *log.Logger
	MouseReporting bool
	History        int
}

func New(conf Config) *Program {
	w := termout.New(conf.Stdout)

	history := conf.History
	if history <= 0 {
		history = 512
	}

	m := &model{
		height:   conf.InitialHeight,
		width:    conf.InitialWidth,
		history:  history,
		messages: make([]string, 0, 10),
	}

	return &Program{
		invalidated: make(chan struct{}, 1),
		actions:     make(chan func()),
		fd:          conf.FileDescriptor,
		old:         conf.TermState,
		writer:      w,
		logger:      conf.Logger,
		cancel:      conf.Cancel,
		model:       m,
		mouse:       conf.MouseReporting,
	}
}

type Program struct {
	invalidated chan struct{}
	actions     chan func()
	old         *term.State
	fd          int
	writer      *termout.Writer
	logger      *log.Logger
	cancel      context.CancelFunc
	model       *model
	mouse       bool
}

type model struct {
	height   int
	width    int
	history  int
	messages []string
}

func (m *model) addLog(s string) {
	m.messages = append(m.messages, s)

	if len(m.messages) > m.history {
		m.messages = m.messages[len(m.messages)-m.history:]
	}
}

func (p *Program) Input(events []termin.Event) {
	p.actions <- func() {
		for _, e := range events {
			if key, ok := e.(termin.Key); ok && quits(key) {
				p.cancel()
				return
			}

			p.model.addLog(termevmsg.Describe(e))
		}

		p.invalidate()
	}
}

func quits(k termin.Key) bool {
	if k.Type == termin.KeyQuit {
		return true
	}

	return k.Type == termin.KeyCharacter && k.Rune == 'q' && !k.Alt
}

func (p *Program) Resize(w, h int) {
	p.actions <- func() {
		p.model.height = h
		p.model.width = w
		p.model.addLog(termevmsg.ResizeMessage{Width: w, Height: h}.String())
		p.invalidate()
	}
}

func (p *Program) invalidate() {
	select {
	case p.invalidated <- struct{}{}:
		return
	default:
		return
	}
}

func (p *Program) render() {
	space := p.model.height - 1 // last row is the status line

	for i, n := 0, len(p.model.messages)-1; i < space && n > -1; i, n = i+1, n-1 {
		p.writer.SetCursor(space-(i+1), 0)
		p.writer.ClearLine()
		p.writer.WriteString(p.model.messages[n])
	}

	status := fmt.Sprintf("termev - press q to quit (%dx%d)", p.model.width, p.model.height)
	if len(status) > p.model.width && p.model.width > 0 {
		status = status[:p.model.width]
	}

	p.writer.SetCursor(p.model.height-1, 0)
	p.writer.ClearToEndOfLine()
	p.writer.WriteString(status)
}

func (p *Program) Reset() {
	if p.mouse {
		p.writer.WriteString(mouseseq.Disable())
	}

	p.writer.ClearScreen()
	p.writer.ShowCursor()
	p.writer.SetCursor(0, 0)
	term.Restore(p.fd, p.old)
	p.logger.Println("RESET")
}

func (p *Program) Run(ctx context.Context) error {
	p.writer.ClearScreen()
	p.writer.HideCursor()

	if p.mouse {
		p.writer.WriteString(mouseseq.Enable())
	}

	p.invalidate()

	done := ctx.Done()

	for {
		select {
		case <-done:
			return nil
		case <-p.invalidated:
			p.render()
		case a := <-p.actions:
			a()

			select {
			case <-p.invalidated:
				p.render()
			default:
				continue
			}
		}
	}
}
