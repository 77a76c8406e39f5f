package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Run drives eng from a tcell screen until Esc, Ctrl-C, q or ctx ends.
func Run(ctx context.Context, screen tcell.Screen, eng Engine, fps int) error {
	screen.EnableMouse()
	screen.HideCursor()
	eng.Resize(PixelSize(screen.Size()))

	renderer := NewRenderer(screen)
	var mouse Mouse

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventMouse:
				mouse.Handle(ev, eng)
			case *tcell.EventResize:
				eng.Resize(PixelSize(screen.Size()))
				screen.Sync()
			}
		case now := <-ticker.C:
			eng.Tick(now.Sub(last))
			last = now
			if out := eng.Output(); out.Dirty {
				renderer.Render(out)
			}
		}
	}
}
