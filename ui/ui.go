package ui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/labfab/lasercam/motion"
	"github.com/labfab/lasercam/stream"
)

const (
	maxLogLines = 200
	retryDelay  = 2 * time.Second
)

// ViewerUI shows a camera stream and, when a turret console is connected, controls for it. It is an
// io.Writer so the board's serial output can be teed into its log panel
type ViewerUI struct {
	mtx        sync.Mutex
	lines      []string
	partial    string
	logContent *widget.Label
}

func NewViewerUI() *ViewerUI {
	return &ViewerUI{}
}

func (v *ViewerUI) Write(p []byte) (int, error) {
	text := v.appendLog(p)

	v.mtx.Lock()
	label := v.logContent
	v.mtx.Unlock()

	if label != nil {
		fyne.Do(func() {
			label.SetText(text)
		})
	}
	return len(p), nil
}

// appendLog adds complete lines to the log and returns its text
func (v *ViewerUI) appendLog(p []byte) string {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	data := v.partial + string(p)
	parts := strings.Split(data, "\n")
	v.partial = parts[len(parts)-1]

	for _, line := range parts[:len(parts)-1] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		v.lines = append(v.lines, line)
	}
	if len(v.lines) > maxLogLines {
		v.lines = v.lines[len(v.lines)-maxLogLines:]
	}

	return strings.Join(v.lines, "\n")
}

// watch keeps reading frames from url until the context is done, reconnecting after failures
func watch(ctx context.Context, url string, delay time.Duration, onFrame func(image.Image), onState func(state)) {
	current := stateNone
	setState := func(ok bool) {
		next := current.next(ok)
		if next != current {
			current = next
			onState(current)
		}
	}

	for ctx.Err() == nil {
		setState(true)

		r, err := stream.Open(ctx, url)
		if err != nil {
			log.Printf("error opening stream: %v", err)
			setState(false)
			sleepCtx(ctx, delay)
			continue
		}

		for {
			frame, err := r.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("error reading stream: %v", err)
				}
				break
			}

			img, err := jpeg.Decode(bytes.NewReader(frame))
			if err != nil {
				log.Printf("error decoding frame: %v", err)
				continue
			}

			setState(true)
			onFrame(img)
		}

		r.Close()
		setState(false)
		sleepCtx(ctx, delay)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func createLogAccordion(content *widget.Label) *widget.Accordion {
	logScroll := container.NewVScroll(content)
	logScroll.SetMinSize(fyne.NewSize(300, 100))

	return widget.NewAccordion(
		widget.NewAccordionItem("Logs", logScroll),
	)
}

func createControls(ctl *controllerWrapper) *fyne.Container {
	shapeSelect := widget.NewSelect(motion.ShapeNames(), func(name string) {
		err := ctl.SetShape(name)
		if err != nil {
			log.Printf("error setting shape: %v", err)
		}
	})
	shapeSelect.PlaceHolder = "Shape"

	snapshotButton := widget.NewButton("Snapshot", func() {
		err := ctl.Snapshot()
		if err != nil {
			log.Printf("error requesting snapshot: %v", err)
		}
	})

	debugButton := widget.NewButton("Debug", func() {
		err := ctl.Debug()
		if err != nil {
			log.Printf("error requesting debug: %v", err)
		}
	})

	return container.NewHBox(shapeSelect, snapshotButton, debugButton)
}

// Connector opens the turret console for a Config. It returns nil when there is no console
type Connector func(Config) (io.Writer, error)

// Run shows the viewer until it is closed or the context is done. The config window is shown first when cfg
// is incomplete
func (v *ViewerUI) Run(ctx context.Context, cfg Config, connect Connector) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application := app.New()

	show := func() {
		commands, err := connect(cfg)
		if err != nil {
			window := application.NewWindow("Laser Cam")
			window.Show()
			showError(application, window, fmt.Errorf("error connecting: %w", err))
			return
		}
		v.showViewer(ctx, application, cfg.StreamURL, commands)
	}

	if cfg.valid() {
		show()
	} else {
		cw := NewConfigWindow(application)
		cw.OnSubmit = show
		cw.Show(&cfg)
	}

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	application.Run()
}

func (v *ViewerUI) showViewer(ctx context.Context, application fyne.App, streamURL string, commands io.Writer) {
	ctx, cancel := context.WithCancel(ctx)

	window := application.NewWindow("Laser Cam")
	window.SetMaster()

	frame := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 320, 240)))
	frame.FillMode = canvas.ImageFillContain
	frame.SetMinSize(fyne.NewSize(320, 240))

	statusText := canvas.NewText(stateNone.String(), nil)
	fpsText := canvas.NewText("0.0 fps", nil)

	lastFrameTimer := newTimer("Last frame")
	lastFrameTimer.Go()

	lastCommandTimer := newTimer("Last command")

	logContent := widget.NewLabel("")
	v.mtx.Lock()
	v.logContent = logContent
	v.mtx.Unlock()

	frames := &rate{}
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				fps := frames.Take(now)
				fyne.Do(func() {
					fpsText.Text = fmt.Sprintf("%.1f fps", fps)
					fpsText.Refresh()
				})
			}
		}
	}()

	go watch(ctx, streamURL, retryDelay,
		func(img image.Image) {
			frames.Add()
			lastFrameTimer.Set(time.Now())
			fyne.Do(func() {
				frame.Image = img
				frame.Refresh()
			})
		},
		func(s state) {
			fyne.Do(func() {
				statusText.Text = s.String()
				statusText.Refresh()
			})
		},
	)

	header := container.NewHBox(
		container.NewPadded(statusText),
		container.NewPadded(fpsText),
		layout.NewSpacer(),
		container.NewPadded(lastFrameTimer.text),
	)

	content := container.NewVBox(header, frame)
	if commands != nil {
		lastCommandTimer.Go()

		ctl := &controllerWrapper{writer: commands, lastCommandAt: lastCommandTimer}
		content.Add(container.NewHBox(createControls(ctl), layout.NewSpacer(), lastCommandTimer.text))
	}
	content.Add(createLogAccordion(logContent))

	window.SetOnClosed(func() {
		cancel()
		lastFrameTimer.Stop()
		if commands != nil {
			lastCommandTimer.Stop()
		}
	})

	window.SetContent(content)
	window.Resize(fyne.NewSize(660, 560))
	window.Show()
}
