package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/itohio/quadled/pkg/board"
	"github.com/itohio/quadled/pkg/config"
	"github.com/itohio/quadled/pkg/panel"
	"github.com/itohio/quadled/pkg/relay"
)

func main() {
	var (
		portFlag    = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag  = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag    = flag.Bool("mock", false, "Use a mocked sending board instead of the serial port")
		programFlag = flag.String("program", programPot, "Board program: "+strings.Join(programs, ", "))
		verboseFlag = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verboseFlag {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	application := app.NewWithID("com.itohio.quadled")
	window := application.NewWindow("Quad LED")
	window.Resize(fyne.NewSize(640, 360))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configFile: *configFlag,
		kind:       *programFlag,
		useMock:    *mockFlag,
		window:     window,
		panel:      panel.New(cfg.Display.Digits),
		controls:   container.NewVBox(),
	}

	toolbar := createToolbar(state)
	window.SetContent(container.NewBorder(toolbar, state.controls, nil, nil, state.panel))

	if err := state.start(); err != nil {
		log.Fatalf("Failed to start %s: %v", state.kind, err)
	}
	window.SetOnClosed(func() {
		state.disconnect()
		state.stop()
	})
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configFile string
	kind       string
	useMock    bool

	window     fyne.Window
	panel      *panel.Panel
	controls   *fyne.Container
	connectBtn *widget.Button
	modeBtn    *widget.Button
	presetBtn  *widget.Button

	mu     sync.Mutex
	sim    *simulation
	cancel context.CancelFunc
	wg     sync.WaitGroup
	link   relay.Link
	linkWG sync.WaitGroup
}

// createToolbar creates the toolbar with Connect, Settings, Mode and Preset buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	state.connectBtn = widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})
	state.modeBtn = widget.NewButtonWithIcon("Mode", theme.ViewRefreshIcon(), func() {
		state.current().press()
	})
	state.presetBtn = widget.NewButtonWithIcon("Preset", theme.MediaSkipNextIcon(), func() {
		state.current().preset()
	})

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(state.connectBtn, settingsBtn),
		container.NewHBox(state.modeBtn, state.presetBtn),
		nil,
	)
}

func (s *appState) current() *simulation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim
}

// start builds the board program and runs it with its timer interrupt and
// the panel refresh.
func (s *appState) start() error {
	sim, err := buildSimulation(s.cfg, s.kind, s.panel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.sim = sim
	s.cancel = cancel
	s.mu.Unlock()

	onErr := func(err error) { log.Debugf("%s: %v", s.kind, err) }
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// The showcase owns the display until it is over.
		if sim.showcase != nil {
			sim.showcase()
		}
		for _, p := range sim.programs {
			s.wg.Add(1)
			go func(p board.Program) {
				defer s.wg.Done()
				board.Run(ctx, p, onErr)
			}(p)
		}
		every(ctx, s.cfg.Mode.Tick, sim.tick)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		every(ctx, s.cfg.Display.Refresh, func() { fyne.Do(s.panel.Update) })
	}()

	if s.kind != programRange {
		s.presetBtn.Disable()
	} else {
		s.presetBtn.Enable()
	}
	s.controls.Objects = createControls(sim, s.cfg)
	s.controls.Refresh()

	log.Infof("Running %s program", s.kind)
	return nil
}

// stop cancels the running program and waits for its goroutines.
func (s *appState) stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
}

// restart rebuilds the program after a configuration change. The link is
// closed since the new program may listen where the old one sent.
func (s *appState) restart() {
	s.disconnect()
	s.stop()
	if err := s.start(); err != nil {
		dialog.ShowError(err, s.window)
	}
}

func every(ctx context.Context, period time.Duration, fn func()) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// attach hooks the link to the running program.
func (s *appState) attach(link relay.Link) {
	sim := s.current()
	sim.out.attach(link)
	if sim.rx == nil {
		return
	}
	s.linkWG.Add(1)
	go func() {
		defer s.linkWG.Done()
		bridge(link, sim.rx)
	}()
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	state.mu.Lock()
	connected := state.link != nil && state.link.IsConnected()
	state.mu.Unlock()

	if connected {
		state.disconnect()
		return
	}

	var link relay.Link
	if state.useMock {
		link = relay.NewMock(&state.cfg.Mock, relay.KeyADC)
		log.Info("Using mocked board")
	} else {
		link = relay.NewSerial(state.cfg.Serial.Port, state.cfg.Serial.BaudRate, relay.DefaultBufferSize, state.cfg.Relay.IdleTicks)
	}

	if err := link.Connect(); err != nil {
		target := state.cfg.Serial.Port
		if state.useMock {
			target = "mocked board"
		}
		dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", target, err), state.window)
		return
	}

	state.mu.Lock()
	state.link = link
	state.mu.Unlock()

	if state.current().rx == nil {
		// Nobody listens on this board; keep the link from backing up.
		state.linkWG.Add(1)
		go func() {
			defer state.linkWG.Done()
			for msg := range link.Messages() {
				log.Debugf("Echo %v", msg)
			}
		}()
	}
	state.attach(link)
	state.connectBtn.SetIcon(theme.LogoutIcon())
	log.Info("Connected")
}

// disconnect closes the link and waits for its bridge to finish.
func (s *appState) disconnect() {
	s.mu.Lock()
	link := s.link
	s.link = nil
	sim := s.sim
	s.mu.Unlock()

	if link == nil {
		return
	}
	if sim != nil {
		sim.out.attach(nil)
	}
	if err := link.Close(); err != nil {
		log.Warnf("Closing link: %v", err)
	}
	s.linkWG.Wait()
	s.connectBtn.SetIcon(theme.LoginIcon())
	log.Info("Disconnected")
}
