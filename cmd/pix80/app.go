package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/OfficialPixelBrush/Pix80Emu/devices/lcd"
	"github.com/OfficialPixelBrush/Pix80Emu/frontend/headless"
	"github.com/OfficialPixelBrush/Pix80Emu/frontend/tui"
	"github.com/OfficialPixelBrush/Pix80Emu/frontend/window"
	"github.com/OfficialPixelBrush/Pix80Emu/machine"
)

// missingROM is shown on the display if the ROM image can not be loaded.
const missingROM = "No file found!"

// Frontend is the host side of the application.
type Frontend interface {
	machine.Frontend
	Start() error
	Stop()
}

// App defines application context.
type App struct {
	config   *Config
	machine  *machine.Machine
	display  *lcd.HD44780
	frontend Frontend
	window   *window.Window // Set if the window front end is used.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	return &App{
		config:  config,
		display: lcd.NewHD44780(),
	}
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	mc, err := a.config.Machine()
	if err != nil {
		return err
	}

	mc.Display = a.display
	mc.Output = os.Stdout
	switch a.config.Frontend {
	case FrontendTUI:
		// Terminal output would overwrite the screen.
		mc.Output = nil
	case FrontendHeadless:
		if term.IsTerminal(int(os.Stdout.Fd())) {
			mc.Output = headless.NewOutput(os.Stdout)
		}
	}

	a.machine, err = machine.New(mc)
	if err != nil {
		return err
	}

	if a.config.Debug >= machine.Lifecycle {
		log.Println(Version())
	}

	if err := a.initFrontend(); err != nil {
		return err
	}

	if err := a.machine.LoadROMFile(a.config.ROM); err != nil {
		if a.config.Frontend == FrontendHeadless {
			return errors.Wrapf(err, "failed to load %s", a.config.ROM)
		}

		log.Println(err)
		return a.showMissingROM()
	}

	if err := a.machine.Startup(); err != nil {
		return err
	}

	defer a.machine.Shutdown()

	a.handleSignals()

	if a.config.Statsview != "" {
		a.launchStatsview()
	}

	if err := a.frontend.Start(); err != nil {
		return err
	}

	defer a.frontend.Stop()
	return a.machine.Run(a.frontend)
}

// initFrontend creates the front end selected in the configuration.
func (a *App) initFrontend() error {
	title := AppName + " " + AppVersion

	switch a.config.Frontend {
	case FrontendHeadless:
		a.frontend = headless.New(a.machine, os.Stdin, a.display, os.Stdout)

	case FrontendTUI:
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrapf(err, "failed to create terminal screen")
		}

		ui := tui.New(screen, a.machine, a.display, a.machine.Snapshot)
		ui.SetTitle(title)
		a.frontend = ui

	default:
		a.window = window.New(a.machine, a.display, a.config.Scale, a.machine.Frequency)
		a.window.SetTitle(title)
		a.frontend = a.window
	}

	return nil
}

// showMissingROM displays an error message until the user quits.
func (a *App) showMissingROM() error {
	lcd.ShowMessage(a.display, missingROM)

	if a.window != nil {
		a.window.QuitOnQ = true
	}

	if err := a.frontend.Start(); err != nil {
		return err
	}

	defer a.frontend.Stop()

	for a.frontend.Poll() {
		a.frontend.Refresh()
		time.Sleep(machine.DefaultRefresh)
	}

	return nil
}

// handleSignals stops the machine on interrupt or termination signals.
func (a *App) handleSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-ch
		a.machine.Stop()
	}()
}

// launchStatsview serves runtime statistics in the background.
func (a *App) launchStatsview() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(a.config.Statsview))
		mgr := statsview.New()
		mgr.Start()
	}()

	log.Printf("stats server available at http://%s/debug/statsview", a.config.Statsview)
}
