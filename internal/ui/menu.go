package ui

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"
	"go.uber.org/zap"

	"samplehost/internal/domain"
	"samplehost/internal/host"
	"samplehost/internal/infra/telemetry"
	"samplehost/internal/ui/events"
)

// menuSection is one submenu of the tray menu. An empty Title holds the
// commands that registered without a menu.
type menuSection struct {
	Title    string
	Commands []domain.Command
}

// groupCommands groups commands by menu, keeping first-seen menu order and
// registration order within each menu.
func groupCommands(cmds []domain.Command) []menuSection {
	var sections []menuSection
	index := make(map[string]int)
	for _, cmd := range cmds {
		i, ok := index[cmd.Menu]
		if !ok {
			i = len(sections)
			index[cmd.Menu] = i
			sections = append(sections, menuSection{Title: cmd.Menu})
		}
		sections[i].Commands = append(sections[i].Commands, cmd)
	}
	return sections
}

// MenuBinder renders the host command table into the system tray menu and
// re-renders it whenever commands are added or removed.
type MenuBinder struct {
	commands *host.CommandTable
	logger   *zap.Logger

	mu           sync.Mutex
	app          *application.App
	window       application.Window
	tray         *application.SystemTray
	menu         *application.Menu
	menuAttached bool
}

func NewMenuBinder(commands *host.CommandTable, logger *zap.Logger) *MenuBinder {
	if commands == nil {
		panic("ui.MenuBinder requires a command table")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	binder := &MenuBinder{
		commands: commands,
		logger:   logger.Named("menu"),
	}
	commands.OnChange(binder.render)
	return binder
}

// Attach creates the tray and renders the current commands.
func (b *MenuBinder) Attach(app *application.App, window application.Window) {
	b.mu.Lock()
	b.app = app
	b.window = window
	if b.tray == nil && app != nil {
		tray := app.SystemTray.New()
		tray.SetTooltip("samplehost")
		tray.OnDoubleClick(b.showWindow)
		b.tray = tray
		b.menuAttached = false
	}
	b.mu.Unlock()
	b.render(b.commands.List())
}

func (b *MenuBinder) Shutdown() {
	b.mu.Lock()
	tray := b.tray
	b.tray = nil
	b.menuAttached = false
	b.mu.Unlock()
	if tray != nil {
		tray.Destroy()
	}
}

func (b *MenuBinder) render(cmds []domain.Command) {
	b.mu.Lock()
	app := b.app
	tray := b.tray
	if tray == nil {
		b.mu.Unlock()
		return
	}
	if b.menu == nil {
		b.menu = application.NewMenu()
	}
	menu := b.menu
	attached := b.menuAttached
	b.menuAttached = true
	b.mu.Unlock()

	menu.Clear()
	b.populate(menu, cmds)
	if !attached {
		tray.SetMenu(menu)
	}
	menu.Update()
	events.EmitCommandsUpdated(app, cmds)
}

func (b *MenuBinder) populate(menu *application.Menu, cmds []domain.Command) {
	menu.Add("Show samplehost").OnClick(func(_ *application.Context) {
		b.showWindow()
	})
	menu.AddSeparator()

	sections := groupCommands(cmds)
	if len(sections) == 0 {
		menu.Add("No commands").SetEnabled(false)
	}
	for _, section := range sections {
		target := menu
		if section.Title != "" {
			target = menu.AddSubmenu(section.Title)
		}
		for _, cmd := range section.Commands {
			id := cmd.ID
			target.Add(cmd.Label).OnClick(func(_ *application.Context) {
				// Commands may open modal dialogs; keep the menu loop free.
				go b.invoke(id)
			})
		}
	}

	menu.AddSeparator()
	menu.Add("Quit samplehost").OnClick(func(_ *application.Context) {
		b.mu.Lock()
		app := b.app
		b.mu.Unlock()
		if app != nil {
			app.Quit()
		}
	})
}

func (b *MenuBinder) invoke(id string) {
	if err := b.commands.Invoke(context.Background(), id); err != nil {
		b.logger.Warn("menu command failed", telemetry.CommandField(id), zap.Error(err))
		b.mu.Lock()
		app := b.app
		b.mu.Unlock()
		uiErr := MapDomainError(err)
		events.EmitError(app, uiErr.Code, uiErr.Message, uiErr.Details)
	}
}

func (b *MenuBinder) showWindow() {
	b.mu.Lock()
	window := b.window
	b.mu.Unlock()
	if window != nil {
		window.Show().Focus()
	}
}
