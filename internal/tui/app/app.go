// Package app provides the demo application that wires every component
// together behind a fuzzy menu.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/berth-dev/deckhand/internal/carousel"
	"github.com/berth-dev/deckhand/internal/config"
	"github.com/berth-dev/deckhand/internal/log"
	"github.com/berth-dev/deckhand/internal/menu"
	"github.com/berth-dev/deckhand/internal/questionnaire"
	"github.com/berth-dev/deckhand/internal/session"
	"github.com/berth-dev/deckhand/internal/sheet"
	"github.com/berth-dev/deckhand/internal/toast"
	"github.com/berth-dev/deckhand/internal/tui"
	"github.com/berth-dev/deckhand/internal/tui/commands"
	"github.com/berth-dev/deckhand/internal/ui"
)

// Deps are the collaborators the app does not own. All are optional.
type Deps struct {
	Logger         *log.Logger
	Store          *session.Store
	Questionnaires []*questionnaire.Questionnaire
}

// App is the root model of the demo.
type App struct {
	model  *tui.Model
	deps   Deps
	toasts *toast.Controller

	// Component views
	menuView          menu.Model
	carouselView      carousel.Model
	featuredView      carousel.Model
	sheetView         sheet.Model
	questionnaireView questionnaire.Model
	skeletonView      ui.Skeleton

	// Last position reported by each carousel, keyed by carousel ID.
	positions map[int]carousel.IndexChangedMsg

	recommendation tui.RecommendationMsg
	finished       *questionnaire.Questionnaire
	toastCount     int
}

// New creates the app. A config with invalid sheet detents falls back to
// the defaults for the sheet.
func New(cfg *config.Config, projectRoot string, deps Deps) *App {
	model := tui.NewModel(cfg, projectRoot)

	a := &App{
		model:  model,
		deps:   deps,
		toasts: toast.NewController(model.Cfg.ToastDuration()),

		positions: make(map[int]carousel.IndexChangedMsg),
	}
	a.menuView = menu.New("deckhand components", a.menuEntries())
	a.carouselView = carousel.New(galleryItems(), a.carouselOptions(false))
	a.featuredView = carousel.New(featuredItems(), a.carouselOptions(true))
	a.featuredView.SetAutoAdvance(false) // started when the screen opens
	a.sheetView = sheet.New("Shipping details", sheetContent, a.sheetOptions())
	a.skeletonView = ui.NewSkeleton("Loading recommendations", 48, 36, 42, 20)
	return a
}

// Model exposes the shared state, mainly for tests.
func (a *App) Model() *tui.Model { return a.model }

// Toasts returns the toast controller owned by the app.
func (a *App) Toasts() *toast.Controller { return a.toasts }

func (a *App) carouselOptions(featured bool) carousel.Options {
	opts := carousel.OptionsFromConfig(a.model.Cfg)
	if featured {
		opts.RenderCard = featuredCard
	} else {
		opts.AutoAdvance = 0
		opts.Wrap = false
	}
	return opts
}

func (a *App) sheetOptions() sheet.Options {
	opts, err := sheet.OptionsFromConfig(a.model.Cfg)
	if err != nil {
		opts, _ = sheet.OptionsFromConfig(config.DefaultConfig())
	}
	return opts
}

func (a *App) menuEntries() []menu.Entry {
	entries := []menu.Entry{
		{ID: "carousel", Title: "Carousel", Description: "paged cards with drag and flick snapping"},
		{ID: "featured", Title: "Featured carousel", Description: "auto-advancing, paused while dragging"},
		{ID: "sheet", Title: "Bottom sheet", Description: "small, medium and large detents"},
		{ID: "toasts", Title: "Toasts", Description: "queued notifications, one at a time"},
		{ID: "skeleton", Title: "Skeleton", Description: "shimmering loading placeholder"},
	}
	for _, qn := range a.deps.Questionnaires {
		entries = append(entries, menu.Entry{
			ID:          "q:" + qn.ID,
			Title:       qn.Title,
			Description: "questionnaire",
		})
	}
	return entries
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.menuView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 1)}
		a.menuView, _ = a.menuView.Update(inner)
		a.carouselView, _ = a.carouselView.Update(inner)
		a.featuredView, _ = a.featuredView.Update(inner)
		a.sheetView, _ = a.sheetView.Update(inner)
		if a.model.Screen == tui.ScreenQuestionnaire {
			a.questionnaireView, _ = a.questionnaireView.Update(inner)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.ErrorMsg:
		a.model.Err = msg.Err
		return a, a.toasts.Show(msg.Err.Error(), toast.LevelError)

	case tui.ToastMsg, toast.ExpireMsg:
		return a, a.toasts.Update(msg)

	case tui.ConfigReloadedMsg:
		return a, a.applyConfig(msg)

	case tui.GoHomeMsg:
		return a, a.goHome()

	case carousel.IndexChangedMsg:
		a.positions[msg.ID] = msg
		return a, nil

	case tui.SessionOpenedMsg:
		return a, a.handleSessionOpened(msg)

	case tui.AnswersSavedMsg:
		if msg.Err != nil {
			return a, a.toasts.Show("Saving answers failed: "+msg.Err.Error(), toast.LevelError)
		}
		return a, nil

	case tui.AnswersExportedMsg:
		if msg.Err != nil {
			return a, a.toasts.Show("Export failed: "+msg.Err.Error(), toast.LevelError)
		}
		return a, a.toasts.Show("Exported to "+msg.Path, toast.LevelSuccess)

	case tui.RecommendationMsg:
		a.recommendation = msg
		if msg.Err != nil {
			return a, a.toasts.Show("Building the prompt failed: "+msg.Err.Error(), toast.LevelError)
		}
		return a, nil
	}

	// Route messages based on current screen
	switch a.model.Screen {
	case tui.ScreenMenu:
		return a.updateMenu(msg)
	case tui.ScreenCarousel, tui.ScreenFeatured:
		return a.updateCarousel(msg)
	case tui.ScreenSheet:
		return a.updateSheet(msg)
	case tui.ScreenQuestionnaire:
		return a.updateQuestionnaire(msg)
	case tui.ScreenRecommendation:
		return a.updateRecommendation(msg)
	case tui.ScreenToasts:
		return a.updateToasts(msg)
	case tui.ScreenSkeleton:
		return a.updateSkeleton(msg)
	}
	return a, nil
}

// background forwards timer messages to components that are not on screen
// so their animations can finish. Each component ignores ticks it does not
// own.
func (a *App) background(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if a.model.Screen != tui.ScreenCarousel {
		a.carouselView, cmd = a.carouselView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.model.Screen != tui.ScreenFeatured {
		a.featuredView, cmd = a.featuredView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.menuView, cmd = a.menuView.Update(msg)

	if sel, ok := msg.(menu.SelectedMsg); ok {
		return a, a.open(sel.Entry.ID)
	}
	return a, tea.Batch(cmd, a.background(msg))
}

// open switches to the screen for a menu entry.
func (a *App) open(id string) tea.Cmd {
	switch id {
	case "carousel":
		a.model.Screen = tui.ScreenCarousel
	case "featured":
		a.model.Screen = tui.ScreenFeatured
		return a.featuredView.SetAutoAdvance(true)
	case "sheet":
		a.model.Screen = tui.ScreenSheet
	case "toasts":
		a.model.Screen = tui.ScreenToasts
	case "skeleton":
		a.model.Screen = tui.ScreenSkeleton
		return a.skeletonView.Init()
	default:
		qid, ok := strings.CutPrefix(id, "q:")
		if !ok {
			return nil
		}
		for _, qn := range a.deps.Questionnaires {
			if qn.ID == qid {
				a.questionnaireView = questionnaire.New(qn)
				a.questionnaireView, _ = a.questionnaireView.Update(tea.WindowSizeMsg{
					Width: a.model.Width, Height: a.model.Height,
				})
				a.model.Screen = tui.ScreenQuestionnaire
				a.model.SessionID = ""
				return commands.OpenSessionCmd(a.deps.Store, qn.ID)
			}
		}
	}
	return nil
}

func (a *App) goHome() tea.Cmd {
	var cmd tea.Cmd
	if a.model.Screen == tui.ScreenFeatured {
		cmd = a.featuredView.SetAutoAdvance(false)
	}
	a.model.Screen = tui.ScreenMenu
	return cmd
}

func (a *App) updateCarousel(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == tui.KeyEsc {
		return a, a.goHome()
	}

	var cmd tea.Cmd
	if a.model.Screen == tui.ScreenFeatured {
		a.featuredView, cmd = a.featuredView.Update(msg)
	} else {
		a.carouselView, cmd = a.carouselView.Update(msg)
	}
	return a, tea.Batch(cmd, a.background(msg))
}

func (a *App) updateSheet(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.sheetView, cmd = a.sheetView.Update(msg)

	switch msg := msg.(type) {
	case sheet.DismissedMsg:
		return a, a.goHome()
	case sheet.DetentChangedMsg:
		return a, a.toasts.Show(fmt.Sprintf("Sheet at detent %d (%.0f pt)", msg.Index+1, msg.Height), toast.LevelInfo)
	}
	return a, tea.Batch(cmd, a.background(msg))
}

func (a *App) handleSessionOpened(msg tui.SessionOpenedMsg) tea.Cmd {
	if msg.Err != nil {
		return a.toasts.Show("Session store unavailable: "+msg.Err.Error(), toast.LevelWarning)
	}
	if a.model.Screen != tui.ScreenQuestionnaire || a.questionnaireView.Questionnaire().ID != msg.Questionnaire {
		return nil
	}
	a.model.SessionID = msg.SessionID
	if msg.Resumed {
		a.questionnaireView = a.questionnaireView.WithAnswers(msg.Answers)
		return a.toasts.Show("Resumed your previous answers", toast.LevelInfo)
	}
	return nil
}

func (a *App) updateQuestionnaire(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.questionnaireView, cmd = a.questionnaireView.Update(msg)

	switch msg := msg.(type) {
	case questionnaire.ChangedMsg:
		return a, commands.SaveAnswersCmd(a.deps.Store, a.model.SessionID, msg.Answers)

	case questionnaire.CompletedMsg:
		qn := msg.Questionnaire
		_ = a.deps.Logger.Append(log.LogEvent{
			Event:         log.EventQuestionnaireCompleted,
			SessionID:     a.model.SessionID,
			Questionnaire: qn.ID,
			Answered:      msg.Answers.Len(),
			Total:         len(qn.Questions),
		})
		a.finished = qn
		a.recommendation = tui.RecommendationMsg{}
		a.model.Screen = tui.ScreenRecommendation
		return a, tea.Batch(
			commands.CompleteSessionCmd(a.deps.Store, a.model.SessionID, msg.Answers),
			commands.RecommendCmd(qn, msg.Answers, a.model.Width-4),
			a.skeletonView.Init(),
			a.toasts.Show("Answers saved", toast.LevelSuccess),
		)
	}
	return a, tea.Batch(cmd, a.background(msg))
}

func (a *App) updateRecommendation(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case tui.KeyEsc, tui.KeyEnter:
			a.model.SessionID = ""
			return a, a.goHome()
		case "e":
			if a.finished == nil {
				return a, nil
			}
			return a, commands.ExportAnswersCmd(
				a.model.ProjectRoot,
				a.deps.Logger,
				a.finished.ID,
				a.model.SessionID,
				a.questionnaireView.Answers(),
			)
		}
	}

	// The skeleton shimmers until the prompt arrives.
	var cmd tea.Cmd
	if a.recommendation.Prompt == "" {
		a.skeletonView, cmd = a.skeletonView.Update(msg)
	}
	return a, tea.Batch(cmd, a.background(msg))
}

var toastLevels = []toast.Level{toast.LevelInfo, toast.LevelSuccess, toast.LevelWarning, toast.LevelError}

func (a *App) updateToasts(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case tui.KeyEsc:
			return a, a.goHome()
		case "t":
			return a, a.nextToast()
		case "b":
			return a, tea.Batch(a.nextToast(), a.nextToast(), a.nextToast())
		case "d":
			return a, a.toasts.Dismiss()
		}
	}
	return a, a.background(msg)
}

func (a *App) nextToast() tea.Cmd {
	level := toastLevels[a.toastCount%len(toastLevels)]
	a.toastCount++
	return a.toasts.Show(fmt.Sprintf("Toast #%d (%s)", a.toastCount, level), level)
}

func (a *App) updateSkeleton(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == tui.KeyEsc {
		return a, a.goHome()
	}
	var cmd tea.Cmd
	a.skeletonView, cmd = a.skeletonView.Update(msg)
	return a, tea.Batch(cmd, a.background(msg))
}

// applyConfig pushes a reloaded config into every component.
func (a *App) applyConfig(msg tui.ConfigReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		_ = a.deps.Logger.Append(log.LogEvent{Event: log.EventConfigReloadFailed, Error: msg.Err.Error()})
		return a.toasts.Show("Config not reloaded: "+msg.Err.Error(), toast.LevelError)
	}

	a.model.Cfg = msg.Config
	a.carouselView.SetOptions(a.carouselOptions(false))
	a.featuredView.SetOptions(a.carouselOptions(true))
	a.sheetView.SetOptions(a.sheetOptions())
	a.toasts.SetDuration(msg.Config.ToastDuration())

	_ = a.deps.Logger.Append(log.LogEvent{Event: log.EventConfigReloaded})
	return a.toasts.Show("Config reloaded", toast.LevelInfo)
}
