// Package controller runs the terminal UI: it holds the view state, renders
// the list and calendar pages from the event cache, and turns keypresses
// into API calls. All state lives on the Controller and is only touched
// from the UI goroutine; background fetches hand their results over with
// QueueUpdateDraw.
package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"eventdeck/pkg/api"
	"eventdeck/pkg/config"
	"eventdeck/pkg/schedule"
)

// View and calendar style names as they appear in the header.
const (
	ViewList     = "list"
	ViewCalendar = "calendar"

	StyleMonthly   = "monthly"
	StyleWaterfall = "waterfall"
)

const headerHeight = 7

// Controller mediates between the API client and the view.
type Controller struct {
	ctx context.Context
	api *api.Client
	cfg config.Config

	app   *tview.Application
	root  *tview.Grid
	pages *tview.Pages

	header    *tview.Table
	search    *tview.InputField
	statusBar *tview.TextView

	listTable   *tview.Table
	listContent *eventListContent
	listed      []api.Event

	calGrid    *tview.Grid
	calTitle   *tview.TextView
	calTable   *tview.Table
	calBuckets map[string][]api.Event

	dayGrid    *tview.Grid
	dayTitle   *tview.TextView
	dayTable   *tview.Table
	dayContent *eventListContent
	dayList    []api.Event

	detailView    *tview.TextView
	selected      *api.Event
	detailActions []api.Action
	returnPage    string

	formGrid     *tview.Grid
	formTitle    *tview.TextView
	eventForm    *tview.Form
	titleField   *tview.InputField
	descField    *tview.InputField
	dueField     *tview.InputField
	hintField    *tview.InputField
	priorityDrop *tview.DropDown
	editing      *api.Event

	settingsGrid *tview.Grid
	settingsForm *tview.Form

	confirm       *tview.Modal
	confirmAction func()

	mainEvents    map[tcell.Key]KeyEvent
	detailEvents  map[tcell.Key]KeyEvent
	dayPageEvents map[tcell.Key]KeyEvent
	formEvents    map[tcell.Key]KeyEvent

	state      State
	events     []api.Event
	generation int

	clearTimer *time.Timer
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// State is the complete view state: which page is up, the active filters,
// the calendar anchor month, and the runtime toggles.
type State struct {
	Status        string
	View          string
	CalendarStyle string
	AnchorYear    int
	AnchorMonth   time.Month
	QuickAdd      bool
	Search        string
	Notifications config.NotificationSettings
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, client *api.Client, cfg config.Config) (*Controller, error) {
	now := time.Now()

	c := Controller{
		ctx: ctx,
		api: client,
		cfg: cfg,
		app: tview.NewApplication(),
		state: State{
			Status:        api.StatusActive,
			View:          ViewList,
			CalendarStyle: StyleWaterfall,
			AnchorYear:    now.Year(),
			AnchorMonth:   now.Month(),
			QuickAdd:      cfg.QuickAdd,
			Notifications: cfg.Notifications,
		},
	}

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go starts the app.
func (c *Controller) Go() {
	c.pages = tview.NewPages()

	c.header = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	c.statusBar = tview.NewTextView().SetDynamicColors(true)
	c.statusBar.SetScrollable(false)

	c.initSearch()
	c.initListPage()
	c.initCalendarPage()
	c.initDayPage()
	c.initDetailPage()
	c.initEventForm()
	c.initSettingsForm()
	c.initConfirm()

	c.pages.AddPage(pageName(ViewList), c.listTable, true, true)
	c.pages.AddPage(pageName(ViewCalendar), c.calGrid, true, false)
	c.pages.AddPage(pageName("day"), c.dayGrid, true, false)
	c.pages.AddPage(pageName("detail"), c.detailView, true, false)
	c.pages.AddPage(pageName("form"), c.formGrid, true, false)
	c.pages.AddPage(pageName("settings"), c.settingsGrid, true, false)
	c.pages.AddPage(pageName("confirm"), c.confirm, false, false)

	c.root = tview.NewGrid().SetBorders(true).SetRows(headerHeight, 1, 0, 1)
	c.root.AddItem(c.header, 0, 0, 1, 1, 0, 0, false)
	c.root.AddItem(c.search, 1, 0, 1, 1, 0, 0, false)
	c.root.AddItem(c.pages, 2, 0, 1, 1, 0, 0, true)
	c.root.AddItem(c.statusBar, 3, 0, 1, 1, 0, 0, false)

	c.app.SetInputCapture(c.handleKeys)

	c.renderMain()
	c.reload()

	go c.refreshLoop()

	if err := c.app.SetRoot(c.root, true).SetFocus(c.root).Run(); err != nil {
		panic(err)
	}
}

func pageName(name string) string {
	return name + "-page"
}

// handleKeys dispatches keypresses to the map for the page in front. Keys
// without a binding fall through to the focused primitive, which is what
// lets the form fields and table navigation work.
func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	if c.search.HasFocus() {
		switch evt.Key() {
		case tcell.KeyEscape:
			c.search.SetText("")
			c.app.SetFocus(c.pages)

			return nil
		case tcell.KeyEnter:
			c.app.SetFocus(c.pages)

			return nil
		}

		return evt
	}

	events := c.mainEvents

	switch front, _ := c.pages.GetFrontPage(); front {
	case pageName("form"), pageName("settings"), pageName("confirm"):
		events = c.formEvents
	case pageName("detail"):
		events = c.detailEvents
	case pageName("day"):
		events = c.dayPageEvents
	}

	key := AsKey(evt)
	if k, ok := events[key]; ok {
		return k.Action(evt)
	}

	return evt
}

// renderMain refreshes the header and whichever main page is active
// without switching pages, so a background reload never yanks the user
// out of a detail view or form.
func (c *Controller) renderMain() {
	c.renderHeader()

	if c.state.View == ViewCalendar {
		c.renderCalendar()
	} else {
		c.renderList()
	}
}

// showMain renders and switches to the active main page.
func (c *Controller) showMain() {
	c.renderMain()
	c.pages.SwitchToPage(pageName(c.state.View))
	c.app.SetFocus(c.pages)
}

// visibleEvents applies the status filter and the search term to the
// cached events. The cache itself is never modified.
func (c *Controller) visibleEvents() []api.Event {
	events := c.events

	if c.state.Status != api.StatusAll {
		filtered := make([]api.Event, 0, len(events))

		for _, event := range events {
			if event.Status == c.state.Status {
				filtered = append(filtered, event)
			}
		}

		events = filtered
	}

	return schedule.FilterSearch(events, c.state.Search)
}

// reload fetches the full event list in the background and swaps the cache
// on the UI goroutine. The generation counter makes sure a slow response
// never overwrites the result of a reload started after it.
func (c *Controller) reload() {
	c.generation++
	generation := c.generation

	go func() {
		events, err := c.api.ListEvents(c.ctx, api.StatusAll)

		c.app.QueueUpdateDraw(func() {
			if generation != c.generation {
				log.Debug().Int("generation", generation).Msg("dropping stale reload response")

				return
			}

			if err != nil {
				log.Err(err).Msg("error loading events")
				c.notifyError("failed to load events")

				return
			}

			c.events = events
			c.renderMain()
		})
	}()
}

func (c *Controller) refreshLoop() {
	ticker := time.NewTicker(time.Duration(c.cfg.RefreshSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.app.QueueUpdateDraw(c.reload)
		}
	}
}

// renderHeader rebuilds the header table: the state line at the top,
// then three sorted columns of keyboard shortcuts. The first column holds
// misc shortcuts, the second the "Show" shortcuts, and the third the
// calendar shortcuts (shown only while the calendar is up).
func (c *Controller) renderHeader() {
	c.header.Clear()

	row := 0
	c.header.SetCell(row, 0, tview.NewTableCell(c.headerLine()))
	row++

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range c.mainEvents {
		if c.skipShortcut(event.Description) {
			continue
		}

		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)

		switch {
		case strings.HasPrefix(event.Description, "Show"):
			shortcuts[1] = append(shortcuts[1], text)
		case strings.HasPrefix(event.Description, "Calendar"):
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row-1 < len(shortcuts[0]) || row-1 < len(shortcuts[1]) || row-1 < len(shortcuts[2]) {
		for col := 0; col < 3; col++ {
			if row-1 < len(shortcuts[col]) {
				c.header.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-1]).SetExpansion(1))
			}
		}

		row++
	}
}

func (c *Controller) headerLine() string {
	view := c.state.View
	if view == ViewCalendar {
		view = fmt.Sprintf("%s (%s)", view, c.state.CalendarStyle)
	}

	line := fmt.Sprintf("[yellow]%s · %s · %d events", c.state.Status, view, len(c.visibleEvents()))

	if c.state.QuickAdd {
		line += " · quick-add"
	}

	if c.state.Search != "" {
		line += fmt.Sprintf(" · search %q", c.state.Search)
	}

	return line
}

// skipShortcut hides the shortcuts that make no sense in the current
// state: calendar keys while the list is up, and month navigation while
// the waterfall scrolls through months on its own.
func (c *Controller) skipShortcut(description string) bool {
	if !strings.HasPrefix(description, "Calendar") {
		return false
	}

	if c.state.View != ViewCalendar {
		return true
	}

	if c.state.CalendarStyle != StyleWaterfall {
		return false
	}

	switch description {
	case "Calendar Prev Month", "Calendar Next Month":
		return true
	}

	return false
}

func (c *Controller) initSearch() {
	c.search = tview.NewInputField().SetLabel("search: ")

	c.search.SetChangedFunc(func(text string) {
		c.state.Search = text
		c.renderMain()
	})
}
