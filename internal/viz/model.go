package viz

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/agemap/internal/anim"
	"github.com/san-kum/agemap/internal/export"
	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/style"
)

// Slider bounds for the display year. The animation wraps over a narrower
// range (see anim.WrapMin/WrapMax); the two sets of constants are kept
// separate on purpose.
const (
	SliderMin = 1871.0
	SliderMax = 2022.0
)

const (
	defaultCanvasW = 80
	defaultCanvasH = 24
	minCanvasW     = 40
	minCanvasH     = 20
	statsWidth     = 36

	// Screen rows above and around the canvas, used to map mouse
	// coordinates back onto canvas cells. Header line, then the canvas
	// panel's rounded border.
	headerRows = 1
	panelPad   = 1
	footerRows = 2

	noticeDuration = 3 * time.Second
)

var (
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	yearStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("238")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Italic(true)
)

type TickMsg time.Time

// yearMsg carries an animation step from the driver goroutine into the
// update loop.
type yearMsg float64

// hitMsg is a finished hover lookup: the lookup it answers and the index of
// the footprint hit, -1 for ground.
type hitMsg struct {
	lookup anim.Lookup
	index  int
}

// Model is the interactive choropleth: a year slider with play/pause
// animation over a Braille map canvas, hover tooltips, themes, and GIF/SVG
// capture.
type Model struct {
	set    *geo.FeatureSet
	cam    *Camera
	canvas *Canvas
	spec   style.RenderSpec

	year    float64
	driver  *anim.Driver
	handle  *anim.Handle
	yearCh  chan float64
	visible int

	tooltip   *anim.Tooltip
	tipEasing bool
	debounce  anim.Debouncer
	highlight int

	draggingSlider bool

	recording bool
	frames    []*image.Paletted

	notice      string
	noticeUntil time.Time

	showHelp bool
	frame    int
}

// NewModel builds the map over a loaded feature set. The driver supplies the
// play/pause cadence; tests pass one built on a manual clock.
func NewModel(set *geo.FeatureSet, driver *anim.Driver) Model {
	year := initialYear(set)
	m := Model{
		set:       set,
		cam:       NewCamera(set.Bounds),
		canvas:    NewCanvas(defaultCanvasW, defaultCanvasH),
		spec:      style.ForYear(year),
		year:      year,
		driver:    driver,
		yearCh:    make(chan float64, 1),
		tooltip:   anim.NewTooltip(),
		highlight: -1,
	}
	m.draw()
	return m
}

// initialYear picks the boot position for the slider: the newest recorded
// construction year, clamped to the slider bounds, so the whole dataset is
// visible on the first frame.
func initialYear(set *geo.FeatureSet) float64 {
	if _, newest, ok := set.YearRange(); ok {
		y := float64(newest)
		if y < SliderMin {
			y = SliderMin
		}
		if y > SliderMax {
			y = SliderMax
		}
		return y
	}
	return SliderMax
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) }),
		listenYears(m.yearCh),
	)
}

// listenYears bridges the driver's callback channel into the message loop.
// Exactly one listener is alive at a time: Init starts it and every yearMsg
// re-arms it.
func listenYears(ch <-chan float64) tea.Cmd {
	return func() tea.Msg { return yearMsg(<-ch) }
}

// Update handles input, animation steps and the frame tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case yearMsg:
		m.setYear(float64(msg))
		return m, listenYears(m.yearCh)

	case hitMsg:
		var cmd tea.Cmd
		if next, ok := m.debounce.Finish(); ok {
			cmd = m.lookupCmd(next)
		}
		if !m.debounce.Stale(msg.lookup) {
			m.applyHit(msg)
		}
		return m, cmd

	case TickMsg:
		m.frame++
		m.cam.Tick()
		if m.tipEasing {
			m.tipEasing = m.tooltip.Tick()
		}
		if m.notice != "" && time.Now().After(m.noticeUntil) {
			m.notice = ""
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopAnimation()
		return m, tea.Quit
	case " ", "p":
		if m.handle != nil {
			m.stopAnimation()
		} else {
			m.startAnimation()
		}
	case "left":
		m.stepYear(-1)
	case "right":
		m.stepYear(1)
	case "h":
		m.cam.Pan(-0.15, 0)
	case "l":
		m.cam.Pan(0.15, 0)
	case "j", "down":
		m.cam.Pan(0, -0.15)
	case "k", "up":
		m.cam.Pan(0, 0.15)
	case "+", "=":
		m.cam.ZoomIn()
	case "-", "_":
		m.cam.ZoomOut()
	case "r":
		m.cam.Reset()
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
	case "g":
		if m.recording {
			m.recording = false
			m.setNotice(m.saveGIF())
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "s":
		m.setNotice(m.saveSVG())
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.cam.ZoomIn()
		case tea.MouseButtonWheelDown:
			m.cam.ZoomOut()
		case tea.MouseButtonLeft:
			trackX0, trackW := m.sliderTrack()
			if msg.Y == m.sliderRow() && msg.X >= trackX0 && msg.X < trackX0+trackW {
				m.draggingSlider = true
				m.setYearFromSlider(msg.X)
			}
		}

	case tea.MouseActionMotion:
		if m.draggingSlider {
			m.setYearFromSlider(msg.X)
			return m, nil
		}
		if msg.Button != tea.MouseButtonNone {
			return m, nil
		}
		col := msg.X - panelPad
		row := msg.Y - headerRows - panelPad
		if col < 0 || col >= m.canvas.Width || row < 0 || row >= m.canvas.Height {
			m.highlight = -1
			m.tooltip.Hide()
			return m, nil
		}
		if l, ok := m.debounce.Submit(col, row); ok {
			return m, m.lookupCmd(l)
		}

	case tea.MouseActionRelease:
		m.draggingSlider = false
	}
	return m, nil
}

// lookupCmd starts one asynchronous hover lookup. The screen-to-map
// unprojection happens here, on the update loop, so the command goroutine
// only walks the immutable feature set.
func (m *Model) lookupCmd(l anim.Lookup) tea.Cmd {
	p := CellPoint(m.cam, m.canvas, l.X, l.Y)
	set := m.set
	return func() tea.Msg {
		return hitMsg{lookup: l, index: set.HitTest(p)}
	}
}

// applyHit moves the highlight and tooltip to a lookup result. The previous
// highlight is always cleared before a new one is set.
func (m *Model) applyHit(msg hitMsg) {
	m.highlight = -1
	if msg.index < 0 {
		m.tooltip.Hide()
		return
	}
	m.highlight = msg.index
	f := m.set.Features[msg.index]
	label := "No title date"
	if f.Year > 0 {
		label = fmt.Sprintf("Titled in %d", f.Year)
	}
	m.tooltip.Show(float64(msg.lookup.X), float64(msg.lookup.Y), label)
	m.tipEasing = true
}

func (m *Model) startAnimation() {
	if m.handle != nil {
		m.handle.Stop()
	}
	ch := m.yearCh
	m.handle = m.driver.Start(m.year, func(v float64) {
		// Never block the driver goroutine; a frame the UI missed is
		// simply dropped.
		select {
		case ch <- v:
		default:
		}
	})
}

func (m *Model) stopAnimation() {
	if m.handle != nil {
		m.handle.Stop()
		m.handle = nil
	}
}

func (m *Model) setYear(v float64) {
	m.year = v
	m.spec = style.ForYear(v)
}

// stepYear moves the slider by whole years. Any slider input stops a running
// animation first.
func (m *Model) stepYear(delta int) {
	m.stopAnimation()
	y := math.Floor(m.year) + float64(delta)
	if y < SliderMin {
		y = SliderMin
	}
	if y > SliderMax {
		y = SliderMax
	}
	m.setYear(y)
}

func (m *Model) setYearFromSlider(x int) {
	m.stopAnimation()
	trackX0, trackW := m.sliderTrack()
	t := float64(x-trackX0) / float64(trackW-1)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	m.setYear(math.Round(SliderMin + t*(SliderMax-SliderMin)))
}

// sliderRow is the screen row of the slider bar: header, then the bordered
// canvas panel.
func (m Model) sliderRow() int { return headerRows + m.canvas.Height + 2 }

// sliderTrack returns the first column of the slider track and its width.
// The line reads "1871 ├──●──┤ 2022".
func (m Model) sliderTrack() (x0, w int) {
	return 6, m.canvas.Width - 10
}

func (m *Model) setNotice(text string) {
	if text == "" {
		return
	}
	m.notice = text
	m.noticeUntil = time.Now().Add(noticeDuration)
}

func (m *Model) resize(w, h int) {
	cw := w - statsWidth - 2
	ch := h - headerRows - footerRows - 2
	if cw < minCanvasW {
		cw = minCanvasW
	}
	if ch < minCanvasH {
		ch = minCanvasH
	}
	if cw != m.canvas.Width || ch != m.canvas.Height {
		m.canvas = NewCanvas(cw, ch)
	}
}

// draw repaints the canvas: footprints under the year's ramps, the hover
// highlight, and the tooltip overlay at its eased position.
func (m *Model) draw() {
	m.canvas.Clear()
	m.visible = DrawFeatures(m.canvas, m.set, m.cam, m.spec, m.highlight)

	if m.tooltip.Visible() {
		x, y := m.tooltip.Position()
		text := " " + m.tooltip.Text() + " "
		tx, ty := x+2, y-1
		if ty < 0 {
			ty = y + 1
		}
		if tx+len(text) > m.canvas.Width {
			tx = x - 2 - len(text)
		}
		fg := style.ParseHex(string(CurrentTheme.Background))
		bg := style.ParseHex(string(CurrentTheme.Accent))
		m.canvas.WriteTextBG(tx, ty, text, fg, bg)
	}
}

func (m Model) View() string {
	canvasPanel := canvasStyle.Render(strings.TrimRight(m.canvas.String(), "\n"))

	stats := m.statsView()
	// The side panel must never outgrow the canvas panel, or the footer
	// (and the slider's mouse row) would shift.
	if lines := strings.Split(stats, "\n"); len(lines) > m.canvas.Height+2 {
		stats = strings.Join(lines[:m.canvas.Height+2], "\n")
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasPanel, statsStyle.Render(stats))
	view := m.headerView() + "\n" + mainView + "\n" + m.sliderView() + "\n" + m.legendView()
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) headerView() string {
	parts := []string{
		GradientText("AGEMAP", CurrentTheme.Primary, CurrentTheme.Accent),
		yearStyle.Render(fmt.Sprintf(" %d ", int(math.Floor(m.year)))),
	}
	if m.handle != nil {
		parts = append(parts, StatusRunning.Render(AnimatedSpinner(m.frame/6)+" playing"))
	} else {
		parts = append(parts, StatusPaused.Render("⏸ paused"))
	}
	if m.recording {
		parts = append(parts, StatusRecording.Render("● rec"))
	}
	parts = append(parts, Subtle.Render(m.set.Source))
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) statsView() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("BUILDING AGES") + "\n\n")
	s.WriteString(labelStyle.Render("Source") + valueStyle.Render(m.set.Source) + "\n")
	s.WriteString(labelStyle.Render("Buildings") + valueStyle.Render(fmt.Sprintf("%d", m.set.Len())) + "\n")
	s.WriteString(labelStyle.Render("In view") + valueStyle.Render(fmt.Sprintf("%d", m.visible)) + "\n")
	if oldest, newest, ok := m.set.YearRange(); ok {
		s.WriteString(labelStyle.Render("Years") + valueStyle.Render(fmt.Sprintf("%d-%d", oldest, newest)) + "\n")
	}
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.1fx", m.cam.Zoom())) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(CurrentTheme.Name) + "\n")

	if _, counts := m.set.DecadeCounts(); len(counts) > 1 {
		chart := asciigraph.Plot(counts,
			asciigraph.Height(5),
			asciigraph.Width(24),
			asciigraph.Caption("built per decade"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + Separator(statsWidth-6) + "\n")
	s.WriteString(KeyHint.Render("SP:Play ←→:Year T:Theme\nHJKL:Pan +/-:Zoom R:Home\nG:Record S:Snapshot ?:Help"))
	return s.String()
}

func (m Model) sliderView() string {
	_, trackW := m.sliderTrack()
	t := (m.year - SliderMin) / (SliderMax - SliderMin)
	pos := int(math.Round(t * float64(trackW-1)))
	if pos < 0 {
		pos = 0
	}
	if pos >= trackW {
		pos = trackW - 1
	}

	marker := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("●")
	left := Subtle.Render(strings.Repeat("─", pos))
	right := Subtle.Render(strings.Repeat("─", trackW-pos-1))
	return Subtle.Render("1871 ├") + left + marker + right + Subtle.Render("┤ 2022")
}

// legendView shows the three ramp anchors for the current year.
func (m Model) legendView() string {
	parts := make([]string, 0, len(m.spec.Colors))
	for _, st := range m.spec.Colors {
		parts = append(parts, Swatch(st.Color)+" "+Subtle.Render(st.Label))
	}
	return " " + strings.Join(parts, "   ")
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space/P - Play or pause the years   ║
║  ← / →   - Step the year slider      ║
║  H J K L - Pan the map               ║
║  + / -   - Zoom (mouse wheel works)  ║
║  R       - Reset the camera          ║
║  T       - Cycle themes              ║
║  G       - Toggle GIF recording      ║
║  S       - Save an SVG snapshot      ║
║  ?       - Toggle this help          ║
║  Q       - Quit                      ║
╚══════════════════════════════════════╝
`

// captureFrame rasterizes the canvas into a paletted image: one frame of a
// recording. The palette is rebuilt per frame from the cell colors actually
// on screen, index 0 being the theme background.
func (m *Model) captureFrame() {
	const charW, charH = 8, 16
	imgW, imgH := m.canvas.Width*charW, m.canvas.Height*charH

	bg := style.ParseHex(string(CurrentTheme.Background))
	pal := color.Palette{rgba(bg)}
	index := map[style.Color]uint8{bg: 0}

	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), nil)
	for row := 0; row < m.canvas.Height; row++ {
		for col := 0; col < m.canvas.Width; col++ {
			r := m.canvas.Grid[row][col]
			if r <= emptyCell {
				continue
			}
			pattern := int(r - emptyCell)

			c := m.canvas.CellColor(col, row)
			ci, ok := index[c]
			if !ok {
				if len(pal) >= 256 {
					ci = 0
				} else {
					ci = uint8(len(pal))
					pal = append(pal, rgba(c))
					index[c] = ci
				}
			}

			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, ci)
						}
					}
				}
			}
		}
	}
	img.Palette = pal
	m.frames = append(m.frames, img)
}

// saveGIF writes the captured frames and returns a notice line for the
// header, or "" when there is nothing to save.
func (m *Model) saveGIF() string {
	if len(m.frames) == 0 {
		return ""
	}
	name := export.UniqueName("agemap", "gif")
	if err := export.SaveGIF(name, m.frames, 2); err != nil {
		return "gif failed: " + err.Error()
	}
	return fmt.Sprintf("saved %s (%d frames)", name, len(m.frames))
}

// saveSVG snapshots the current viewport at the current year.
func (m *Model) saveSVG() string {
	name := export.UniqueName("agemap", "svg")
	doc := export.SVG(m.set, m.spec, m.cam.Viewport(), 960, 720)
	if err := os.WriteFile(name, []byte(doc), 0o644); err != nil {
		return "svg failed: " + err.Error()
	}
	return "saved " + name
}

func rgba(c style.Color) color.RGBA {
	return color.RGBA{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B), A: 255}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Run opens the interactive map over a loaded feature set and blocks until
// the user quits. Mouse reporting runs in all-motion mode for the hover
// tooltips.
func Run(set *geo.FeatureSet, driver *anim.Driver) error {
	p := tea.NewProgram(NewModel(set, driver), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
