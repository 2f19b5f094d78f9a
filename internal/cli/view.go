package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/boxfile"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/sink"
)

// defaultViewColumnWidth is the reference column width in terminal cells.
const defaultViewColumnWidth = 32

type viewOpts struct {
	columnWidth float64
	seed        uint64
	logFile     string
}

// viewCommand creates the view command, a live terminal masonry.
func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{columnWidth: defaultViewColumnWidth}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Show boxes as a live masonry in the terminal",
		Long: `Show the boxes of a box file, or a generated sample set, as a live masonry.

The layout follows the terminal size and repacks when boxes are added,
removed or reordered, or when their content grows.

Keys:
  ↑/↓ pgup/pgdn  scroll
  a              add a box
  d              remove the last box
  r              move the last box to the front
  e              expand or collapse card details
  q              quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runView(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.columnWidth, "column-width", opts.columnWidth, "reference column width in cells")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "seed for generated boxes")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write layout logs to this file")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts viewOpts) error {
	var boxes []boxfile.Box
	if input != "" {
		var err error
		if boxes, err = boxfile.Import(input); err != nil {
			return err
		}
	} else {
		boxes = boxfile.Generate(0, opts.seed)
	}

	layout, err := c.Config.Options()
	if err != nil {
		return err
	}
	if opts.columnWidth > 0 {
		layout.ReferenceColumnWidth = opts.columnWidth
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.Create(opts.logFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.logFile, err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, c.Logger.GetLevel())
	if c.Logger.GetLevel() <= LogDebug {
		hooks := newLogHooks(logger)
		observability.SetLayoutHooks(hooks)
		observability.SetSinkHooks(hooks)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cards := newCardContainer(boxes, layout.ReferenceColumnWidth)
	var p *tea.Program
	driver, err := masonry.NewDriver(cards,
		masonry.WithOptions(layout),
		masonry.WithProbe(cards.probe),
		masonry.WithLogger(logger),
		masonry.WithPublisher(func(f masonry.Frame) { p.Send(frameMsg(f)) }),
		masonry.WithErrorHandler(func(err error) { p.Send(errMsg{err}) }),
	)
	if err != nil {
		return err
	}
	defer driver.Detach()

	p = tea.NewProgram(newViewModel(ctx, driver, cards, opts.seed), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viewModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// =============================================================================
// View Model
// =============================================================================

type (
	frameMsg masonry.Frame
	statsMsg masonry.Stats
	errMsg   struct{ err error }
)

// viewModel is the bubbletea model for the live masonry. Driver calls run in
// commands, never in Update or View, so a pass publishing a frame cannot wait
// on the event loop.
type viewModel struct {
	ctx    context.Context
	driver *masonry.Driver
	cards  *cardContainer

	frame    masonry.Frame
	stats    masonry.Stats
	attached bool
	width    int
	height   int
	offset   int
	seed     uint64
	err      error
}

func newViewModel(ctx context.Context, d *masonry.Driver, cards *cardContainer, seed uint64) viewModel {
	return viewModel{ctx: ctx, driver: d, cards: cards, seed: seed}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cards.setWidth(msg.Width)
		if !m.attached {
			m.attached = true
			return m, m.attach()
		}
		return m, m.resize()

	case frameMsg:
		m.frame = masonry.Frame(msg)
		m.offset = m.clampOffset(m.offset)
		cmds := []tea.Cmd{m.fetchStats()}
		if m.cards.setGutter(m.contentRows() > m.viewportRows()) {
			cmds = append(cmds, m.resize())
		}
		return m, tea.Batch(cmds...)

	case statsMsg:
		m.stats = masonry.Stats(msg)
		return m, nil

	case errMsg:
		m.err = msg.err
		if errors.IsFatal(msg.err) {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.err = nil
		return m, tea.Quit
	case "up", "k":
		m.offset = m.clampOffset(m.offset - 1)
	case "down", "j":
		m.offset = m.clampOffset(m.offset + 1)
	case "pgup":
		m.offset = m.clampOffset(m.offset - m.viewportRows())
	case "pgdown", " ":
		m.offset = m.clampOffset(m.offset + m.viewportRows())
	case "home", "g":
		m.offset = 0
	case "end", "G":
		m.offset = m.clampOffset(m.contentRows())
	case "a":
		m.seed++
		m.cards.add(boxfile.Generate(1, m.seed)[0])
		return m, m.run(m.driver.ChildrenChanged)
	case "d":
		if m.cards.removeLast() {
			return m, m.run(m.driver.ChildrenChanged)
		}
	case "r":
		if m.cards.rotate() {
			return m, m.run(m.driver.ChildrenChanged)
		}
	case "e":
		m.cards.toggleExpanded()
		return m, m.run(m.driver.ContentReady)
	}
	return m, nil
}

func (m viewModel) attach() tea.Cmd {
	d, ctx := m.driver, m.ctx
	return func() tea.Msg {
		if err := d.Attach(ctx); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m viewModel) resize() tea.Cmd {
	d := m.driver
	return func() tea.Msg {
		d.Resize()
		return nil
	}
}

func (m viewModel) run(pass func() error) tea.Cmd {
	return func() tea.Msg {
		if err := pass(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m viewModel) fetchStats() tea.Cmd {
	d := m.driver
	return func() tea.Msg { return statsMsg(d.Stats()) }
}

func (m viewModel) viewportRows() int {
	return max(m.height-1, 1)
}

func (m viewModel) contentRows() int {
	return int(m.frame.Height + 0.5)
}

func (m viewModel) clampOffset(o int) int {
	return max(min(o, m.contentRows()-m.viewportRows()), 0)
}

func (m viewModel) View() string {
	if m.frame.Columns == 0 {
		return StyleDim.Render("laying out…")
	}

	canvas := sink.RenderCanvas(m.ctx, m.frame, int(m.frame.Width), func(p masonry.Placement, _ int) string {
		return m.cards.card(p, m.frame)
	})
	lines := strings.Split(canvas, "\n")

	rows := m.viewportRows()
	var b strings.Builder
	gutter := m.cards.hasGutter()
	for i := 0; i < rows; i++ {
		var line string
		if y := m.offset + i; y < len(lines) {
			line = lines[y]
		}
		if gutter {
			pad := int(m.frame.Width) - lipgloss.Width(line)
			line += strings.Repeat(" ", max(pad, 0)) + m.scrollCell(i, rows)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	return b.String()
}

// scrollCell draws row i of a scroll indicator rows tall.
func (m viewModel) scrollCell(i, rows int) string {
	total := max(m.contentRows(), 1)
	thumb := max(rows*rows/total, 1)
	start := m.offset * rows / total
	if i >= start && i < start+thumb {
		return StyleNumber.Render("┃")
	}
	return StyleDim.Render("│")
}

func (m viewModel) statusLine() string {
	if m.err != nil {
		return StyleWarning.Render(iconWarning + " " + errors.UserMessage(m.err))
	}
	status := fmt.Sprintf("%d boxes · %d columns · %d passes · %d packs",
		m.cards.len(), m.frame.Columns, m.stats.Passes, m.stats.Packs)
	keys := "a add  d remove  r rotate  e expand  q quit"
	return StyleDim.Render(status + "  " + keys)
}
