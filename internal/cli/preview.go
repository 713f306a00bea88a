package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/pipeline"
	"github.com/matzehuels/mathscene/pkg/scene"
)

// Preview styles
var (
	previewBarStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	previewTrackStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewPlayStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	previewPausedStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	quality := pipeline.QualityLow

	cmd := &cobra.Command{
		Use:   "preview <scene>",
		Short: "Scrub through a scene's timeline in the terminal",
		Long: `Play a scene in memory and browse its frames. Every animated value is
shown as it was at the selected frame.

Keys: ←/→ frame, ↑/↓ one second, [/] step, space play, q quit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			frames, sc, err := runner.Record(ctx, pipeline.Options{
				Scene:   args[0],
				Quality: quality,
				Params:  c.Config.Params(args[0]),
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}
			if len(frames) == 0 {
				printWarning("%s emitted no frames", args[0])
				return nil
			}
			m := newPreviewModel(args[0], frames, sc.Config().FPS)
			_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&quality, "quality", "q", quality, "quality preset: low (default), medium, high")
	return cmd
}

// =============================================================================
// previewModel - Timeline scrubber
// =============================================================================

type previewTickMsg time.Time

// previewModel is the bubbletea model for the timeline scrubber.
type previewModel struct {
	scene   string
	frames  []scene.Frame
	cells   []string
	fps     float64
	cursor  int
	playing bool
	width   int
}

func newPreviewModel(name string, frames []scene.Frame, fps float64) previewModel {
	var cells []string
	seen := map[string]bool{}
	for _, f := range frames {
		for _, c := range f.Cells {
			if !seen[c.Name] {
				seen[c.Name] = true
				cells = append(cells, c.Name)
			}
		}
	}
	return previewModel{scene: name, frames: frames, cells: cells, fps: fps, width: 48}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/m.fps), func(t time.Time) tea.Msg {
		return previewTickMsg(t)
	})
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.seek(m.cursor - 1)
		case "right", "l":
			m.seek(m.cursor + 1)
		case "up", "k":
			m.seek(m.cursor + int(m.fps))
		case "down", "j":
			m.seek(m.cursor - int(m.fps))
		case "home", "g":
			m.seek(0)
		case "end", "G":
			m.seek(len(m.frames) - 1)
		case "[":
			m.seek(m.stepStart(m.cursor - 1))
		case "]":
			m.seek(m.nextStep())
		case " ":
			m.playing = !m.playing
			if m.playing {
				if m.cursor == len(m.frames)-1 {
					m.cursor = 0
				}
				return m, m.tick()
			}
		}
	case previewTickMsg:
		if !m.playing {
			return m, nil
		}
		if m.cursor >= len(m.frames)-1 {
			m.playing = false
			return m, nil
		}
		m.cursor++
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-24, 10)
	}
	return m, nil
}

func (m *previewModel) seek(i int) {
	m.cursor = min(max(i, 0), len(m.frames)-1)
}

// stepStart returns the first frame of the step containing frame i.
func (m previewModel) stepStart(i int) int {
	if i < 0 {
		return 0
	}
	step := m.frames[i].Step
	for i > 0 && m.frames[i-1].Step == step {
		i--
	}
	return i
}

// nextStep returns the first frame of the following step, or the last frame.
func (m previewModel) nextStep() int {
	step := m.frames[m.cursor].Step
	for i := m.cursor + 1; i < len(m.frames); i++ {
		if m.frames[i].Step != step {
			return i
		}
	}
	return len(m.frames) - 1
}

func (m previewModel) View() string {
	f := m.frames[m.cursor]
	var b strings.Builder

	state := previewPausedStyle.Render("paused")
	if m.playing {
		state = previewPlayStyle.Render("playing")
	}
	b.WriteString(StyleTitle.Render(m.scene))
	b.WriteString("  " + state + "\n")
	b.WriteString(StyleDim.Render("←/→ frame  ↑/↓ 1s  [/] step  space play  q quit"))
	b.WriteString("\n\n")

	pos := 0
	if len(m.frames) > 1 {
		pos = m.cursor * (m.width - 1) / (len(m.frames) - 1)
	}
	b.WriteString(previewBarStyle.Render(strings.Repeat("━", pos)+"●") +
		previewTrackStyle.Render(strings.Repeat("─", m.width-1-pos)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("frame %d/%d · %.2fs · step %d · %d items",
		m.cursor+1, len(m.frames), f.Time.Seconds(), f.Step, len(f.Items))))
	b.WriteString("\n\n")

	if len(m.cells) == 0 {
		b.WriteString(StyleDim.Render("no animated values"))
		return b.String()
	}
	first := m.frames[0]
	rows := make([][]string, 0, len(m.cells))
	for _, name := range m.cells {
		v, ok := f.Cell(name)
		if !ok {
			rows = append(rows, []string{name, "—", ""})
			continue
		}
		delta := ""
		if v0, ok := first.Cell(name); ok && v != v0 {
			delta = fmt.Sprintf("%+.4f", v-v0)
		}
		rows = append(rows, []string{name, fmt.Sprintf("%.4f", v), delta})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Cell", "Value", "Δ start").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 1:
				return StyleNumber.Padding(0, 1)
			case col == 2:
				return StyleDim.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	b.WriteString(t.Render())
	return b.String()
}
