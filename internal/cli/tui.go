package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ndexcontent/tcgaloader/pkg/pipeline"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FileListModel - Interactive pathway file selection
// =============================================================================

// fileEntry is one selectable pathway file.
type fileEntry struct {
	Name string
	Size int64
}

// FileListModel is the bubbletea model for interactive file selection.
type FileListModel struct {
	Files    []fileEntry
	Cursor   int
	Offset   int
	Height   int
	Selected *fileEntry
}

// NewFileListModel creates a new file list model.
func NewFileListModel(files []fileEntry) FileListModel {
	return FileListModel{Files: files, Height: 15}
}

// listFiles returns the pathway files of dir that opts would process.
func listFiles(opts pipeline.Options) ([]fileEntry, error) {
	found, err := pipeline.Discover(opts)
	if err != nil {
		return nil, err
	}
	files := make([]fileEntry, 0, len(found.Files))
	for _, name := range found.Files {
		info, err := os.Stat(filepath.Join(opts.DataDir, name))
		if err != nil {
			continue
		}
		files = append(files, fileEntry{Name: name, Size: info.Size()})
	}
	return files, nil
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Files) == 0 {
				return m, nil
			}
			f := m.Files[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pathway File"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Files) == 0 {
		b.WriteString(listDimStyle.Render("  no pathway files"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Files))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, pipeline.NetworkName(f.Name), f.Name, formatSize(f.Size)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Network", "File", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// pickFile runs the interactive selection and returns the chosen file name,
// or "" when the user quit.
func pickFile(files []fileEntry) (string, error) {
	final, err := tea.NewProgram(NewFileListModel(files)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(FileListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.Name, nil
}

// =============================================================================
// Helpers
// =============================================================================

// formatSize renders a byte count with a binary unit.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
