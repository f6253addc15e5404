package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/halfmesh/pkg/geom"
	"github.com/matzehuels/halfmesh/pkg/meshio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FaceListModel - Interactive face browser
// =============================================================================

// faceEntry is one row of the browser: a polygon with derived geometry.
type faceEntry struct {
	index    int
	arity    int
	centroid geom.Vector
	vertices string
}

// FaceListModel is the bubbletea model for browsing a mesh's faces.
type FaceListModel struct {
	Name   string
	Faces  []faceEntry
	Cursor int
	Height int
	Offset int
}

// newFaceListModel derives the browser rows from a snapshot.
func newFaceListModel(doc meshio.Document) (FaceListModel, error) {
	m := FaceListModel{
		Name:   doc.Name,
		Height: 15,
	}
	for i, poly := range doc.Polygons {
		points := make([]geom.Vector, len(poly))
		indices := make([]string, len(poly))
		for j, vi := range poly {
			if vi < 0 || vi >= len(doc.Vertices) {
				return FaceListModel{}, fmt.Errorf("polygon %d references vertex %d outside table", i, vi)
			}
			points[j] = doc.Vertices[vi]
			indices[j] = fmt.Sprintf("%d", vi)
		}
		m.Faces = append(m.Faces, faceEntry{
			index:    i,
			arity:    len(poly),
			centroid: geom.Centroid(points),
			vertices: strings.Join(indices, " "),
		})
	}
	return m, nil
}

func (m FaceListModel) Init() tea.Cmd {
	return nil
}

func (m FaceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Faces)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FaceListModel) View() string {
	var b strings.Builder

	title := "Faces"
	if m.Name != "" {
		title = fmt.Sprintf("Faces of %s", m.Name)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Faces) {
		end = len(m.Faces)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Faces[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%sf%-4d %d-gon  %s  %s",
			cursor, f.index, f.arity,
			listDimStyle.Render(f.centroid.String()),
			listDimStyle.Render("["+f.vertices+"]"))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Faces))))

	return b.String()
}
