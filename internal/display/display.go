package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"pokedexd/internal/dex"
)

// View identifies which screen a frame belongs to.
type View string

const (
	ViewBrowsing   View = "browsing"
	ViewDetail     View = "detail"
	ViewFavourites View = "favourites"
)

// Frame is one complete screen state handed to a renderer.
type Frame struct {
	View        View
	Cursor      int64
	Record      *dex.Record
	IsFavourite bool
	Evolutions  []dex.Evolution
	Favourites  []*dex.Record
	FavIndex    int
	Status      string
}

// Renderer draws frames. Implementations must tolerate nil records; the
// controller emits frames before the first fetch completes.
type Renderer interface {
	Render(frame Frame) error
}

// Terminal renders frames to a writer, coloring output only for TTYs.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	width int
	color bool
}

// NewTerminal builds a renderer for the given writer. Color is enabled
// only when the writer is an interactive terminal, unless forced.
func NewTerminal(out io.Writer, width int, forceColor bool) *Terminal {
	color := forceColor
	if !color {
		if f, ok := out.(*os.File); ok {
			color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	if width <= 0 {
		width = 40
	}
	return &Terminal{out: out, width: width, color: color}
}

// Render draws a frame.
func (t *Terminal) Render(frame Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	switch frame.View {
	case ViewDetail:
		t.renderDetail(&b, frame)
	case ViewFavourites:
		t.renderFavourites(&b, frame)
	default:
		t.renderBrowsing(&b, frame)
	}
	if frame.Status != "" {
		fmt.Fprintf(&b, "%s\n", frame.Status)
	}

	_, err := io.WriteString(t.out, b.String())
	return err
}

func (t *Terminal) newTable(b *strings.Builder) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(b)
	tw.SetStyle(table.StyleRounded)
	tw.SetAllowedRowLength(t.width)
	if !t.color {
		tw.Style().Color = table.ColorOptions{}
	}
	return tw
}

func (t *Terminal) renderBrowsing(b *strings.Builder, frame Frame) {
	tw := t.newTable(b)
	tw.AppendHeader(table.Row{"#", "Name", "Type"})
	if frame.Record != nil {
		name := frame.Record.DisplayName()
		if frame.IsFavourite {
			name = "* " + name
		}
		tw.AppendRow(table.Row{frame.Record.ID, name, frame.Record.TypeLine()})
	} else {
		tw.AppendRow(table.Row{frame.Cursor, "?", ""})
	}
	tw.Render()
}

func (t *Terminal) renderDetail(b *strings.Builder, frame Frame) {
	rec := frame.Record
	if rec == nil {
		fmt.Fprintf(b, "no record at %d\n", frame.Cursor)
		return
	}

	title := fmt.Sprintf("#%d %s", rec.ID, rec.DisplayName())
	if frame.IsFavourite {
		title += " *"
	}
	fmt.Fprintf(b, "%s\n", t.emphasize(title))
	fmt.Fprintf(b, "%s\n", rec.TypeLine())
	if rec.HeightDM > 0 || rec.WeightHG > 0 {
		fmt.Fprintf(b, "%.1f m / %.1f kg\n", float64(rec.HeightDM)/10, float64(rec.WeightHG)/10)
	}

	tw := t.newTable(b)
	for _, name := range dex.StatNames {
		value, _ := rec.Stats.ByName(name)
		tw.AppendRow(table.Row{name, value})
	}
	tw.Render()

	if rec.FlavorText != "" {
		fmt.Fprintf(b, "%s\n", wrapText(rec.FlavorText, t.width))
	}
	for _, evo := range frame.Evolutions {
		line := fmt.Sprintf("evolves: %d -> %d", evo.FromID, evo.ToID)
		if evo.MinLevel > 0 {
			line += fmt.Sprintf(" (lv %d)", evo.MinLevel)
		} else if evo.Item != "" {
			line += fmt.Sprintf(" (%s)", evo.Item)
		} else if evo.Trigger != "" {
			line += fmt.Sprintf(" (%s)", evo.Trigger)
		}
		fmt.Fprintf(b, "%s\n", line)
	}
}

func (t *Terminal) renderFavourites(b *strings.Builder, frame Frame) {
	fmt.Fprintf(b, "%s\n", t.emphasize("Favourites"))
	if len(frame.Favourites) == 0 {
		fmt.Fprintf(b, "no favourites yet\n")
		return
	}

	tw := t.newTable(b)
	tw.AppendHeader(table.Row{"", "#", "Name"})
	for i, rec := range frame.Favourites {
		marker := ""
		if i == frame.FavIndex {
			marker = ">"
		}
		tw.AppendRow(table.Row{marker, rec.ID, rec.DisplayName()})
	}
	tw.Render()
}

func (t *Terminal) emphasize(s string) string {
	if !t.color {
		return s
	}
	return text.Bold.Sprint(s)
}

// wrapText folds a single normalized line into the display width.
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
