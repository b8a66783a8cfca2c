package console

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/uttt-engine/internal/entity"
)

const (
	emptyMark = "."
	tiedMark  = "-"
)

var colorAttributes = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// Renderer draws snapshots as text, colouring each label with its player's colour.
type Renderer struct {
	players    map[string]entity.Player
	plain      map[string]*color.Color
	highlights map[string]*color.Color
	labelWidth int
}

func NewRenderer(players []entity.Player, noColor bool) *Renderer {
	renderer := &Renderer{
		players:    make(map[string]entity.Player, len(players)),
		plain:      make(map[string]*color.Color, len(players)),
		highlights: make(map[string]*color.Color, len(players)),
		labelWidth: 1,
	}

	for _, player := range players {
		var attrs []color.Attribute
		if attr, ok := colorAttributes[strings.ToLower(player.Color)]; ok {
			attrs = append(attrs, attr)
		}

		plain := color.New(attrs...)
		highlight := color.New(append(attrs, color.Bold, color.Underline)...)
		if noColor {
			plain.DisableColor()
			highlight.DisableColor()
		}

		renderer.players[player.Label] = player
		renderer.plain[player.Label] = plain
		renderer.highlights[player.Label] = highlight
		renderer.labelWidth = max(renderer.labelWidth, utf8.RuneCountInString(player.Label))
	}

	return renderer
}

// Render returns the fine board, the sub-board summary and a status line.
func (that *Renderer) Render(snap entity.Snapshot) string {
	var sb strings.Builder

	that.writeBoard(&sb, snap)
	sb.WriteString("\n")
	that.writeMeta(&sb, snap)
	sb.WriteString("\n")
	sb.WriteString(that.StatusLine(snap))
	sb.WriteString("\n")

	return sb.String()
}

// StatusLine says whose turn it is and where, or how the game ended.
func (that *Renderer) StatusLine(snap entity.Snapshot) string {
	switch snap.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Player %s wins!", that.colored(snap.Winner, false))
	case entity.StatusTied:
		return "Tied game!"
	}

	who := fmt.Sprintf("Player %s", that.colored(snap.Active.Label, false))
	if snap.Active.Color != "" {
		who += " (" + snap.Active.Color + ")"
	}

	if len(snap.Playable) == 1 {
		sub := snap.Playable[0]
		return fmt.Sprintf("%s to move in sub-board (%d, %d)", who, sub.Row, sub.Col)
	}

	return who + " to move in any open sub-board"
}

func (that *Renderer) writeBoard(sb *strings.Builder, snap entity.Snapshot) {
	n := snap.BoardSize
	width := n * n
	cellWidth := max(that.labelWidth, len(strconv.Itoa(width-1)))

	highlighted := make(map[entity.Position]bool, len(snap.WinnerCombo))
	for _, p := range snap.WinnerCombo {
		highlighted[p] = true
	}

	// column header
	header := strings.Repeat(" ", cellWidth+2)
	for block := 0; block < n; block++ {
		header += " "
		for i := 0; i < n; i++ {
			header += fmt.Sprintf("%-*d ", cellWidth, block*n+i)
		}
		header += " "
	}
	sb.WriteString(strings.TrimRight(header, " "))
	sb.WriteString("\n")

	separator := strings.Repeat(" ", cellWidth) + " +"
	for block := 0; block < n; block++ {
		separator += strings.Repeat("-", n*(cellWidth+1)+1) + "+"
	}

	for row := 0; row < width; row++ {
		if row%n == 0 {
			sb.WriteString(separator)
			sb.WriteString("\n")
		}

		fmt.Fprintf(sb, "%*d |", cellWidth, row)
		for col := 0; col < width; col++ {
			label := snap.Board[row][col]
			sb.WriteString(" ")
			sb.WriteString(that.cell(label, cellWidth, highlighted[entity.Position{Row: row, Col: col}]))
			if col%n == n-1 {
				sb.WriteString(" |")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(separator)
	sb.WriteString("\n")
}

func (that *Renderer) writeMeta(sb *strings.Builder, snap entity.Snapshot) {
	sb.WriteString("Sub-boards:\n")

	for row := range snap.Meta {
		sb.WriteString(" ")
		for col := range snap.Meta[row] {
			mark := emptyMark
			switch {
			case snap.Meta[row][col] != entity.EmptyCell:
				mark = snap.Meta[row][col]
			case snap.Tied[row][col]:
				mark = tiedMark
			}
			sb.WriteString(" ")
			sb.WriteString(that.cell(mark, that.labelWidth, false))
		}
		sb.WriteString("\n")
	}
}

func (that *Renderer) cell(label string, width int, highlight bool) string {
	if label == entity.EmptyCell {
		label = emptyMark
	}

	padding := strings.Repeat(" ", max(0, width-utf8.RuneCountInString(label)))

	return that.colored(label, highlight) + padding
}

func (that *Renderer) colored(label string, highlight bool) string {
	palette := that.plain
	if highlight {
		palette = that.highlights
	}

	if c, ok := palette[label]; ok {
		return c.Sprint(label)
	}

	return label
}
