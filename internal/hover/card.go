// Package hover models a thumbnail card whose background takes on the
// dominant color of its image while the pointer is over it.
package hover

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ironsheep/dominant-color-mcp/internal/imaging"
)

// Card defaults.
const (
	DefaultWidth        = "300px"
	DefaultHeight       = "180px"
	DefaultTransitionMs = 300
)

// Overlay texts shown over the image.
const (
	LoadingText = "Analyzing..."
	FailedText  = "Color extraction failed"
)

// State is the extraction state of a card.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ColorSource resolves an image source to its dominant color.
// *extract.Extractor satisfies it.
type ColorSource interface {
	Extract(ctx context.Context, src string) (imaging.RGBColor, error)
}

// Card is the state behind one thumbnail: it asks for the image's dominant
// color once, tracks whether the pointer is over it, and derives the style
// that fills the background with that color on hover.
//
// Card is safe for concurrent use.
type Card struct {
	src          string
	alt          string
	title        string
	description  string
	width        string
	height       string
	transitionMs int

	onColor func(imaging.RGBColor)
	onError func(error)
	onClick func()

	mu        sync.Mutex
	attempted bool
	state     State
	color     imaging.RGBColor
	hasColor  bool
	err       error
	hovered   bool
}

// Option configures a Card.
type Option func(*Card)

// WithAlt sets the image alt text.
func WithAlt(alt string) Option { return func(c *Card) { c.alt = alt } }

// WithTitle sets the title shown below the image.
func WithTitle(title string) Option { return func(c *Card) { c.title = title } }

// WithDescription sets the description shown below the title.
func WithDescription(d string) Option { return func(c *Card) { c.description = d } }

// WithSize sets the card width and image height as CSS lengths. Empty values
// keep the defaults.
func WithSize(width, height string) Option {
	return func(c *Card) {
		if width != "" {
			c.width = width
		}
		if height != "" {
			c.height = height
		}
	}
}

// WithTransition sets the background transition duration in milliseconds.
func WithTransition(ms int) Option {
	return func(c *Card) {
		if ms >= 0 {
			c.transitionMs = ms
		}
	}
}

// OnColor registers a callback for a successful extraction.
func OnColor(fn func(imaging.RGBColor)) Option { return func(c *Card) { c.onColor = fn } }

// OnError registers a callback for a failed extraction.
func OnError(fn func(error)) Option { return func(c *Card) { c.onError = fn } }

// OnClick makes the card clickable.
func OnClick(fn func()) Option { return func(c *Card) { c.onClick = fn } }

// Px formats a pixel count as a CSS length.
func Px(n int) string {
	return fmt.Sprintf("%dpx", n)
}

// NewCard creates a card for the image at src. Cards start in StateLoading.
func NewCard(src string, opts ...Option) *Card {
	c := &Card{
		src:          src,
		width:        DefaultWidth,
		height:       DefaultHeight,
		transitionMs: DefaultTransitionMs,
		state:        StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Src returns the image source of the card.
func (c *Card) Src() string { return c.src }

// Load asks source for the card's color. Only the first call does any work;
// later calls return nil immediately, so a card never issues two concurrent
// extractions for its image. The error is also reported through OnError.
func (c *Card) Load(ctx context.Context, source ColorSource) error {
	c.mu.Lock()
	if c.attempted {
		c.mu.Unlock()
		return nil
	}
	c.attempted = true
	c.state = StateLoading
	c.err = nil
	c.mu.Unlock()

	color, err := source.Extract(ctx, c.src)

	c.mu.Lock()
	if err != nil {
		c.state = StateFailed
		c.err = err
	} else {
		c.state = StateReady
		c.color = color
		c.hasColor = true
	}
	c.mu.Unlock()

	if err != nil {
		if c.onError != nil {
			c.onError(err)
		}
		return err
	}
	if c.onColor != nil {
		c.onColor(color)
	}
	return nil
}

// State returns the current extraction state.
func (c *Card) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Color returns the extracted color once the card is ready.
func (c *Card) Color() (imaging.RGBColor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.color, c.hasColor
}

// Err returns the extraction error of a failed card.
func (c *Card) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// SetHovered records pointer enter (true) and leave (false).
func (c *Card) SetHovered(hovered bool) {
	c.mu.Lock()
	c.hovered = hovered
	c.mu.Unlock()
}

// Hovered reports whether the pointer is over the card.
func (c *Card) Hovered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

// Click invokes the click callback. It reports whether the card is clickable.
func (c *Card) Click() bool {
	if c.onClick == nil {
		return false
	}
	c.onClick()
	return true
}

// KeyDown activates a clickable card on Enter or Space, like a button.
func (c *Card) KeyDown(key string) bool {
	if key != "Enter" && key != " " {
		return false
	}
	return c.Click()
}

// Style is the inline style of the card container.
type Style struct {
	Width           string `json:"width"`
	BackgroundColor string `json:"background-color"`
	Transition      string `json:"transition"`
	BorderRadius    string `json:"border-radius"`
	Overflow        string `json:"overflow"`
	Cursor          string `json:"cursor"`
	Position        string `json:"position"`
}

// String renders the style as a CSS declaration list.
func (s Style) String() string {
	decls := []struct{ prop, value string }{
		{"width", s.Width},
		{"background-color", s.BackgroundColor},
		{"transition", s.Transition},
		{"border-radius", s.BorderRadius},
		{"overflow", s.Overflow},
		{"cursor", s.Cursor},
		{"position", s.Position},
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value+";")
	}
	return strings.Join(parts, " ")
}

// Style returns the container style for the current state. The background is
// the dominant color while hovered and transparent otherwise.
func (c *Card) Style() Style {
	c.mu.Lock()
	defer c.mu.Unlock()

	background := "transparent"
	if c.hovered && c.hasColor {
		background = c.color.String()
	}

	cursor := "default"
	if c.onClick != nil {
		cursor = "pointer"
	}

	return Style{
		Width:           c.width,
		BackgroundColor: background,
		Transition:      fmt.Sprintf("background-color %dms ease-in-out", c.transitionMs),
		BorderRadius:    "8px",
		Overflow:        "hidden",
		Cursor:          cursor,
		Position:        "relative",
	}
}

// Overlay returns the text laid over the image: LoadingText while loading,
// FailedText after a failure, and "" once ready.
func (c *Card) Overlay() string {
	switch c.State() {
	case StateLoading:
		return LoadingText
	case StateFailed:
		return FailedText
	default:
		return ""
	}
}

// Snapshot is a serializable view of a card.
type Snapshot struct {
	Src         string            `json:"src"`
	Alt         string            `json:"alt,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageHeight string            `json:"image_height"`
	State       string            `json:"state"`
	Hovered     bool              `json:"hovered"`
	Color       *imaging.RGBColor `json:"color,omitempty"`
	Error       string            `json:"error,omitempty"`
	Overlay     string            `json:"overlay,omitempty"`
	Style       Style             `json:"style"`
	CSS         string            `json:"css"`
}

// Snapshot captures the card's current state and derived style.
func (c *Card) Snapshot() Snapshot {
	style := c.Style()
	s := Snapshot{
		Src:         c.src,
		Alt:         c.alt,
		Title:       c.title,
		Description: c.description,
		ImageHeight: c.height,
		State:       c.State().String(),
		Hovered:     c.Hovered(),
		Overlay:     c.Overlay(),
		Style:       style,
		CSS:         style.String(),
	}
	if color, ok := c.Color(); ok {
		s.Color = &color
	}
	if err := c.Err(); err != nil {
		s.Error = err.Error()
	}
	return s
}
