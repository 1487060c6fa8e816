package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cursespp/internal/constants"
	"cursespp/internal/paths"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// StyleFlags holds ANSI style modifiers
type StyleFlags struct {
	Bold          bool
	Underline     bool
	Italic        bool
	Blink         bool
	Dim           bool
	Reverse       bool
	Strikethrough bool
}

// Theme maps every Pair to a concrete terminal style.
type Theme struct {
	Name        string
	Description string
	Author      string

	styles [pairCount]tcell.Style
}

// Style returns the style registered for p.
func (t *Theme) Style(p Pair) tcell.Style {
	if t == nil || p < 0 || p >= pairCount {
		return tcell.StyleDefault
	}
	return t.styles[p]
}

// Set overrides the style of a single pair.
func (t *Theme) Set(p Pair, s tcell.Style) {
	if p >= 0 && p < pairCount {
		t.styles[p] = s
	}
}

// themeFile is the on-disk YAML form of a theme.
type themeFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Author      string            `yaml:"author,omitempty"`
	Colors      map[string]string `yaml:"colors"`
}

// defaultTags is the built-in theme, also written out as default.yaml.
var defaultTags = [pairCount]string{
	ContentNormal:         "silver:black",
	ContentFocused:        "white:black",
	FrameNormal:           "gray:black",
	FrameFocused:          "aqua:black:b",
	Title:                 "silver:black",
	TitleFocused:          "yellow:black:b",
	ListItem:              "silver:black",
	ListSelected:          "black:aqua",
	ListSelectedUnfocused: "black:gray",
	TextInput:             "silver:navy",
	TextInputFocused:      "white:blue:b",
	OverlayContent:        "black:silver",
	OverlayFrame:          "navy:silver:b",
	OverlayTitle:          "maroon:silver:b",
	Header:                "black:teal:b",
	Footer:                "black:teal",
	Scrollbar:             "gray:black",
	ScrollbarThumb:        "black:aqua",
	TooSmall:              "white:maroon:b",
	LogTrace:              "blue:black",
	LogDebug:              "blue:black",
	LogInfo:               "blue:black",
	LogNotice:             "green:black",
	LogWarn:               "yellow:black",
	LogError:              "red:black",
	LogFatal:              "white:red:b",
}

// Default returns the built-in theme.
func Default() *Theme {
	t := &Theme{
		Name:        constants.DefaultThemeName,
		Description: "Light text on a black background",
	}
	for p, tag := range defaultTags {
		t.styles[p] = tagToStyle(tag)
	}
	return t
}

// Load reads the named theme from the themes directory. Pairs the file does
// not mention keep their default style. A missing default theme is written
// out and the built-in one returned.
func Load(themeName string) (*Theme, error) {
	if themeName == "" {
		themeName = constants.DefaultThemeName
	}
	themePath := filepath.Join(paths.GetThemesDir(), themeName+constants.ThemeFileExt)

	data, err := os.ReadFile(themePath)
	if os.IsNotExist(err) && themeName == constants.DefaultThemeName {
		if werr := WriteDefault(); werr != nil {
			return Default(), werr
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("loading theme %q: %w", themeName, err)
	}

	t, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("theme %s: %w", themePath, err)
	}
	if t.Name == "" {
		t.Name = themeName
	}
	return t, nil
}

// Parse decodes a YAML theme document.
func Parse(data []byte) (*Theme, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	t := Default()
	t.Name, t.Description, t.Author = f.Name, f.Description, f.Author
	for key, tag := range f.Colors {
		p, ok := PairByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown color %q", key)
		}
		t.styles[p] = tagToStyle(tag)
	}
	return t, nil
}

// WriteDefault writes the built-in theme to the themes directory if it is not already there.
func WriteDefault() error {
	dir := paths.GetThemesDir()
	path := filepath.Join(dir, constants.DefaultThemeName+constants.ThemeFileExt)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}

	f := themeFile{
		Name:        constants.DefaultThemeName,
		Description: "Light text on a black background",
		Colors:      make(map[string]string, pairCount),
	}
	for p, tag := range defaultTags {
		f.Colors[pairKeys[p]] = tag
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func parseColor(c string) tcell.Color {
	c = strings.ToUpper(strings.TrimSpace(c))
	switch c {
	case "", "DEFAULT", "-":
		return tcell.ColorDefault
	case "BLACK":
		return tcell.ColorBlack
	case "RED":
		return tcell.ColorMaroon
	case "GREEN":
		return tcell.ColorGreen
	case "YELLOW":
		return tcell.ColorOlive
	case "BLUE":
		return tcell.ColorNavy
	case "MAGENTA":
		return tcell.ColorPurple
	case "CYAN":
		return tcell.ColorTeal
	case "WHITE":
		return tcell.ColorWhite
	case "SILVER":
		return tcell.ColorSilver
	case "GRAY", "GREY":
		return tcell.ColorGray
	default:
		// Hex values and the full W3C name set
		return tcell.GetColor(strings.ToLower(c))
	}
}

// parseTagWithStyles parses a theme tag and extracts colors and style flags
func parseTagWithStyles(tag string) (fg, bg tcell.Color, styles StyleFlags) {
	tag = strings.Trim(tag, "[]")
	parts := strings.Split(tag, ":")
	if len(parts) > 0 {
		fg = parseColor(parts[0])
	}
	if len(parts) > 1 {
		bg = parseColor(parts[1])
	} else {
		bg = tcell.ColorDefault
	}
	// Parse style flags (third part and beyond)
	if len(parts) > 2 {
		flags := strings.ToLower(parts[2])
		styles.Bold = strings.Contains(flags, "b")
		styles.Underline = strings.Contains(flags, "u")
		styles.Italic = strings.Contains(flags, "i")
		styles.Blink = strings.Contains(flags, "l")
		styles.Dim = strings.Contains(flags, "d")
		styles.Reverse = strings.Contains(flags, "r")
		styles.Strikethrough = strings.Contains(flags, "s")
	}
	return
}

func tagToStyle(tag string) tcell.Style {
	fg, bg, f := parseTagWithStyles(tag)
	return tcell.StyleDefault.
		Foreground(fg).
		Background(bg).
		Bold(f.Bold).
		Underline(f.Underline).
		Italic(f.Italic).
		Blink(f.Blink).
		Dim(f.Dim).
		Reverse(f.Reverse).
		StrikeThrough(f.Strikethrough)
}
