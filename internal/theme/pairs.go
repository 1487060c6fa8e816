package theme

// Pair identifies one of the pre-registered color pairs windows draw with.
type Pair int

const (
	ContentNormal Pair = iota
	ContentFocused
	FrameNormal
	FrameFocused
	Title
	TitleFocused
	ListItem
	ListSelected
	ListSelectedUnfocused
	TextInput
	TextInputFocused
	OverlayContent
	OverlayFrame
	OverlayTitle
	Header
	Footer
	Scrollbar
	ScrollbarThumb
	TooSmall
	LogTrace
	LogDebug
	LogInfo
	LogNotice
	LogWarn
	LogError
	LogFatal

	pairCount
)

// pairKeys are the keys of the colors map in theme files.
var pairKeys = [pairCount]string{
	ContentNormal:         "content",
	ContentFocused:        "content_focused",
	FrameNormal:           "frame",
	FrameFocused:          "frame_focused",
	Title:                 "title",
	TitleFocused:          "title_focused",
	ListItem:              "list_item",
	ListSelected:          "list_selected",
	ListSelectedUnfocused: "list_selected_unfocused",
	TextInput:             "text_input",
	TextInputFocused:      "text_input_focused",
	OverlayContent:        "overlay_content",
	OverlayFrame:          "overlay_frame",
	OverlayTitle:          "overlay_title",
	Header:                "header",
	Footer:                "footer",
	Scrollbar:             "scrollbar",
	ScrollbarThumb:        "scrollbar_thumb",
	TooSmall:              "too_small",
	LogTrace:              "log_trace",
	LogDebug:              "log_debug",
	LogInfo:               "log_info",
	LogNotice:             "log_notice",
	LogWarn:               "log_warn",
	LogError:              "log_error",
	LogFatal:              "log_fatal",
}

// String returns the theme file key of the pair.
func (p Pair) String() string {
	if p < 0 || p >= pairCount {
		return "unknown"
	}
	return pairKeys[p]
}

// PairByKey looks up a pair by its theme file key.
func PairByKey(key string) (Pair, bool) {
	for p, k := range pairKeys {
		if k == key {
			return Pair(p), true
		}
	}
	return 0, false
}

// Pairs returns every registered pair in declaration order.
func Pairs() []Pair {
	out := make([]Pair, pairCount)
	for i := range out {
		out[i] = Pair(i)
	}
	return out
}
