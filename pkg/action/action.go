// Package action is the catalog of things the assistant can do to the browser.
package action

import "errors"

type ID string

const (
	OpenWebsite   ID = "open_website"
	SearchWeb     ID = "search_web"
	PlayMedia     ID = "play_media"
	ScrollDown    ID = "scroll_down"
	ScrollUp      ID = "scroll_up"
	ScrollTop     ID = "scroll_top"
	ScrollBottom  ID = "scroll_bottom"
	NewTab        ID = "new_tab"
	CloseTab      ID = "close_tab"
	NextTab       ID = "next_tab"
	PreviousTab   ID = "previous_tab"
	GoBack        ID = "go_back"
	GoForward     ID = "go_forward"
	Reload        ID = "reload"
	ReadPage      ID = "read_page"
	ReadSelection ID = "read_selection"
	SummarizePage ID = "summarize_page"
	HighlightText ID = "highlight_text"
	ClickElement  ID = "click_element"
	SelectInput   ID = "select_input"
	PauseMedia    ID = "pause_media"
	ToggleMute    ID = "toggle_mute"
	TellTime      ID = "tell_time"
	TellDate      ID = "tell_date"
	RunCustom     ID = "run_custom"
	NotUnderstood ID = "not_understood"
)

var ErrUnknownAction = errors.New("unknown action")

// Descriptor documents an action for the intent prompt and the pattern
// table loader.
type Descriptor struct {
	ID          ID
	Description string
	Argument    string
}

// Catalog lists the actions reachable from free text, in prompt order.
// RunCustom and NotUnderstood are internal and not listed.
var Catalog = []Descriptor{
	{OpenWebsite, "open a website in a new tab", "domain or URL"},
	{SearchWeb, "search the web", "search query"},
	{PlayMedia, "find and play a song or video on YouTube", "what to play"},
	{ScrollDown, "scroll the page down", ""},
	{ScrollUp, "scroll the page up", ""},
	{ScrollTop, "jump to the top of the page", ""},
	{ScrollBottom, "jump to the bottom of the page", ""},
	{NewTab, "open an empty new tab", ""},
	{CloseTab, "close the current tab", ""},
	{NextTab, "switch to the next tab", ""},
	{PreviousTab, "switch to the previous tab", ""},
	{GoBack, "go back in history", ""},
	{GoForward, "go forward in history", ""},
	{Reload, "reload the page", ""},
	{ReadPage, "read the page aloud", ""},
	{ReadSelection, "read the selected text aloud", ""},
	{SummarizePage, "summarize the page", ""},
	{HighlightText, "highlight text on the page", "text to highlight"},
	{ClickElement, "click a button or link", "button or link text"},
	{SelectInput, "focus the first or last input field", "first or last"},
	{PauseMedia, "pause playing audio or video", ""},
	{ToggleMute, "mute or unmute the tab", ""},
	{TellTime, "tell the current time", ""},
	{TellDate, "tell today's date", ""},
}

func Known(id ID) bool {
	for _, d := range Catalog {
		if d.ID == id {
			return true
		}
	}
	return id == RunCustom || id == NotUnderstood
}

// Invocation is one resolved action call. Context carries the original
// utterance for handlers that look beyond the extracted argument.
type Invocation struct {
	Action   ID
	Argument string
	Context  string
}

type Result struct {
	Action  ID     `json:"action"`
	Spoken  string `json:"spoken"`
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
}
