package components

import "github.com/yohamta/donburi"

// MessageStateData is a singleton tracking the active message
type MessageStateData struct {
	TextID       uint16
	Text         string // Empty when nothing is shown
	DisplayTimer int    // Frames remaining to display current message
}

var MessageState = donburi.NewComponentType[MessageStateData]()
