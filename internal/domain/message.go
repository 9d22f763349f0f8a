package domain

import "fmt"

// Message is a rendered reminder ready for the push transport.
type Message struct {
	Title string
	Body  string
}

const unspecifiedRoom = "Unspecified Room"

// RenderReminder builds the reminder text for an entry hitting a window.
// The wording is part of the product surface; clients display it verbatim.
func RenderReminder(e TimetableEntry, w Window) Message {
	room := e.RoomName
	if room == "" {
		room = unspecifiedRoom
	}
	return Message{
		Title: "Upcoming Class Reminder",
		Body:  fmt.Sprintf("You have a class for %s starting in %d minutes in %s", e.CourseName, w.Minutes(), room),
	}
}
