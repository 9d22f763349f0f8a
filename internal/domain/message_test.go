package domain

import "testing"

func TestRenderReminder(t *testing.T) {
	t.Parallel()

	entry := TimetableEntry{CourseName: "Thermodynamics II", RoomName: "ENG Hall B"}
	msg := RenderReminder(entry, Window30)
	if msg.Title != "Upcoming Class Reminder" {
		t.Fatalf("title = %q", msg.Title)
	}
	want := "You have a class for Thermodynamics II starting in 30 minutes in ENG Hall B"
	if msg.Body != want {
		t.Fatalf("body = %q, want %q", msg.Body, want)
	}
}

func TestRenderReminderNoRoom(t *testing.T) {
	t.Parallel()

	entry := TimetableEntry{CourseName: "Thermodynamics II"}
	msg := RenderReminder(entry, Window5)
	want := "You have a class for Thermodynamics II starting in 5 minutes in Unspecified Room"
	if msg.Body != want {
		t.Fatalf("body = %q, want %q", msg.Body, want)
	}
}

func TestIncomplete(t *testing.T) {
	t.Parallel()

	if (TimetableEntry{DepartmentID: 5, Level: 200}).Incomplete() {
		t.Fatal("complete entry reported incomplete")
	}
	if !(TimetableEntry{DepartmentID: 5}).Incomplete() {
		t.Fatal("missing level not reported")
	}
	if !(TimetableEntry{Level: 200}).Incomplete() {
		t.Fatal("missing department not reported")
	}
}
