package model

import "testing"

func TestComplaintStatusValid(t *testing.T) {
	for _, status := range []ComplaintStatus{
		ComplaintStatusPending,
		ComplaintStatusInProgress,
		ComplaintStatusResolved,
		ComplaintStatusEscalated,
	} {
		if !status.Valid() {
			t.Fatalf("%q should be valid", status)
		}
	}
	for _, status := range []ComplaintStatus{"", "Closed", "pending", "RESOLVED"} {
		if status.Valid() {
			t.Fatalf("%q should be invalid", status)
		}
	}
}

func TestComplaintPriorityValid(t *testing.T) {
	for _, priority := range []ComplaintPriority{
		ComplaintPriorityLow,
		ComplaintPriorityMedium,
		ComplaintPriorityHigh,
		ComplaintPriorityUrgent,
	} {
		if !priority.Valid() {
			t.Fatalf("%q should be valid", priority)
		}
	}
	if ComplaintPriority("Critical").Valid() {
		t.Fatal("Critical should be invalid")
	}
}
