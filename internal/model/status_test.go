package model

import "testing"

func TestEntryStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   EntryStatus
		expected bool
	}{
		{EntryStatusQueued, false},
		{EntryStatusStarting, true},
		{EntryStatusDownloading, true},
		{EntryStatusCompleted, false},
		{EntryStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("EntryStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestEntryStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   EntryStatus
		expected bool
	}{
		{EntryStatusQueued, false},
		{EntryStatusStarting, false},
		{EntryStatusDownloading, false},
		{EntryStatusCompleted, true},
		{EntryStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("EntryStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestEntryStatus_Text(t *testing.T) {
	tests := []struct {
		status   EntryStatus
		progress float64
		expected string
	}{
		{EntryStatusQueued, 0, "Queued"},
		{EntryStatusStarting, 0, "Starting..."},
		{EntryStatusDownloading, 42.7, "Downloading 42%"},
		{EntryStatusCompleted, 100, "Completed"},
		{EntryStatusError, 13, "Error"},
	}

	for _, test := range tests {
		result := test.status.Text(test.progress)
		if result != test.expected {
			t.Errorf("EntryStatus(%s).Text(%v) = %q, expected %q", test.status, test.progress, result, test.expected)
		}
	}
}
