package console

import (
	"bytes"
	"strings"
	"testing"

	"travelbrowser/internal/output"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{output.StatusWarn, colorYellow},
		{output.StatusOK, colorGreen},
		{"", colorGreen},
		{"UNKNOWN", colorGreen},
	}

	for _, tt := range tests {
		result := colorFor(tt.status)
		if result != tt.expected {
			t.Errorf("colorFor(%q) = %q; want %q", tt.status, result, tt.expected)
		}
	}
}

func TestPrint(t *testing.T) {
	view := output.ReportView{
		Sections: []output.Section{
			{
				ID:    "Italy",
				Title: "🇮🇹 Italy",
				Note:  "2024-06-01 Sunny, 24°C",
				Items: []output.Item{
					{Label: "Colosseum", Value: 2, Unit: " photos", Status: output.StatusOK, Note: "Ancient amphitheatre"},
					{Label: "A place with a name far too long to fit", Unit: " photos", Status: output.StatusWarn},
				},
			},
			{ID: "Peru", Title: "Peru"},
		},
		TotalCountries: 2,
		TotalPlaces:    2,
	}

	var buf bytes.Buffer
	Print(&buf, view)
	out := buf.String()

	for _, want := range []string{"TRAVEL DESTINATIONS", "🇮🇹 Italy · 2024-06-01 Sunny, 24°C", "Colosseum", "2 photos", "...", "(no places)", "2 countries | 2 places"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
