package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateTime_RoundTrip(t *testing.T) {
	d, err := ParseDateTime("2024-03-05T09:30:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-05T09:30:00"` {
		t.Errorf("marshal = %s", data)
	}

	var back DateTime
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip: %v != %v", back, d)
	}
}

func TestDateTime_AcceptedInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"wire format", "2024-03-05T09:30:00", true},
		{"rfc3339", "2024-03-05T09:30:00Z", true},
		{"display format", "2024-03-05 09:30:00", true},
		{"datetime-local input", "2024-03-05T09:30", true},
		{"date only", "2024-03-05", true},
		{"empty is zero", "", true},
		{"garbage", "yesterday", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateTime(tt.input)
			if (err == nil) != tt.ok {
				t.Errorf("ParseDateTime(%q) err = %v, want ok=%v", tt.input, err, tt.ok)
			}
		})
	}
}

func TestDateTime_ZeroMarshalsNull(t *testing.T) {
	data, err := json.Marshal(DateTime{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("zero DateTime marshals to %s, want null", data)
	}

	var d DateTime
	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsZero() {
		t.Error("null should unmarshal to zero DateTime")
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		input string
		want  Gender
		ok    bool
	}{
		{"Male", GenderMale, true},
		{"female", GenderFemale, true},
		{"OTHER", GenderOther, true},
		{"", "", true},
		{"unknown", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseGender(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGender(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCreateBatchRequest_Validate(t *testing.T) {
	start := NewDateTime(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	earlier := NewDateTime(start.Add(-time.Hour))

	tests := []struct {
		name    string
		req     CreateBatchRequest
		wantErr bool
	}{
		{"valid", CreateBatchRequest{BatchNumber: "B-001", StartTime: start}, false},
		{"missing number", CreateBatchRequest{StartTime: start}, true},
		{"missing start", CreateBatchRequest{BatchNumber: "B-001"}, true},
		{"end before start", CreateBatchRequest{BatchNumber: "B-001", StartTime: start, EndTime: &earlier}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompetitorFile_DisplayName(t *testing.T) {
	f := CompetitorFile{FilePath: "uploads/2024/glucose_log.csv"}
	if got := f.DisplayName(); got != "glucose_log.csv" {
		t.Errorf("DisplayName = %q", got)
	}

	f.Filename = "renamed.csv"
	if got := f.DisplayName(); got != "renamed.csv" {
		t.Errorf("DisplayName with server filename = %q", got)
	}

	// Windows-style paths from older server versions.
	f = CompetitorFile{FilePath: `uploads\2024\glucose_log.csv`}
	if got := f.DisplayName(); got != "glucose_log.csv" {
		t.Errorf("DisplayName backslash path = %q", got)
	}
}
