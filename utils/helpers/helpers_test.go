package helpers

import (
	"math"
	"strings"
	"testing"
)

func TestNormalizeTicker(t *testing.T) {
	input := " aapl "
	expected := "AAPL"
	result := NormalizeTicker(input)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestIsFinite(t *testing.T) {
	if IsFinite(nil) {
		t.Errorf("Expected false for nil")
	}
	if IsFinite(Float64Ptr(math.NaN())) {
		t.Errorf("Expected false for NaN")
	}
	if IsFinite(Float64Ptr(math.Inf(-1))) {
		t.Errorf("Expected false for -Inf")
	}
	if !IsFinite(Float64Ptr(0)) {
		t.Errorf("Expected true for zero")
	}
}

func TestFormatNumber_UnknownPlaceholder(t *testing.T) {
	expected := "—"
	result := FormatNumber(nil, 4)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestFormatNumber_FixedDigits(t *testing.T) {
	expected := "0.1750"
	result := FormatNumber(Float64Ptr(0.175), 4)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestFormatPercent(t *testing.T) {
	expected := "1.23%"
	result := FormatPercent(Float64Ptr(0.0123), 2)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
	if got := FormatPercent(nil, 2); got != "—" {
		t.Errorf("Expected —, got %v", got)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		1234567.891: "1,234,567.89",
		1000:        "1,000.00",
		25:          "25.00",
		-1234.5:     "-1,234.50",
	}
	for input, expected := range cases {
		if got := FormatMoney(Float64Ptr(input)); got != expected {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	}
	if got := FormatMoney(nil); got != "—" {
		t.Errorf("Expected —, got %v", got)
	}
}

func TestExportValue(t *testing.T) {
	if got := ExportValue("—"); got != "N/A" {
		t.Errorf("Expected N/A, got %v", got)
	}
	if got := ExportValue("1.23%"); got != "1.23%" {
		t.Errorf("Expected 1.23%%, got %v", got)
	}
}

func TestJoinWarnings(t *testing.T) {
	input := []string{"first warning.", "second warning."}
	expected := "first warning. second warning."
	result := JoinWarnings(input)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestEscapeCSV(t *testing.T) {
	input := `Acme, Inc. "East"`
	expected := `"Acme, Inc. ""East"""`
	result := EscapeCSV(input)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestEscapeCSV_PlainFieldUntouched(t *testing.T) {
	input := "AAPL"
	result := EscapeCSV(input)
	if result != input {
		t.Errorf("Expected %v, got %v", input, result)
	}
}

func TestEscapeCSV_LineBreak(t *testing.T) {
	input := "line one\nline two"
	expected := "\"line one\nline two\""
	result := EscapeCSV(input)
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestExportFilename_ReplacesColons(t *testing.T) {
	expected := "portfolio-2024-06-01T10-30-00Z"
	result := ExportFilename("portfolio", "2024-06-01T10:30:00Z")
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestExportFilename_FallbackOnUnparsable(t *testing.T) {
	result := ExportFilename("portfolio", "not a timestamp")
	if !strings.HasPrefix(result, "portfolio-") {
		t.Errorf("Expected portfolio- prefix, got %v", result)
	}
	if strings.Contains(result, ":") {
		t.Errorf("Expected no colons, got %v", result)
	}
}

func TestRequestID(t *testing.T) {
	expected := "2024-05-31:AAPL,VOO"
	result := RequestID("2024-05-31", []string{"AAPL", "VOO"})
	if result != expected {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}
