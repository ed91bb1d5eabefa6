package surgeon

import (
	"reflect"
	"testing"
)

func TestExtractFilePaths(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "traceback frame",
			text: `Traceback (most recent call last):
  File "app/service.py", line 42, in handle
    user.name.upper()
AttributeError: 'NoneType' object has no attribute 'upper'`,
			want: []string{"app/service.py"},
		},
		{
			name: "bare paths with extensions",
			text: "The bug is in internal/server/handler.go and shows up when config.yaml is missing.",
			want: []string{"internal/server/handler.go", "config.yaml"},
		},
		{
			name: "duplicates dropped, first mention wins",
			text: `File "main.py" crashed. See main.py and utils.py for details.`,
			want: []string{"main.py", "utils.py"},
		},
		{
			name: "leading dot-slash trimmed",
			text: "crash in ./cmd/run.go at startup",
			want: []string{"cmd/run.go"},
		},
		{
			name: "no file mentions",
			text: "The service returns 500 under load.",
			want: nil,
		},
		{
			name: "unknown extension ignored",
			text: "logs are in output.log and debug.trace",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFilePaths(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractFilePaths() = %v, want %v", got, tt.want)
			}
		})
	}
}
