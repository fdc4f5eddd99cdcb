package main

import "testing"

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    cliArgs
		wantErr bool
	}{
		{
			name: "minimal",
			args: []string{"https://example.com", "10"},
			want: cliArgs{
				baseURL: "https://example.com", maxPages: 10,
				outputDir: "site_mirror", configPath: "config.yaml",
			},
		},
		{
			name: "all positionals",
			args: []string{"https://example.com", "5", "./out", "weights.yaml"},
			want: cliArgs{
				baseURL: "https://example.com", maxPages: 5,
				outputDir: "./out", configPath: "weights.yaml",
			},
		},
		{name: "too few", args: []string{"https://example.com"}, wantErr: true},
		{name: "too many", args: []string{"a", "2", "c", "d", "e"}, wantErr: true},
		{name: "non-integer pages", args: []string{"https://example.com", "lots"}, wantErr: true},
		{name: "zero pages", args: []string{"https://example.com", "0"}, wantErr: true},
		{name: "negative pages", args: []string{"https://example.com", "-3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}
