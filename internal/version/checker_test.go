package version

import "testing"

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{name: "newer patch", current: "1.0.0", latest: "1.0.1", want: true},
		{name: "newer minor", current: "1.0.0", latest: "1.1.0", want: true},
		{name: "newer major", current: "1.0.0", latest: "2.0.0", want: true},
		{name: "same version", current: "1.0.0", latest: "1.0.0", want: false},
		{name: "older version", current: "1.1.0", latest: "1.0.0", want: false},
		{name: "v prefixes", current: "v1.0.0", latest: "v1.2.0", want: true},
		{name: "dev build never nags", current: "dev", latest: "99.0.0", want: false},
		{name: "empty current treated as dev", current: "", latest: "1.0.0", want: false},
		{name: "garbage latest", current: "1.0.0", latest: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isNewerVersion(tt.current, tt.latest)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "v1.2.3", want: "1.2.3"},
		{in: "1.2.3", want: "1.2.3"},
		{in: "  v1.2.3 ", want: "1.2.3"},
		{in: "", want: "dev"},
		{in: "dev", want: "dev"},
		{in: "none", want: "dev"},
	}

	for _, tt := range tests {
		if got := normalizeVersion(tt.in); got != tt.want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
