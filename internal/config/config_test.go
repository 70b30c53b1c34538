package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want \".\"", cfg.Root)
	}
	if cfg.Index != "index.html" {
		t.Errorf("Index = %q, want index.html", cfg.Index)
	}
	if !reflect.DeepEqual(cfg.Routes, []string{"/", "/piano.js"}) {
		t.Errorf("Routes = %v", cfg.Routes)
	}
	if cfg.LogRequests {
		t.Error("LogRequests should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}

	cfg.Routes[0] = "/changed"
	if DefaultRoutes[0] != "/" {
		t.Error("Default() must not share the DefaultRoutes slice")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
	}{
		{
			name: "TOML",
			file: "piano.toml",
			content: `port = 9090
root = "public"
routes = ["/"]
log_requests = true
color = false
`,
			want: Config{Port: 9090, Root: "public", Index: "index.html", Routes: []string{"/"}, LogRequests: true},
		},
		{
			name: "YAML",
			file: "piano.yaml",
			content: `port: 3000
index: piano.html
`,
			want: Config{Port: 3000, Root: ".", Index: "piano.html", Routes: []string{"/", "/piano.js"}, Color: true},
		},
		{
			name:    "YML extension",
			file:    "piano.yml",
			content: "root: /srv/piano\n",
			want:    Config{Port: 8080, Root: "/srv/piano", Index: "index.html", Routes: []string{"/", "/piano.js"}, Color: true},
		},
		{
			name:    "Empty TOML keeps defaults",
			file:    "empty.toml",
			content: "",
			want:    Default(),
		},
		{
			name:    "Empty YAML keeps defaults",
			file:    "empty.yaml",
			content: "",
			want:    Default(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "Port out of range", file: "c.toml", content: "port = 70000\n", wantErr: ErrInvalidPort},
		{name: "Zero port", file: "c.yaml", content: "port: 0\n", wantErr: ErrInvalidPort},
		{name: "Empty index", file: "c.toml", content: "index = \"\"\n", wantErr: ErrEmptyIndex},
		{name: "Relative route", file: "c.yaml", content: "routes: [piano.js]\n", wantErr: ErrInvalidRoute},
		{name: "Wildcard route", file: "c.toml", content: "routes = [\"/{bad\"]\n", wantErr: ErrInvalidRoute},
		{name: "Method in route", file: "c.yaml", content: "routes: [\"GET /\"]\n", wantErr: ErrInvalidRoute},
		{name: "Route with space", file: "c.toml", content: "routes = [\"/a b\"]\n", wantErr: ErrInvalidRoute},
		{name: "Empty route list TOML", file: "c.toml", content: "routes = []\n", wantErr: ErrNoRoutes},
		{name: "Empty route list YAML", file: "c.yaml", content: "routes: []\n", wantErr: ErrNoRoutes},
		{name: "Unknown extension", file: "c.json", content: "{}", wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "Unknown TOML key", file: "c.toml", content: "port = 8080\ncache = true\n"},
		{name: "Unknown YAML key", file: "c.yaml", content: "port: 8080\ncache: true\n"},
		{name: "Malformed TOML", file: "c.toml", content: "port = \n"},
		{name: "Malformed YAML", file: "c.yaml", content: "port: [1, 2\n"},
		{name: "Wrong TOML type", file: "c.toml", content: "port = \"eighty\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.file, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Port = 9000
	if got := cfg.Addr(); got != ":9000" {
		t.Errorf("Addr() = %q, want \":9000\"", got)
	}
}
