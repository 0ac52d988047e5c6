package cli

import "testing"

func TestResolveArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		clipboard bool
		wantErr   bool
		check     func(t *testing.T, cfg *Config)
	}{
		{
			name: "no args defaults to uncommitted",
			args: nil,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode() != ModeUncommitted {
					t.Errorf("expected ModeUncommitted, got %v", cfg.Mode())
				}
			},
		},
		{
			name: "ref range",
			args: []string{"main..feature"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode() != ModeRefs {
					t.Errorf("expected ModeRefs, got %v", cfg.Mode())
				}
				if cfg.FromRef != "main" || cfg.ToRef != "feature" {
					t.Errorf("refs not parsed: %q..%q", cfg.FromRef, cfg.ToRef)
				}
			},
		},
		{
			name: "triple-dot range",
			args: []string{"main...feature"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.FromRef != "main" || cfg.ToRef != "feature" {
					t.Errorf("refs not parsed: %q..%q", cfg.FromRef, cfg.ToRef)
				}
			},
		},
		{
			name: "two files",
			args: []string{"old.txt", "new.txt"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode() != ModeFiles {
					t.Errorf("expected ModeFiles, got %v", cfg.Mode())
				}
				if cfg.OldPath != "old.txt" || cfg.NewPath != "new.txt" {
					t.Errorf("paths not parsed: %q, %q", cfg.OldPath, cfg.NewPath)
				}
			},
		},
		{
			name:      "clipboard with one file",
			args:      []string{"a.txt"},
			clipboard: true,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode() != ModeClipboard || cfg.ClipboardPath != "a.txt" {
					t.Errorf("clipboard mode not resolved: %+v", cfg)
				}
			},
		},
		{
			name:      "clipboard without file",
			args:      nil,
			clipboard: true,
			wantErr:   true,
		},
		{
			name:    "single non-range arg",
			args:    []string{"just-a-file"},
			wantErr: true,
		},
		{
			name:    "too many args",
			args:    []string{"a", "b", "c"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Clipboard: tt.clipboard}
			err := ResolveArgs(cfg, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
