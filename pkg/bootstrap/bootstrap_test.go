package bootstrap

import "testing"

func TestPreParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantConfig  string
		wantVerbose bool
	}{
		{
			name: "no flags",
			args: []string{"prflight", "review", "feature/x", "main"},
		},
		{
			name:       "config with separate value",
			args:       []string{"prflight", "--config", "/tmp/cfg.toml", "review", "a", "b"},
			wantConfig: "/tmp/cfg.toml",
		},
		{
			name:       "config with equals",
			args:       []string{"prflight", "--config=/tmp/cfg.toml"},
			wantConfig: "/tmp/cfg.toml",
		},
		{
			name:       "short config attached",
			args:       []string{"prflight", "-C/tmp/cfg.toml"},
			wantConfig: "/tmp/cfg.toml",
		},
		{
			name:        "verbose long",
			args:        []string{"prflight", "--verbose", "create", "a", "b"},
			wantVerbose: true,
		},
		{
			name:        "verbose short",
			args:        []string{"prflight", "-v"},
			wantVerbose: true,
		},
		{
			name: "flags after end-of-options marker are ignored",
			args: []string{"prflight", "--", "--verbose", "--config", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile, verbose := PreParseGlobalFlags(tt.args)
			if cfgFile != tt.wantConfig {
				t.Errorf("cfgFile = %q, want %q", cfgFile, tt.wantConfig)
			}
			if verbose != tt.wantVerbose {
				t.Errorf("verbose = %v, want %v", verbose, tt.wantVerbose)
			}
		})
	}
}
