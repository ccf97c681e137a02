package storagekit

import (
	"os"
	"testing"
)

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			want: Config{
				Driver:    "local",
				LocalRoot: "./storage",
			},
		},
		{
			name: "memory configuration",
			envVars: map[string]string{
				"BEAVER_STORAGEKIT_DRIVER":          "memory",
				"BEAVER_STORAGEKIT_MEMORY_MAX_SIZE": "1048576",
			},
			want: Config{
				Driver:        "memory",
				LocalRoot:     "./storage",
				MemoryMaxSize: 1048576,
			},
		},
		{
			name: "drive configuration",
			envVars: map[string]string{
				"BEAVER_STORAGEKIT_DRIVER":                 "drive",
				"BEAVER_STORAGEKIT_DRIVE_CREDENTIALS_FILE": "/etc/creds.json",
				"BEAVER_STORAGEKIT_DRIVE_ROOT_ID":          "0Abc123",
			},
			want: Config{
				Driver:               "drive",
				LocalRoot:            "./storage",
				DriveCredentialsFile: "/etc/creds.json",
				DriveRootID:          "0Abc123",
			},
		},
		{
			name: "read-only local configuration",
			envVars: map[string]string{
				"BEAVER_STORAGEKIT_LOCAL_ROOT": "/custom/path",
				"BEAVER_STORAGEKIT_READ_ONLY":  "true",
			},
			want: Config{
				Driver:    "local",
				LocalRoot: "/custom/path",
				ReadOnly:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				k := k // capture for closure
				os.Setenv(k, v)
				t.Cleanup(func() { os.Unsetenv(k) })
			}

			cfg, err := GetConfig()
			if err != nil {
				t.Fatalf("GetConfig() error = %v", err)
			}

			if cfg.Driver != tt.want.Driver {
				t.Errorf("Driver = %v, want %v", cfg.Driver, tt.want.Driver)
			}
			if cfg.LocalRoot != tt.want.LocalRoot {
				t.Errorf("LocalRoot = %v, want %v", cfg.LocalRoot, tt.want.LocalRoot)
			}
			if cfg.MemoryMaxSize != tt.want.MemoryMaxSize {
				t.Errorf("MemoryMaxSize = %v, want %v", cfg.MemoryMaxSize, tt.want.MemoryMaxSize)
			}
			if cfg.DriveCredentialsFile != tt.want.DriveCredentialsFile {
				t.Errorf("DriveCredentialsFile = %v, want %v", cfg.DriveCredentialsFile, tt.want.DriveCredentialsFile)
			}
			if cfg.DriveRootID != tt.want.DriveRootID {
				t.Errorf("DriveRootID = %v, want %v", cfg.DriveRootID, tt.want.DriveRootID)
			}
			if cfg.ReadOnly != tt.want.ReadOnly {
				t.Errorf("ReadOnly = %v, want %v", cfg.ReadOnly, tt.want.ReadOnly)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"local with root", Config{Driver: "local", LocalRoot: "/tmp/s"}, false},
		{"local without root", Config{Driver: "local"}, true},
		{"memory", Config{Driver: "memory"}, false},
		{"drive with root id", Config{Driver: "drive", DriveRootID: "0Abc"}, false},
		{"drive without root id", Config{Driver: "drive"}, true},
		{"empty driver", Config{}, true},
		{"unknown driver", Config{Driver: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
