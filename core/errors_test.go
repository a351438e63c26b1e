package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		contains []string
	}{
		{
			name: "error with action",
			err: &ConfigError{
				Code:    "TEST_CODE",
				Message: "Test message",
				Action:  "Take this action",
			},
			contains: []string{"Test message", "Take this action"},
		},
		{
			name: "error without action",
			err: &ConfigError{
				Code:    "TEST_CODE",
				Message: "Test message only",
			},
			contains: []string{"Test message only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(errStr, s) {
					t.Errorf("ConfigError.Error() = %q, expected to contain %q", errStr, s)
				}
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		wantCode string
		contains string
	}{
		{"env file missing", ErrEnvFileMissing("custom.env"), ErrCodeEnvFileMissing, "custom.env"},
		{"invalid target root", ErrInvalidTargetRoot("roaming"), ErrCodeInvalidTargetRoot, "roaming"},
		{"invalid data root", ErrInvalidDataRoot("rel/dir"), ErrCodeInvalidDataRoot, "rel/dir"},
		{"invalid layout", ErrInvalidLayout("bad name"), ErrCodeInvalidLayout, "bad name"},
		{"file missing", ErrFileMissing(EnvResourceManifest, "/x/resources.yaml"), ErrCodeFileMissing, "/x/resources.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if !strings.Contains(tt.err.Message, tt.contains) {
				t.Errorf("Message = %q, expected to contain %q", tt.err.Message, tt.contains)
			}
			if tt.err.Action == "" {
				t.Error("Action should not be empty")
			}
		})
	}
}

func TestIsConfigError(t *testing.T) {
	configErr := ErrInvalidTargetRoot("x")
	wrapped := fmt.Errorf("startup: %w", configErr)

	got, ok := IsConfigError(wrapped)
	if !ok || got != configErr {
		t.Errorf("IsConfigError(wrapped) = %v, %v", got, ok)
	}

	if _, ok := IsConfigError(errors.New("plain")); ok {
		t.Error("IsConfigError(plain) = true, want false")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(ErrInvalidDataRoot("x")); code != ErrCodeInvalidDataRoot {
		t.Errorf("GetErrorCode() = %q, want %q", code, ErrCodeInvalidDataRoot)
	}
	if code := GetErrorCode(errors.New("plain")); code != "" {
		t.Errorf("GetErrorCode(plain) = %q, want empty", code)
	}
	if code := GetErrorCode(nil); code != "" {
		t.Errorf("GetErrorCode(nil) = %q, want empty", code)
	}
}
