package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}
	opts.setDefaults()

	assert.True(t, opts.IgnoreHidden, "Should ignore hidden files by default")
	assert.Equal(t, 200*time.Millisecond, opts.SettleDelay, "Default settle delay should be 200ms")
	assert.Contains(t, opts.IgnorePatterns, "~$*", "Should ignore Excel owner files by default")
	assert.Contains(t, opts.IgnorePatterns, "*.tmp", "Should ignore *.tmp by default")
}

func TestOptions_CustomValues(t *testing.T) {
	opts := Options{
		IgnoreHidden:   false,
		SettleDelay:    500 * time.Millisecond,
		IgnorePatterns: []string{"*.bak"},
	}
	opts.setDefaults()

	assert.False(t, opts.IgnoreHidden, "Custom ignore hidden should be preserved")
	assert.Equal(t, 500*time.Millisecond, opts.SettleDelay, "Custom settle delay should be preserved")
	assert.Contains(t, opts.IgnorePatterns, "*.bak", "Custom patterns should be preserved")
}

func TestOptions_ShouldIgnore(t *testing.T) {
	opts := Options{
		IgnoreHidden:   true,
		IgnorePatterns: []string{"*.tmp", ".DS_Store", "~$*"},
	}
	opts.setDefaults()

	tests := []struct {
		name   string
		path   string
		expect bool
	}{
		{"hidden file", "/data/.hidden", true},
		{"hidden directory", "/data/.git/config", true},
		{"DS_Store", "/data/.DS_Store", true},
		{"tmp file", "/data/hr1_ih.tmp", true},
		{"excel owner file", "/data/~$hr1_ih.xlsx", true},
		{"xlsx dataset", "/data/hr1_ih.xlsx", false},
		{"csv dataset", "/data/bills/hr1_enr.csv", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := opts.shouldIgnore(tt.path)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestOptions_ShouldIgnore_NoIgnoreHidden(t *testing.T) {
	opts := Options{
		IgnoreHidden:   false,
		IgnorePatterns: []string{},
	}
	opts.setDefaults()

	assert.False(t, opts.shouldIgnore("/data/.hidden"), "Should not ignore hidden when disabled")
	assert.False(t, opts.shouldIgnore("/data/hr1_ih.csv"), "Should not ignore normal files")
}
