package taskwheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "default_is_valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero_wheel_slots", mutate: func(c *Config) { c.WheelSlots = 0 }, wantErr: true},
		{name: "negative_wheel_slots", mutate: func(c *Config) { c.WheelSlots = -1 }, wantErr: true},
		{name: "sub_millisecond_tick", mutate: func(c *Config) { c.TickInterval = time.Microsecond }, wantErr: true},
		{name: "negative_queue_hint", mutate: func(c *Config) { c.EventQueueHint = -1 }, wantErr: true},
		{name: "zero_default_max_parallel", mutate: func(c *Config) { c.DefaultMaxParallel = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(WithConfig(Config{}))
	assert.Error(t, err)
}
