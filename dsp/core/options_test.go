package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions()
	if cfg.SampleRate != DefaultSampleRate {
		t.Fatalf("default SampleRate = %v, want %v", cfg.SampleRate, DefaultSampleRate)
	}

	cfg = ApplyProcessorOptions(WithSampleRate(60), nil)
	if cfg.SampleRate != 60 {
		t.Fatalf("SampleRate = %v, want 60", cfg.SampleRate)
	}
}

func TestWithSampleRateIgnoresInvalid(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithSampleRate(-5))
	if cfg.SampleRate != DefaultSampleRate {
		t.Fatalf("SampleRate = %v, want %v", cfg.SampleRate, DefaultSampleRate)
	}
}
