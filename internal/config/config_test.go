package config

import "testing"

func TestNewAppliesDefaults(t *testing.T) {
	c := New("/data", "detector:443", "tok")
	if c.MaxFrames != DefaultMaxFrames {
		t.Errorf("MaxFrames = %d, want %d", c.MaxFrames, DefaultMaxFrames)
	}
	if c.IFrameOnly != DefaultIFrameOnly {
		t.Errorf("IFrameOnly = %v, want %v", c.IFrameOnly, DefaultIFrameOnly)
	}
	if c.IOU != DefaultIOU || c.Conf != DefaultConf {
		t.Errorf("IOU/Conf = %v/%v, want %v/%v", c.IOU, c.Conf, DefaultIOU, DefaultConf)
	}
	if c.Export != DefaultExport {
		t.Errorf("Export = %q, want %q", c.Export, DefaultExport)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() on freshly-constructed Config: %v", err)
	}
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"empty folder", func(c *Config) { c.Folder = "" }},
		{"empty url", func(c *Config) { c.URL = "" }},
		{"non-positive checkpoint", func(c *Config) { c.Checkpoint = 0 }},
		{"non-positive buffer size", func(c *Config) { c.BufferSize = -1 }},
		{"unrecognized export format", func(c *Config) { c.Export = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New("/data", "detector:443", "tok")
			tc.mut(c)
			if err := c.Validate(); err == nil {
				t.Errorf("Validate() returned nil, want an error for %s", tc.name)
			}
		})
	}
}
