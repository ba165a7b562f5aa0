package config

func (c *Config) validateDisplay() error {
	if c.Display.TabWidth < 1 || c.Display.TabWidth > 64 {
		return &ValidationError{"display.tab-width", c.Display.TabWidth, "must be between 1 and 64"}
	}
	if c.Display.FillColumn < 0 {
		return &ValidationError{"display.fill-column", c.Display.FillColumn, "must not be negative"}
	}
	if c.Display.JumpColumnPercent < 0 || c.Display.JumpColumnPercent > 100 {
		return &ValidationError{"display.jump-column-percent", c.Display.JumpColumnPercent, "must be between 0 and 100"}
	}
	return nil
}

func (c *Config) validateRings() error {
	caps := map[string]int{
		"rings.kill-capacity":    c.Rings.KillCapacity,
		"rings.delete-capacity":  c.Rings.DeleteCapacity,
		"rings.search-capacity":  c.Rings.SearchCapacity,
		"rings.replace-capacity": c.Rings.ReplaceCapacity,
	}
	for field, n := range caps {
		if n < 1 {
			return &ValidationError{field, n, "must be at least 1"}
		}
	}
	return nil
}

func (c *Config) validateMacro() error {
	if c.Macro.MaxDepth < 1 {
		return &ValidationError{"macro.max-depth", c.Macro.MaxDepth, "must be at least 1"}
	}
	if c.Macro.MaxLoopIterations < 0 {
		return &ValidationError{"macro.max-loop-iterations", c.Macro.MaxLoopIterations, "must not be negative (0 means unbounded)"}
	}
	return nil
}

// Validate checks the configuration for internally-consistent values.
func (c *Config) Validate() error {
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateKeybindings(); err != nil {
		return err
	}
	if err := c.validateRings(); err != nil {
		return err
	}
	if err := c.validateMacro(); err != nil {
		return err
	}
	return nil
}
