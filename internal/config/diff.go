package config

// RestartRequired lists the changed settings that a live reload cannot apply.
func RestartRequired(oldCfg, newCfg *Config) []string {
	if oldCfg == nil || newCfg == nil {
		return nil
	}
	var out []string
	if oldCfg.Practicum != newCfg.Practicum {
		out = append(out, "practicum")
	}
	if oldCfg.Notify.Locale != newCfg.Notify.Locale {
		out = append(out, "notify.locale")
	}
	if oldCfg.Notify.ThreadID != newCfg.Notify.ThreadID {
		out = append(out, "notify.thread_id")
	}
	if oldCfg.Storage != newCfg.Storage {
		out = append(out, "storage")
	}
	if enabled(oldCfg.Systemd.Enabled) != enabled(newCfg.Systemd.Enabled) {
		out = append(out, "systemd")
	}
	return out
}

func enabled(p *bool) bool { return p == nil || *p }
