package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// CodeConfig is the oops code for configuration failures.
const CodeConfig = "CONFIG_LOAD"

// FlagKeys maps command-line flag names to config keys. Only flags the
// user actually set override the file.
var FlagKeys = map[string]string{
	"lang":          "message.language",
	"mute":          "audio.muted",
	"scale":         "window.scale",
	"no-save":       "persistence.disabled",
	"draw-triggers": "debug.draw_triggers",
}

// Load overlays a YAML file and command-line flags onto the current
// values. An empty path skips the file; a nil flag set skips flags.
func Load(path string, flags *pflag.FlagSet) error {
	errb := oops.Code(CodeConfig).In("config").With("path", path)

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errb.Wrapf(err, "read config %s", path)
		}
	}
	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return errb.Wrapf(err, "apply flags")
		}
	}

	sections := []struct {
		key string
		out any
	}{
		{"physics", &Physics},
		{"collision", &Collision},
		{"player", &Player},
		{"enemy", &Enemy},
		{"platform", &Platform},
		{"trigger", &Trigger},
		{"pickup", &Pickup},
		{"levels", &Levels},
		{"message", &Message},
		{"window", &Window},
		{"persistence", &Persistence},
		{"debug", &Debug},
		{"input", &Input},
		{"audio", &Audio},
	}
	for _, s := range sections {
		if !k.Exists(s.key) {
			continue
		}
		if err := k.Unmarshal(s.key, s.out); err != nil {
			return errb.With("section", s.key).Wrapf(err, "decode %s", s.key)
		}
	}
	if k.Bool("persistence.disabled") {
		Persistence.Enabled = false
	}
	return nil
}
