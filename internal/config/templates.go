package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "folkd":
		return folkdTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const folkdTemplate = `id = "folkd"
addr = ":9400"
cors_origins = ["http://localhost:3000"]

# advisory protocol ceilings enforced at the frame layer
max_body_bytes = 30720
max_footer_bytes = 2048

log_level = "info"
log_file = ""
`
