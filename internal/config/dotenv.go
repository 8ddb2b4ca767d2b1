package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// DotEnvPath returns the absolute path to skilldex's dotenv file (~/.skilldex/.env).
func DotEnvPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.skilldex/.env and returns key/value pairs. A missing
// file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "cannot stat dotenv file %s", p)
	}
	env, err := gotenv.Read(p)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read dotenv file %s", p)
	}
	return env, nil
}

// ExportDotEnv copies the dotenv values into the process environment.
// Variables that are already set keep their value.
func ExportDotEnv() error {
	env, err := LoadDotEnv()
	if err != nil {
		return err
	}
	for k, v := range env {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Wrapf(err, "cannot export %s", k)
		}
	}
	return nil
}

// Origins of a configuration value reported by GetConfigValue.
const (
	OriginEnv    = "environment"
	OriginDotEnv = ".env"
)

// GetConfigValue returns the effective value for key and where it came from,
// using process environment variables first and falling back to
// ~/.skilldex/.env. An unset key yields an empty value and origin.
//
// Call it before Load: Load exports the dotenv values into the environment.
func GetConfigValue(key string) (value, origin string, err error) {
	if v := os.Getenv(key); v != "" {
		return v, OriginEnv, nil
	}
	dotenv, err := LoadDotEnv()
	if err != nil {
		return "", "", err
	}
	if v := dotenv[key]; v != "" {
		return v, OriginDotEnv, nil
	}
	return "", "", nil
}

// EnsureDotEnvTemplate creates ~/.skilldex/.env if it does not already exist.
//
// Every key is commented out so the template never overrides skilldex.yaml
// until the user opts in.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot stat dotenv file %s", p)
	}

	body := "" +
		"# SKILLDEX_WORKSPACE_PATH=\n" +
		"# SKILLDEX_OUTPUT=\n" +
		"# SKILLDEX_DESCRIPTION_CAP=200\n" +
		"# SKILLDEX_INCLUDE_FALLBACK_TITLES=false\n" +
		"# SKILLDEX_LOG_LEVEL=warn\n"

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create %s", filepath.Dir(p))
	}
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return errors.Wrapf(err, "cannot write dotenv template %s", p)
	}
	return nil
}
