package file

import (
	"fmt"
	"os"

	"ytproxy/internal/domain/errconsts"

	"github.com/spf13/viper"
)

// LoadConfigFile loads a Viper-supported config file (YAML, TOML, JSON, ...) into v.
func LoadConfigFile(v *viper.Viper, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf(errconsts.ConfigFileReadFail, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %q is a directory, should be a file", path)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf(errconsts.ConfigFileReadFail, path, err)
	}
	return nil
}
