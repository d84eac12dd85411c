package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"GallicWars/modules/kit/errx"
)

// Load 读取配置文件（yaml/json，按扩展名识别）并反序列化到 out。
// out 必须是指针。枚举字段依赖 mapstructure 的 TextUnmarshaller hook。
func Load(configPath string, out any) error {
	if !fileExist(configPath) {
		return errx.ErrConfigInvalid.
			WithData("path", configPath).
			WithCause(fmt.Errorf("config file not exist"))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return errx.ErrConfigInvalid.WithData("path", configPath).WithCause(err)
	}
	if err := v.Unmarshal(out, decodeHooks()); err != nil {
		return errx.ErrConfigInvalid.WithData("path", configPath).WithCause(err)
	}
	return nil
}

// MustLoad 与 Load 相同，失败直接 panic。用于进程启动早期的必备配置。
func MustLoad(configPath string, out any) {
	if err := Load(configPath, out); err != nil {
		panic(err)
	}
}

// Watch 监听配置文件变更，每次变更重新反序列化并回调 onChange。
// 返回的 stop 函数用于停止监听。回调在 viper 的 watch goroutine 里执行。
func Watch(configPath string, out any, onChange func()) (stop func(), err error) {
	if !fileExist(configPath) {
		return nil, errx.ErrConfigInvalid.
			WithData("path", configPath).
			WithCause(fmt.Errorf("config file not exist"))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, errx.ErrConfigInvalid.WithData("path", configPath).WithCause(err)
	}
	if err := v.Unmarshal(out, decodeHooks()); err != nil {
		return nil, errx.ErrConfigInvalid.WithData("path", configPath).WithCause(err)
	}

	done := make(chan struct{})
	v.OnConfigChange(func(e fsnotify.Event) {
		select {
		case <-done:
			return
		default:
		}
		if err := v.Unmarshal(out, decodeHooks()); err != nil {
			return
		}
		if onChange != nil {
			onChange()
		}
	})
	v.WatchConfig()

	return func() { close(done) }, nil
}

func decodeHooks() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
