package config

import "os"

func IsDebug() bool {
	return os.Getenv("PRUNER_DEBUG") == "1"
}
