package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetEnvPath() string
	GetMessageLimit() int
	GetUser() User
}
