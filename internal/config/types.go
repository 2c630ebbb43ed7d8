package config

import "time"

type Config struct {
	App    App
	API    API
	Logger Logger
}

type App struct {
	Env      string
	PageSize int
	Theme    string
	NoColor  bool
}

type API struct {
	BaseURL            string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

type Logger struct {
	Level          string
	OutputFileName string
}
