package config

// AppVersion is the version of the tool, set at build time.
var AppVersion = "dev"

// AppName is the name of the tool.
const AppName = "Backdrop"

// ConfigFileName is the name of the JSON settings file inside the config dir.
const ConfigFileName = "config.json"
