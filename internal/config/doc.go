// Package config loads loadboard.json.
//
// Values resolve in order: defaults, the config file, LOADBOARD_* environment
// variables, then command line flags applied by the CLI.
//
//	{
//	  "server": {"address": ":8080", "writeTimeout": "10s"},
//	  "data": {"dir": "data", "watch": true},
//	  "log": {"level": "debug", "format": "json"}
//	}
package config
