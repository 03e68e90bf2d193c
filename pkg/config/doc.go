// Package config loads typed configuration from environment variables.
//
// Configuration structs describe their variables with caarlos0/env tags.
// Load parses them once per type and caches the result; a .env file in the
// working directory is read on first use via joho/godotenv.
//
//	var cfg authsession.Config
//	config.MustLoad(&cfg)
//
// Additional dotenv files can be loaded explicitly with LoadEnv before the
// first Load. Parse failures wrap ErrParsingConfig together with the
// underlying env error, so both errors.Is checks and detailed messages work.
package config
