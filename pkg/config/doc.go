// Package config loads application settings from appconf.json.
//
// Values are read with viper, so any key can be overridden by an environment
// variable prefixed with APP_ where the section separator becomes an
// underscore:
//
//	APP_RUNTIME_ADDRESS=:9000
//	APP_DATABASE_PASSWORD=secret
//
// A .env file in the working directory is loaded first when it exists.
//
//	cfg, err := config.Load("appconf.json")
//	if err != nil {
//		return err
//	}
//	conn, err := db.Open(ctx, cfg.Database)
package config
