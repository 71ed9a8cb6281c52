// Package config loads hyperoop.json, the configuration of the hyperoop
// command and its preview server. hyperoop.yaml and hyperoop.yml are read
// too; every file is checked against a JSON schema before it is decoded, so
// unknown keys and mistyped values fail with E121.
//
// # Configuration File Structure
//
//	{
//	  "preview": {
//	    "port": 4000,
//	    "host": "localhost",
//	    "app": "todo"
//	  },
//	  "history": {
//	    "depth": 50
//	  },
//	  "snapshot": {
//	    "dir": "snapshots",
//	    "db": "snapshots.db",
//	    "redis": "localhost:6379",
//	    "bucket": "my-snapshots",
//	    "prefix": "dev/",
//	    "region": "eu-west-1"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.PreviewURL())
package config
